package inventory

import (
	"fmt"
	"strings"
)

// Coin values in gold pieces.
const (
	MarkValue  = 10
	CrownValue = 10 * MarkValue
)

// Purse is a gold total counted out in the largest coins first.
type Purse struct {
	Crowns int
	Marks  int
	Pieces int
}

// PurseOf counts total gold into coins.
//
// Precondition: total >= 0.
// Postcondition: p.Total() == total; Marks and Pieces are below ten.
func PurseOf(total int) Purse {
	if total < 0 {
		panic(fmt.Sprintf("inventory: PurseOf called with %d", total))
	}
	return Purse{
		Crowns: total / CrownValue,
		Marks:  total % CrownValue / MarkValue,
		Pieces: total % MarkValue,
	}
}

// Total returns the purse's worth in gold pieces.
func (p Purse) Total() int {
	return p.Crowns*CrownValue + p.Marks*MarkValue + p.Pieces
}

// String names each coin the purse holds, e.g. "1 Crown, 3 Marks, 5 Gold".
// An empty purse reads "0 Gold".
func (p Purse) String() string {
	var coins []string
	add := func(n int, name string) {
		if n == 0 {
			return
		}
		if n > 1 && name != "Gold" {
			name += "s"
		}
		coins = append(coins, fmt.Sprintf("%d %s", n, name))
	}
	add(p.Crowns, "Crown")
	add(p.Marks, "Mark")
	add(p.Pieces, "Gold")
	if len(coins) == 0 {
		return "0 Gold"
	}
	return strings.Join(coins, ", ")
}
