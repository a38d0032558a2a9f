// Package gametime models the academy calendar: the in-game clock, the
// partition of a day into time slots, the weekly class schedule and the
// moon cycle derived from elapsed days.
package gametime

import (
	"encoding/json"
	"fmt"
)

// Day is a day of the academy week.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// DaysInOrder is the cyclic order of the week. Epoch day 0 is a Monday.
var DaysInOrder = [...]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

const (
	HoursPerDay    = 24
	MinutesPerHour = 60
	MinutesPerDay  = HoursPerDay * MinutesPerHour
	DaysPerWeek    = len(DaysInOrder)
)

// Index returns the position of d in DaysInOrder, or -1 for an unknown day.
func (d Day) Index() int {
	for i, day := range DaysInOrder {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of DaysInOrder.
func (d Day) Valid() bool { return d.Index() >= 0 }

// Next returns the day after d in cyclic order.
//
// Precondition: d.Valid().
func (d Day) Next() Day {
	i := d.Index()
	if i < 0 {
		panic(fmt.Sprintf("gametime: Next called on invalid day %q", d))
	}
	return DaysInOrder[(i+1)%DaysPerWeek]
}

// ParseDay resolves a day name.
func ParseDay(s string) (Day, error) {
	d := Day(s)
	if !d.Valid() {
		return "", fmt.Errorf("gametime: unknown day %q", s)
	}
	return d, nil
}

// DayOf returns the weekday of the given elapsed day count.
//
// Precondition: dayCount >= 0.
func DayOf(dayCount int) Day {
	if dayCount < 0 {
		panic(fmt.Sprintf("gametime: negative day count %d", dayCount))
	}
	return DaysInOrder[dayCount%DaysPerWeek]
}

// GameTime is an immutable point on the academy calendar.
//
// Invariant: Day == DayOf(DayCount), 0 <= Hour < 24, 0 <= Minute < 60.
type GameTime struct {
	Day      Day `json:"day"`
	Hour     int `json:"hour"`
	Minute   int `json:"minute"`
	DayCount int `json:"dayCount"`
}

// Default returns the start of term: Monday 08:00 on day 0.
func Default() GameTime {
	return GameTime{Day: Monday, Hour: 8, Minute: 0, DayCount: 0}
}

// At returns the time in the first week of term for the given weekday.
//
// Precondition: day is valid, hour in [0, 23], minute in [0, 59].
func At(day Day, hour, minute int) GameTime {
	t := GameTime{Day: day, Hour: hour, Minute: minute, DayCount: day.Index()}
	t.mustValidate()
	return t
}

// FromMinutes builds the time lying total minutes after the epoch.
//
// Precondition: total >= 0.
func FromMinutes(total int) GameTime {
	if total < 0 {
		panic(fmt.Sprintf("gametime: negative minute total %d", total))
	}
	dayCount := total / MinutesPerDay
	rem := total % MinutesPerDay
	return GameTime{
		Day:      DayOf(dayCount),
		Hour:     rem / MinutesPerHour,
		Minute:   rem % MinutesPerHour,
		DayCount: dayCount,
	}
}

// Validate reports the first broken invariant, if any.
func (t GameTime) Validate() error {
	if !t.Day.Valid() {
		return fmt.Errorf("gametime: unknown day %q", t.Day)
	}
	if t.Hour < 0 || t.Hour >= HoursPerDay {
		return fmt.Errorf("gametime: hour %d out of range [0, %d)", t.Hour, HoursPerDay)
	}
	if t.Minute < 0 || t.Minute >= MinutesPerHour {
		return fmt.Errorf("gametime: minute %d out of range [0, %d)", t.Minute, MinutesPerHour)
	}
	if t.DayCount < 0 {
		return fmt.Errorf("gametime: day count %d must be >= 0", t.DayCount)
	}
	if DayOf(t.DayCount) != t.Day {
		return fmt.Errorf("gametime: day %q does not match day count %d (%s)", t.Day, t.DayCount, DayOf(t.DayCount))
	}
	return nil
}

func (t GameTime) mustValidate() {
	if err := t.Validate(); err != nil {
		panic(err.Error())
	}
}

// WithDerivedDay returns t with Day recomputed from DayCount.
func (t GameTime) WithDerivedDay() GameTime {
	t.Day = DayOf(t.DayCount)
	return t
}

// MinuteOfDay returns the minutes elapsed since midnight.
func (t GameTime) MinuteOfDay() int { return t.Hour*MinutesPerHour + t.Minute }

// TotalMinutes returns the minutes elapsed since the epoch.
func (t GameTime) TotalMinutes() int { return t.DayCount*MinutesPerDay + t.MinuteOfDay() }

// Slot returns the time slot containing t.
func (t GameTime) Slot() TimeSlot { return SlotForHour(t.Hour) }

// String renders t as "Monday 08:00".
func (t GameTime) String() string {
	return fmt.Sprintf("%s %02d:%02d", t.Day, t.Hour, t.Minute)
}

// Advance returns the time deltaMinutes after t. Any number of midnight
// rollovers is handled; the day follows DaysInOrder cyclically.
//
// Precondition: t is valid and deltaMinutes >= 0.
// Postcondition: the result is valid and result.TotalMinutes() == t.TotalMinutes() + deltaMinutes.
func Advance(t GameTime, deltaMinutes int) GameTime {
	t.mustValidate()
	if deltaMinutes < 0 {
		panic(fmt.Sprintf("gametime: Advance called with negative delta %d", deltaMinutes))
	}
	return FromMinutes(t.TotalMinutes() + deltaMinutes)
}

// Sub returns the minutes from earlier to later; negative if later precedes earlier.
func Sub(later, earlier GameTime) int {
	return later.TotalMinutes() - earlier.TotalMinutes()
}

// UnmarshalJSON rejects times that break the GameTime invariant.
func (t *GameTime) UnmarshalJSON(data []byte) error {
	type plain GameTime
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if err := GameTime(p).Validate(); err != nil {
		return err
	}
	*t = GameTime(p)
	return nil
}
