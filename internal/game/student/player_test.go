package student_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/academy/internal/game/student"
)

func TestDefaultPlayer_Valid(t *testing.T) {
	p := student.DefaultPlayer()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 1, p.Level)
	assert.True(t, p.Alive())
}

func TestPlayer_Validate_Rejects(t *testing.T) {
	p := student.DefaultPlayer()
	p.HP = p.MaxHP + 1
	assert.Error(t, p.Validate())

	p = student.DefaultPlayer()
	p.Level = 0
	assert.Error(t, p.Validate())
}

func TestPlayer_SpendMana(t *testing.T) {
	p := student.DefaultPlayer()
	p2, ok := p.SpendMana(4)
	assert.True(t, ok)
	assert.Equal(t, p.Mana-4, p2.Mana)

	_, ok = p2.SpendMana(p2.Mana + 1)
	assert.False(t, ok)
}

func TestPlayer_RecordDepth(t *testing.T) {
	p := student.DefaultPlayer().RecordDepth(2)
	assert.Equal(t, 2, p.DeepestCaveLevel)
	assert.Equal(t, 3, p.Level)
	assert.NoError(t, p.Validate())

	same := p.RecordDepth(1)
	assert.Equal(t, p, same)
}

func TestPlayer_NegativeAmountsPanic(t *testing.T) {
	p := student.DefaultPlayer()
	assert.Panics(t, func() { p.Heal(-1) })
	assert.Panics(t, func() { p.TakeDamage(-1) })
}

func TestPlayer_VitalsStayInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := student.DefaultPlayer()
		steps := rapid.IntRange(0, 30).Draw(rt, "steps")
		for range steps {
			amt := rapid.IntRange(0, 50).Draw(rt, "amt")
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				p = p.Heal(amt)
			case 1:
				p = p.TakeDamage(amt)
			case 2:
				p = p.RestoreMana(amt)
			case 3:
				p, _ = p.SpendMana(amt)
			case 4:
				p = p.RecordDepth(amt % 5)
			}
			if err := p.Validate(); err != nil {
				rt.Fatalf("invalid player %+v: %v", p, err)
			}
		}
	})
}
