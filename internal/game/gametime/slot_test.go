package gametime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/academy/internal/game/gametime"
)

func TestSlotForHour(t *testing.T) {
	cases := []struct {
		hour int
		slot gametime.TimeSlot
	}{
		{0, gametime.SlotNight},
		{5, gametime.SlotNight},
		{6, gametime.SlotMorning},
		{11, gametime.SlotMorning},
		{12, gametime.SlotAfternoon},
		{17, gametime.SlotAfternoon},
		{18, gametime.SlotEvening},
		{21, gametime.SlotEvening},
		{22, gametime.SlotNight},
		{23, gametime.SlotNight},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.slot, gametime.SlotForHour(tc.hour), "hour %d", tc.hour)
	}
}

func TestSlotForHour_PanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { gametime.SlotForHour(-1) })
	assert.Panics(t, func() { gametime.SlotForHour(24) })
}

func TestSlots_PartitionTheDay(t *testing.T) {
	total := 0
	for _, s := range gametime.SlotsInOrder {
		total += s.DurationMinutes()
	}
	assert.Equal(t, gametime.MinutesPerDay, total)

	counts := make(map[gametime.TimeSlot]int)
	for h := 0; h < gametime.HoursPerDay; h++ {
		counts[gametime.SlotForHour(h)] += gametime.MinutesPerHour
	}
	for _, s := range gametime.SlotsInOrder {
		assert.Equal(t, s.DurationMinutes(), counts[s], "slot %s", s)
	}
}

func TestProperty_SlotForHour_ExactlyOneSlot(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		h := rapid.IntRange(0, 23).Draw(rt, "hour")
		s := gametime.SlotForHour(h)
		matches := 0
		for _, candidate := range gametime.SlotsInOrder {
			if candidate == s {
				matches++
			}
		}
		assert.Equal(rt, 1, matches)
		assert.True(rt, s.Valid())
	})
}

func TestMinutesUntilSlotEnd(t *testing.T) {
	assert.Equal(t, 4*60, gametime.MinutesUntilSlotEnd(gametime.At(gametime.Monday, 8, 0)))
	assert.Equal(t, 1, gametime.MinutesUntilSlotEnd(gametime.At(gametime.Monday, 17, 59)))
	assert.Equal(t, 8*60, gametime.MinutesUntilSlotEnd(gametime.At(gametime.Monday, 22, 0)))
	assert.Equal(t, 3*60, gametime.MinutesUntilSlotEnd(gametime.At(gametime.Tuesday, 3, 0)))
}

func TestProperty_MinutesUntilSlotEnd_LandsOnNextSlot(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := drawTime(rt)
		n := gametime.MinutesUntilSlotEnd(start)
		assert.Greater(rt, n, 0)
		end := gametime.Advance(start, n)
		assert.NotEqual(rt, start.Slot(), end.Slot())
		assert.Equal(rt, 0, end.Minute)
		assert.Equal(rt, end.Slot().StartHour(), end.Hour)
	})
}
