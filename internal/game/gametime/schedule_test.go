package gametime_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/academy/internal/game/gametime"
)

func testSchedule(t *testing.T) *gametime.Schedule {
	t.Helper()
	s, err := gametime.NewSchedule([]gametime.ScheduledClass{
		{Day: gametime.Monday, Slot: gametime.SlotAfternoon, Class: gametime.ClassCharms},
		{Day: gametime.Monday, Slot: gametime.SlotMorning, Class: gametime.ClassPotions},
		{Day: gametime.Wednesday, Slot: gametime.SlotNight, Class: gametime.ClassAstronomy},
	}, gametime.DefaultRestDays)
	require.NoError(t, err)
	return s
}

func TestNewSchedule_OrdersBySlot(t *testing.T) {
	s := testSchedule(t)
	classes := s.ClassesOn(gametime.Monday)
	require.Len(t, classes, 2)
	assert.Equal(t, gametime.ClassPotions, classes[0].Class)
	assert.Equal(t, gametime.ClassCharms, classes[1].Class)
}

func TestNewSchedule_RejectsOverlap(t *testing.T) {
	_, err := gametime.NewSchedule([]gametime.ScheduledClass{
		{Day: gametime.Monday, Slot: gametime.SlotMorning, Class: gametime.ClassPotions},
		{Day: gametime.Monday, Slot: gametime.SlotMorning, Class: gametime.ClassCharms},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps")
}

func TestNewSchedule_RejectsBadEntries(t *testing.T) {
	cases := map[string]gametime.ScheduledClass{
		"day":      {Day: "Someday", Slot: gametime.SlotMorning, Class: gametime.ClassPotions},
		"slot":     {Day: gametime.Monday, Slot: "Brunch", Class: gametime.ClassPotions},
		"class":    {Day: gametime.Monday, Slot: gametime.SlotMorning, Class: "Alchemy"},
		"rest day": {Day: gametime.Sunday, Slot: gametime.SlotMorning, Class: gametime.ClassPotions},
	}
	for name, entry := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := gametime.NewSchedule([]gametime.ScheduledClass{entry}, gametime.DefaultRestDays)
			assert.Error(t, err)
		})
	}
	_, err := gametime.NewSchedule(nil, []gametime.Day{"Caturday"})
	assert.Error(t, err)
}

func TestCurrentClass(t *testing.T) {
	s := testSchedule(t)

	c, ok := s.CurrentClass(gametime.At(gametime.Monday, 9, 0))
	require.True(t, ok)
	assert.Equal(t, gametime.ClassPotions, c.Class)

	c, ok = s.CurrentClass(gametime.At(gametime.Monday, 12, 0))
	require.True(t, ok)
	assert.Equal(t, gametime.ClassCharms, c.Class)

	_, ok = s.CurrentClass(gametime.At(gametime.Monday, 19, 0))
	assert.False(t, ok)

	c, ok = s.CurrentClass(gametime.At(gametime.Wednesday, 23, 30))
	require.True(t, ok)
	assert.Equal(t, gametime.ClassAstronomy, c.Class)
}

func TestIsClassAvailableNow(t *testing.T) {
	s := testSchedule(t)
	assert.True(t, s.IsClassAvailableNow(gametime.At(gametime.Monday, 6, 0)))
	assert.False(t, s.IsClassAvailableNow(gametime.At(gametime.Tuesday, 9, 0)))
	assert.False(t, s.IsClassAvailableNow(gametime.At(gametime.Saturday, 9, 0)))
}

func TestProperty_CurrentClass_DeterministicAndNoneOnRestDays(t *testing.T) {
	s := testSchedule(t)
	rapid.Check(t, func(rt *rapid.T) {
		now := drawTime(rt)
		a, okA := s.CurrentClass(now)
		b, okB := s.CurrentClass(now)
		assert.Equal(rt, okA, okB)
		assert.Equal(rt, a, b)
		if s.IsRestDay(now.Day) {
			assert.False(rt, okA)
		}
		if okA {
			assert.Equal(rt, now.Slot(), a.Slot)
			assert.Equal(rt, now.Day, a.Day)
		}
	})
}

func TestTimeUntilNextClass(t *testing.T) {
	s := testSchedule(t)

	next := s.TimeUntilNextClass(gametime.At(gametime.Monday, 5, 30))
	require.True(t, next.Found)
	assert.Equal(t, 30, next.Minutes)
	assert.Equal(t, gametime.ClassPotions, next.Class.Class)

	// During the morning lesson the next one is the afternoon lesson.
	next = s.TimeUntilNextClass(gametime.At(gametime.Monday, 6, 0))
	require.True(t, next.Found)
	assert.Equal(t, 6*60, next.Minutes)
	assert.Equal(t, gametime.ClassCharms, next.Class.Class)

	// Wednesday's night lesson first opens at Wednesday midnight.
	next = s.TimeUntilNextClass(gametime.At(gametime.Monday, 13, 0))
	require.True(t, next.Found)
	assert.Equal(t, gametime.ClassAstronomy, next.Class.Class)
	assert.Equal(t, gametime.MinutesPerDay+11*60, next.Minutes)

	// From Thursday the search wraps past the weekend.
	next = s.TimeUntilNextClass(gametime.At(gametime.Thursday, 0, 0))
	require.True(t, next.Found)
	assert.Equal(t, gametime.ClassPotions, next.Class.Class)
	assert.Equal(t, 4*gametime.MinutesPerDay+6*60, next.Minutes)
}

func TestTimeUntilNextClass_SameSlotNextWeek(t *testing.T) {
	s, err := gametime.NewSchedule([]gametime.ScheduledClass{
		{Day: gametime.Tuesday, Slot: gametime.SlotMorning, Class: gametime.ClassHerbology},
	}, gametime.DefaultRestDays)
	require.NoError(t, err)
	next := s.TimeUntilNextClass(gametime.At(gametime.Tuesday, 6, 0))
	require.True(t, next.Found)
	assert.Equal(t, 7*gametime.MinutesPerDay, next.Minutes)
}

func TestTimeUntilNextClass_NoneScheduled(t *testing.T) {
	s, err := gametime.NewSchedule(nil, gametime.DefaultRestDays)
	require.NoError(t, err)
	next := s.TimeUntilNextClass(gametime.Default())
	assert.False(t, next.Found)
}

func TestProperty_TimeUntilNextClass_LandsOnThatClass(t *testing.T) {
	s := testSchedule(t)
	rapid.Check(t, func(rt *rapid.T) {
		now := drawTime(rt)
		next := s.TimeUntilNextClass(now)
		require.True(rt, next.Found)
		assert.Greater(rt, next.Minutes, 0)
		assert.LessOrEqual(rt, next.Minutes, 7*gametime.MinutesPerDay)
		at := gametime.Advance(now, next.Minutes)
		c, ok := s.CurrentClass(at)
		require.True(rt, ok)
		assert.Equal(rt, next.Class, c)
	})
}

func TestLoadSchedule_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
classes:
  - {day: Friday, slot: Evening, class: DefenseArts, room: Duelling Hall}
`), 0o600))
	s, err := gametime.LoadSchedule(path)
	require.NoError(t, err)
	assert.True(t, s.IsRestDay(gametime.Sunday))
	c, ok := s.CurrentClass(gametime.At(gametime.Friday, 19, 0))
	require.True(t, ok)
	assert.Equal(t, "Duelling Hall", c.Room)
}

func TestLoadSchedule_Errors(t *testing.T) {
	_, err := gametime.LoadSchedule(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classes: [::"), 0o600))
	_, err = gametime.LoadSchedule(path)
	assert.Error(t, err)
}

func TestContent_ScheduleLoads(t *testing.T) {
	s, err := gametime.LoadSchedule("../../../content/schedule.yaml")
	require.NoError(t, err)
	for _, d := range gametime.DaysInOrder {
		if s.IsRestDay(d) {
			assert.Empty(t, s.ClassesOn(d))
			continue
		}
		assert.NotEmpty(t, s.ClassesOn(d), "weekday %s has no lessons", d)
	}
}

func TestSchedule_WithRestDays(t *testing.T) {
	s, err := gametime.NewSchedule([]gametime.ScheduledClass{
		{Day: gametime.Monday, Slot: gametime.SlotMorning, Class: gametime.ClassPotions, Room: "dungeon"},
		{Day: gametime.Saturday, Slot: gametime.SlotNight, Class: gametime.ClassAstronomy, Room: "tower"},
	}, []gametime.Day{gametime.Sunday})
	require.NoError(t, err)
	assert.Len(t, s.Entries(), 2)

	_, err = s.WithRestDays([]gametime.Day{gametime.Saturday})
	assert.Error(t, err, "a class falls on the new rest day")

	moved, err := s.WithRestDays([]gametime.Day{gametime.Wednesday})
	require.NoError(t, err)
	assert.True(t, moved.IsRestDay(gametime.Wednesday))
	assert.False(t, moved.IsRestDay(gametime.Sunday))
	assert.Equal(t, s.Entries(), moved.Entries())
}

func TestNightClass_SitsTwiceOnItsDay(t *testing.T) {
	s, err := gametime.NewSchedule([]gametime.ScheduledClass{
		{Day: gametime.Wednesday, Slot: gametime.SlotNight, Class: gametime.ClassAstronomy},
	}, gametime.DefaultRestDays)
	require.NoError(t, err)

	for _, at := range []gametime.GameTime{
		gametime.At(gametime.Wednesday, 1, 0),
		gametime.At(gametime.Wednesday, 23, 0),
	} {
		c, ok := s.CurrentClass(at)
		require.True(t, ok, at)
		assert.Equal(t, gametime.ClassAstronomy, c.Class)
	}
	_, ok := s.CurrentClass(gametime.At(gametime.Thursday, 1, 0))
	assert.False(t, ok, "the early hours belong to the calendar day")

	next := s.TimeUntilNextClass(gametime.At(gametime.Tuesday, 23, 0))
	require.True(t, next.Found)
	assert.Equal(t, 60, next.Minutes)

	next = s.TimeUntilNextClass(gametime.At(gametime.Wednesday, 1, 0))
	require.True(t, next.Found)
	assert.Equal(t, gametime.ClassAstronomy, next.Class.Class)
	assert.Equal(t, 21*60, next.Minutes)
}
