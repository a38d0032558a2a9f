package gametime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/academy/internal/game/gametime"
)

func TestMoonPhaseInfo_Cycle(t *testing.T) {
	cases := []struct {
		dayCount int
		phase    gametime.MoonPhase
	}{
		{0, gametime.MoonNew},
		{2, gametime.MoonNew},
		{3, gametime.MoonWaxingCrescent},
		{12, gametime.MoonFull},
		{14, gametime.MoonFull},
		{23, gametime.MoonWaningCrescent},
		{24, gametime.MoonNew},
	}
	for _, tc := range cases {
		now := gametime.FromMinutes(tc.dayCount*gametime.MinutesPerDay + 60)
		info := gametime.MoonPhaseInfo(now)
		assert.Equal(t, tc.phase, info.Phase, "day %d", tc.dayCount)
		assert.Equal(t, tc.phase.String(), info.Name)
	}
}

func TestMoonPhaseInfo_DaysUntilFull(t *testing.T) {
	assert.Equal(t, 12, gametime.MoonPhaseInfo(gametime.Default()).DaysUntilFull)
	full := gametime.FromMinutes(13 * gametime.MinutesPerDay)
	assert.Equal(t, 0, gametime.MoonPhaseInfo(full).DaysUntilFull)
	assert.Equal(t, 100, gametime.MoonPhaseInfo(full).Illumination)
	after := gametime.FromMinutes(15 * gametime.MinutesPerDay)
	assert.Equal(t, 21, gametime.MoonPhaseInfo(after).DaysUntilFull)
}

func TestProperty_MoonPhase_Periodic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dc := rapid.IntRange(0, 10000).Draw(rt, "dayCount")
		assert.Equal(rt, gametime.PhaseForDay(dc), gametime.PhaseForDay(dc+gametime.MoonCycleDays))
	})
}

func TestMoonForecast_FiniteAndRestartable(t *testing.T) {
	now := gametime.At(gametime.Tuesday, 10, 0)
	seq := gametime.MoonForecast(now, 5)

	var first, second []gametime.MoonDay
	for d := range seq {
		first = append(first, d)
	}
	for d := range seq {
		second = append(second, d)
	}
	require.Len(t, first, 5)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, first[0].DayCount)
	assert.Equal(t, gametime.Wednesday, first[0].Day)
	assert.Equal(t, gametime.Sunday, first[4].Day)
}

func TestMoonForecast_EarlyStop(t *testing.T) {
	n := 0
	for range gametime.MoonForecast(gametime.Default(), 100) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestMoonForecast_MatchesPhaseInfo(t *testing.T) {
	now := gametime.Default()
	for d := range gametime.MoonForecast(now, 30) {
		later := gametime.Advance(now, (d.DayCount-now.DayCount)*gametime.MinutesPerDay)
		assert.Equal(t, gametime.MoonPhaseInfo(later), d.Moon)
	}
	assert.Panics(t, func() { gametime.MoonForecast(now, -1) })
}
