package gametime_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/academy/internal/game/gametime"
)

func drawTime(t *rapid.T) gametime.GameTime {
	return gametime.GameTime{
		DayCount: rapid.IntRange(0, 400).Draw(t, "dayCount"),
		Hour:     rapid.IntRange(0, 23).Draw(t, "hour"),
		Minute:   rapid.IntRange(0, 59).Draw(t, "minute"),
	}.WithDerivedDay()
}

func TestAdvance_RollsOverMidnight(t *testing.T) {
	got := gametime.Advance(gametime.At(gametime.Monday, 23, 45), 30)
	assert.Equal(t, gametime.Tuesday, got.Day)
	assert.Equal(t, 0, got.Hour)
	assert.Equal(t, 15, got.Minute)
	assert.Equal(t, 1, got.DayCount)
}

func TestAdvance_SundayWrapsToMonday(t *testing.T) {
	got := gametime.Advance(gametime.At(gametime.Sunday, 22, 0), 180)
	assert.Equal(t, gametime.Monday, got.Day)
	assert.Equal(t, 1, got.Hour)
	assert.Equal(t, 7, got.DayCount)
}

func TestAdvance_MultipleDays(t *testing.T) {
	start := gametime.At(gametime.Wednesday, 10, 30)
	got := gametime.Advance(start, 3*gametime.MinutesPerDay+90)
	assert.Equal(t, gametime.Saturday, got.Day)
	assert.Equal(t, 12, got.Hour)
	assert.Equal(t, 0, got.Minute)
}

func TestAdvance_DoesNotMutateInput(t *testing.T) {
	start := gametime.Default()
	_ = gametime.Advance(start, 500)
	assert.Equal(t, gametime.Default(), start)
}

func TestAdvance_PanicsOnContractViolations(t *testing.T) {
	assert.Panics(t, func() { gametime.Advance(gametime.Default(), -1) })
	bad := gametime.GameTime{Day: gametime.Monday, Hour: 24}
	assert.Panics(t, func() { gametime.Advance(bad, 1) })
	assert.Panics(t, func() { gametime.At("Funday", 1, 0) })
}

func TestProperty_Advance_StaysValid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := drawTime(rt)
		d := rapid.IntRange(0, 20*gametime.MinutesPerDay).Draw(rt, "delta")
		got := gametime.Advance(start, d)
		require.NoError(rt, got.Validate())
		assert.Equal(rt, start.TotalMinutes()+d, got.TotalMinutes())
	})
}

func TestProperty_Advance_Additive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := drawTime(rt)
		d := rapid.IntRange(0, 3*gametime.MinutesPerDay).Draw(rt, "delta")
		stepped := start
		for i := 0; i < d; i++ {
			stepped = gametime.Advance(stepped, 1)
		}
		assert.Equal(rt, gametime.Advance(start, d), stepped)
	})
}

func TestSub(t *testing.T) {
	a := gametime.At(gametime.Monday, 8, 0)
	b := gametime.Advance(a, 125)
	assert.Equal(t, 125, gametime.Sub(b, a))
	assert.Equal(t, -125, gametime.Sub(a, b))
}

func TestGameTime_String(t *testing.T) {
	assert.Equal(t, "Monday 08:00", gametime.Default().String())
	assert.Equal(t, "Friday 21:05", gametime.At(gametime.Friday, 21, 5).String())
}

func TestGameTime_Validate_DayMismatch(t *testing.T) {
	bad := gametime.GameTime{Day: gametime.Friday, Hour: 1, DayCount: 0}
	assert.Error(t, bad.Validate())
}

func TestGameTime_JSON(t *testing.T) {
	in := gametime.Advance(gametime.Default(), 12345)
	data, err := json.Marshal(in)
	require.NoError(t, err)
	var out gametime.GameTime
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	err = json.Unmarshal([]byte(`{"day":"Monday","hour":30,"minute":0,"dayCount":0}`), &out)
	assert.Error(t, err)
}

func TestDay_NextAndParse(t *testing.T) {
	assert.Equal(t, gametime.Monday, gametime.Sunday.Next())
	d, err := gametime.ParseDay("Thursday")
	require.NoError(t, err)
	assert.Equal(t, gametime.Thursday, d)
	_, err = gametime.ParseDay("thursday")
	assert.Error(t, err)
	assert.Panics(t, func() { gametime.Day("x").Next() })
}
