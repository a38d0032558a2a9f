package gametime

import "iter"

// MoonPhase is one of the eight phases of the academy moon.
type MoonPhase int

const (
	MoonNew MoonPhase = iota
	MoonWaxingCrescent
	MoonFirstQuarter
	MoonWaxingGibbous
	MoonFull
	MoonWaningGibbous
	MoonLastQuarter
	MoonWaningCrescent
)

const (
	// MoonPhaseCount is the number of phases in one cycle.
	MoonPhaseCount = 8
	// DaysPerPhase is how many days each phase lasts.
	DaysPerPhase = 3
	// MoonCycleDays is the length of a full cycle. Epoch day 0 is a new moon.
	MoonCycleDays = MoonPhaseCount * DaysPerPhase
)

var moonNames = [MoonPhaseCount]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// illumination of the visible disc per phase, in percent.
var moonIllumination = [MoonPhaseCount]int{0, 25, 50, 75, 100, 75, 50, 25}

// String returns the display name of p.
func (p MoonPhase) String() string {
	if p < 0 || p >= MoonPhaseCount {
		return "Unknown"
	}
	return moonNames[p]
}

// MoonInfo describes the moon on a given day.
type MoonInfo struct {
	Phase         MoonPhase
	Name          string
	DayInCycle    int
	Illumination  int
	DaysUntilFull int
}

// PhaseForDay returns the phase on the given elapsed day.
//
// Precondition: dayCount >= 0.
func PhaseForDay(dayCount int) MoonPhase {
	if dayCount < 0 {
		panic("gametime: PhaseForDay called with negative day count")
	}
	return MoonPhase((dayCount / DaysPerPhase) % MoonPhaseCount)
}

func moonInfoForDay(dayCount int) MoonInfo {
	phase := PhaseForDay(dayCount)
	inCycle := dayCount % MoonCycleDays
	fullStart := int(MoonFull) * DaysPerPhase
	untilFull := fullStart - inCycle
	if phase == MoonFull {
		untilFull = 0
	} else if untilFull < 0 {
		untilFull += MoonCycleDays
	}
	return MoonInfo{
		Phase:         phase,
		Name:          phase.String(),
		DayInCycle:    inCycle,
		Illumination:  moonIllumination[phase],
		DaysUntilFull: untilFull,
	}
}

// MoonPhaseInfo returns the moon as seen at t.
//
// Precondition: t is valid.
func MoonPhaseInfo(t GameTime) MoonInfo {
	t.mustValidate()
	return moonInfoForDay(t.DayCount)
}

// MoonDay is one entry of a moon forecast.
type MoonDay struct {
	DayCount int
	Day      Day
	Moon     MoonInfo
}

// MoonForecast yields the moon for each of the daysAhead days following t.
// The sequence is lazy and finite; every range over it starts again from t.
//
// Precondition: t is valid and daysAhead >= 0.
func MoonForecast(t GameTime, daysAhead int) iter.Seq[MoonDay] {
	t.mustValidate()
	if daysAhead < 0 {
		panic("gametime: MoonForecast called with negative daysAhead")
	}
	return func(yield func(MoonDay) bool) {
		for i := 1; i <= daysAhead; i++ {
			dc := t.DayCount + i
			if !yield(MoonDay{DayCount: dc, Day: DayOf(dc), Moon: moonInfoForDay(dc)}) {
				return
			}
		}
	}
}
