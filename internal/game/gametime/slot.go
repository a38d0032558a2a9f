package gametime

import "fmt"

// TimeSlot is a named partition of the day used to match classes.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "Morning"
	SlotAfternoon TimeSlot = "Afternoon"
	SlotEvening   TimeSlot = "Evening"
	SlotNight     TimeSlot = "Night"
)

// Slot boundaries, in hours.
const (
	MorningStart   = 6
	AfternoonStart = 12
	EveningStart   = 18
	NightStart     = 22
)

// SlotsInOrder lists the slots by start hour.
var SlotsInOrder = [...]TimeSlot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

// SlotForHour returns the slot containing hour. Night wraps midnight.
//
// Precondition: hour in [0, 23].
// Postcondition: returns exactly one of SlotsInOrder.
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour < 0 || hour >= HoursPerDay:
		panic(fmt.Sprintf("gametime: SlotForHour called with hour %d", hour))
	case hour < MorningStart:
		return SlotNight
	case hour < AfternoonStart:
		return SlotMorning
	case hour < EveningStart:
		return SlotAfternoon
	case hour < NightStart:
		return SlotEvening
	default:
		return SlotNight
	}
}

// Valid reports whether s is a known slot.
func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening, SlotNight:
		return true
	}
	return false
}

// StartHour returns the hour at which s begins.
//
// Precondition: s.Valid().
func (s TimeSlot) StartHour() int {
	switch s {
	case SlotMorning:
		return MorningStart
	case SlotAfternoon:
		return AfternoonStart
	case SlotEvening:
		return EveningStart
	case SlotNight:
		return NightStart
	}
	panic(fmt.Sprintf("gametime: unknown slot %q", s))
}

// DurationMinutes returns the length of s.
//
// Precondition: s.Valid().
func (s TimeSlot) DurationMinutes() int {
	switch s {
	case SlotMorning:
		return (AfternoonStart - MorningStart) * MinutesPerHour
	case SlotAfternoon:
		return (EveningStart - AfternoonStart) * MinutesPerHour
	case SlotEvening:
		return (NightStart - EveningStart) * MinutesPerHour
	case SlotNight:
		return (HoursPerDay - NightStart + MorningStart) * MinutesPerHour
	}
	panic(fmt.Sprintf("gametime: unknown slot %q", s))
}

// MinutesUntilSlotEnd returns how long until the slot containing t ends.
func MinutesUntilSlotEnd(t GameTime) int {
	slot := t.Slot()
	start := slot.StartHour() * MinutesPerHour
	elapsed := t.MinuteOfDay() - start
	if elapsed < 0 {
		// Past midnight inside the night slot.
		elapsed += MinutesPerDay
	}
	return slot.DurationMinutes() - elapsed
}
