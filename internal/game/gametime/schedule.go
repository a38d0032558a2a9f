package gametime

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ClassType identifies a subject taught at the academy.
type ClassType string

const (
	ClassPotions         ClassType = "Potions"
	ClassCharms          ClassType = "Charms"
	ClassTransfiguration ClassType = "Transfiguration"
	ClassHerbology       ClassType = "Herbology"
	ClassAstronomy       ClassType = "Astronomy"
	ClassDefenseArts     ClassType = "DefenseArts"
)

// ClassTypes lists every known subject.
var ClassTypes = [...]ClassType{
	ClassPotions, ClassCharms, ClassTransfiguration, ClassHerbology, ClassAstronomy, ClassDefenseArts,
}

// Valid reports whether c is a known subject.
func (c ClassType) Valid() bool {
	for _, k := range ClassTypes {
		if k == c {
			return true
		}
	}
	return false
}

// ScheduledClass is one entry of the weekly timetable.
type ScheduledClass struct {
	Day   Day       `yaml:"day" json:"day"`
	Slot  TimeSlot  `yaml:"slot" json:"slot"`
	Class ClassType `yaml:"class" json:"class"`
	Room  string    `yaml:"room" json:"room"`
}

// Schedule is the read-only weekly timetable. Build it with NewSchedule or
// LoadSchedule once at startup and share it by pointer.
//
// Invariant: at most one class per (day, slot); no classes on rest days.
type Schedule struct {
	byDay    map[Day][]ScheduledClass
	restDays map[Day]bool
}

// DefaultRestDays are the days without lessons.
var DefaultRestDays = []Day{Saturday, Sunday}

// NewSchedule validates entries and builds a Schedule. Entries for each day
// are ordered by slot start.
//
// Postcondition: returns a non-nil Schedule or an error naming every violation.
func NewSchedule(entries []ScheduledClass, restDays []Day) (*Schedule, error) {
	s := &Schedule{
		byDay:    make(map[Day][]ScheduledClass),
		restDays: make(map[Day]bool),
	}
	var errs []string
	for _, d := range restDays {
		if !d.Valid() {
			errs = append(errs, fmt.Sprintf("rest day %q is not a day", d))
			continue
		}
		s.restDays[d] = true
	}
	seen := make(map[Day]map[TimeSlot]ScheduledClass)
	for i, e := range entries {
		switch {
		case !e.Day.Valid():
			errs = append(errs, fmt.Sprintf("entry %d: unknown day %q", i, e.Day))
			continue
		case !e.Slot.Valid():
			errs = append(errs, fmt.Sprintf("entry %d: unknown slot %q", i, e.Slot))
			continue
		case !e.Class.Valid():
			errs = append(errs, fmt.Sprintf("entry %d: unknown class %q", i, e.Class))
			continue
		case s.restDays[e.Day]:
			errs = append(errs, fmt.Sprintf("entry %d: %s is a rest day", i, e.Day))
			continue
		}
		if seen[e.Day] == nil {
			seen[e.Day] = make(map[TimeSlot]ScheduledClass)
		}
		if prev, dup := seen[e.Day][e.Slot]; dup {
			errs = append(errs, fmt.Sprintf("entry %d: %s %s overlaps %s", i, e.Day, e.Slot, prev.Class))
			continue
		}
		seen[e.Day][e.Slot] = e
		s.byDay[e.Day] = append(s.byDay[e.Day], e)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("gametime: invalid schedule: %v", errs)
	}
	for d := range s.byDay {
		classes := s.byDay[d]
		sort.SliceStable(classes, func(i, j int) bool {
			return slotOrder(classes[i].Slot) < slotOrder(classes[j].Slot)
		})
	}
	return s, nil
}

func slotOrder(s TimeSlot) int {
	for i, v := range SlotsInOrder {
		if v == s {
			return i
		}
	}
	return len(SlotsInOrder)
}

type scheduleFile struct {
	RestDays []Day            `yaml:"rest_days"`
	Classes  []ScheduledClass `yaml:"classes"`
}

// LoadSchedule reads a YAML timetable. When the file omits rest_days,
// DefaultRestDays apply.
func LoadSchedule(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSchedule: cannot read file %q: %w", path, err)
	}
	var f scheduleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("LoadSchedule: cannot parse file %q: %w", path, err)
	}
	rest := f.RestDays
	if rest == nil {
		rest = DefaultRestDays
	}
	s, err := NewSchedule(f.Classes, rest)
	if err != nil {
		return nil, fmt.Errorf("LoadSchedule: %q: %w", path, err)
	}
	return s, nil
}

// Entries returns every scheduled class in week order.
func (s *Schedule) Entries() []ScheduledClass {
	var out []ScheduledClass
	for _, d := range DaysInOrder {
		out = append(out, s.byDay[d]...)
	}
	return out
}

// WithRestDays rebuilds the schedule with a different set of rest days. It
// fails if a class falls on one of them.
func (s *Schedule) WithRestDays(restDays []Day) (*Schedule, error) {
	return NewSchedule(s.Entries(), restDays)
}

// IsRestDay reports whether d has no lessons.
func (s *Schedule) IsRestDay(d Day) bool { return s.restDays[d] }

// ClassesOn returns a copy of the classes held on d, ordered by slot.
func (s *Schedule) ClassesOn(d Day) []ScheduledClass {
	out := make([]ScheduledClass, len(s.byDay[d]))
	copy(out, s.byDay[d])
	return out
}

// CurrentClass returns the class whose slot contains t.
//
// Precondition: t is valid.
// Postcondition: ok is false on rest days and in empty slots.
func (s *Schedule) CurrentClass(t GameTime) (ScheduledClass, bool) {
	t.mustValidate()
	if s.restDays[t.Day] {
		return ScheduledClass{}, false
	}
	slot := SlotForHour(t.Hour)
	for _, c := range s.byDay[t.Day] {
		if c.Slot == slot {
			return c, true
		}
	}
	return ScheduledClass{}, false
}

// IsClassAvailableNow reports whether a lesson is running at t.
func (s *Schedule) IsClassAvailableNow(t GameTime) bool {
	_, ok := s.CurrentClass(t)
	return ok && !s.restDays[t.Day]
}

// TimeUntilClass is the answer to "when is the next lesson".
type TimeUntilClass struct {
	Minutes int
	Class   ScheduledClass
	Found   bool
}

// sittingStarts returns the minutes of the day at which c opens. A Night
// class sits twice on its day: from midnight and again from NightStart.
func sittingStarts(c ScheduledClass) []int {
	start := c.Slot.StartHour() * MinutesPerHour
	if c.Slot == SlotNight {
		return []int{0, start}
	}
	return []int{start}
}

// TimeUntilNextClass finds the first sitting that opens strictly after t,
// looking at most one week ahead.
//
// Precondition: t is valid.
// Postcondition: Found is false iff no lesson opens within 7 days;
// otherwise 0 < Minutes <= 7*MinutesPerDay.
func (s *Schedule) TimeUntilNextClass(t GameTime) TimeUntilClass {
	t.mustValidate()
	now := t.MinuteOfDay()
	for offset := 0; offset <= DaysPerWeek; offset++ {
		day := DayOf(t.DayCount + offset)
		if s.restDays[day] {
			continue
		}
		var best TimeUntilClass
		for _, c := range s.byDay[day] {
			for _, start := range sittingStarts(c) {
				delta := offset*MinutesPerDay + start - now
				if delta <= 0 || delta > DaysPerWeek*MinutesPerDay {
					continue
				}
				if !best.Found || delta < best.Minutes {
					best = TimeUntilClass{Minutes: delta, Class: c, Found: true}
				}
			}
		}
		if best.Found {
			return best
		}
	}
	return TimeUntilClass{}
}
