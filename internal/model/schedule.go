package model

import (
	"fmt"
	"slices"
)

// DaysInWeek is the number of day buckets in a Schedule.
const DaysInWeek = 7

var dayNames = [DaysInWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the English name of a 1-indexed day (1 = Monday).
func DayName(day int) string {
	if day < 1 || day > DaysInWeek {
		return fmt.Sprintf("Day(%d)", day)
	}
	return dayNames[day-1]
}

// ShortDayName returns the three-letter abbreviation of a 1-indexed day.
func ShortDayName(day int) string {
	return DayName(day)[:3]
}

// Schedule is a named week of conferences bucketed by day.
//
// Within each day conferences are kept sorted by start time; the order is
// re-established after every add or update, so an index obtained before a
// mutation may refer to a different conference afterwards.
//
// Days are 1-indexed (1 = Monday ... 7 = Sunday). Passing a day outside
// that range is a programming error and panics.
type Schedule struct {
	Name string
	days [DaysInWeek][]Conference
}

// NewSchedule returns an empty schedule.
func NewSchedule(name string) *Schedule {
	return &Schedule{Name: name}
}

func mustDay(day int) int {
	if day < 1 || day > DaysInWeek {
		panic(fmt.Sprintf("schedule: day %d out of range [1,%d]", day, DaysInWeek))
	}
	return day - 1
}

// Clone returns a deep copy of s.
func (s *Schedule) Clone() *Schedule {
	c := &Schedule{Name: s.Name}
	for i, day := range s.days {
		c.days[i] = slices.Clone(day)
	}
	return c
}

// Day returns a copy of the conferences on the given day, in start-time order.
func (s *Schedule) Day(day int) []Conference {
	return slices.Clone(s.days[mustDay(day)])
}

// Conference returns the conference at (day, index).
func (s *Schedule) Conference(day, index int) (Conference, bool) {
	confs := s.days[mustDay(day)]
	if index < 0 || index >= len(confs) {
		return Conference{}, false
	}
	return confs[index], true
}

// IndexOf returns the position of the first conference on day equal to c,
// or -1.
func (s *Schedule) IndexOf(day int, c Conference) int {
	return slices.Index(s.days[mustDay(day)], c)
}

// AddConference appends c to the day and re-sorts it.
func (s *Schedule) AddConference(day int, c Conference) {
	d := mustDay(day)
	s.days[d] = append(s.days[d], c)
	s.sortDay(d)
}

// UpdateConference replaces the conference at (day, index) and re-sorts the
// day. The replaced conference is not guaranteed to remain at index.
func (s *Schedule) UpdateConference(day, index int, c Conference) error {
	d := mustDay(day)
	if index < 0 || index >= len(s.days[d]) {
		return NewNotFoundError(day, index, len(s.days[d]))
	}
	s.days[d][index] = c
	s.sortDay(d)
	return nil
}

// RemoveConference deletes the conference at (day, index).
func (s *Schedule) RemoveConference(day, index int) error {
	d := mustDay(day)
	if index < 0 || index >= len(s.days[d]) {
		return NewNotFoundError(day, index, len(s.days[d]))
	}
	s.days[d] = slices.Delete(s.days[d], index, index+1)
	return nil
}

// ConferenceCountByDay returns the number of conferences on each day,
// Monday first.
func (s *Schedule) ConferenceCountByDay() []int {
	counts := make([]int, DaysInWeek)
	for i, day := range s.days {
		counts[i] = len(day)
	}
	return counts
}

// Len returns the total number of conferences in the week.
func (s *Schedule) Len() int {
	n := 0
	for _, day := range s.days {
		n += len(day)
	}
	return n
}

func (s *Schedule) sortDay(d int) {
	slices.SortStableFunc(s.days[d], func(a, b Conference) int {
		return a.StartTime.Compare(b.StartTime)
	})
}
