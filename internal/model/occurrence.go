package model

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = [DaysInWeek]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// DayOf returns the 1-indexed schedule day (1 = Monday) of t.
func DayOf(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// NextOccurrence returns the first start of c, scheduled on the given day,
// at or after the instant after. The result is in after's location.
//
// Even/Odd recurrences skip weeks whose ISO week number has the wrong parity.
func NextOccurrence(day int, c Conference, after time.Time) (time.Time, error) {
	d := mustDay(day)
	midnight := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location())

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   midnight,
		Byweekday: []rrule.Weekday{rruleWeekdays[d]},
		Byhour:    []int{c.StartTime.Hour()},
		Byminute:  []int{c.StartTime.Minute()},
		Bysecond:  []int{0},
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build weekly rule for %q: %w", c.Title, err)
	}

	// ISO weeks alternate parity except across a 53-week year, so a match
	// is always found within three candidates.
	next := r.After(after, true)
	for i := 0; i < 3 && !next.IsZero(); i++ {
		if c.Recurrence.Matches(next) {
			return next, nil
		}
		next = r.After(next, false)
	}
	return time.Time{}, fmt.Errorf("no occurrence of %q found after %s", c.Title, after.Format(time.RFC3339))
}
