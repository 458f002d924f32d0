package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/confsched/internal/model"
)

// RenderDay renders the conferences of one day in a bordered box. The next
// occurrence of each conference after now is noted when it is not today.
func RenderDay(day int, confs []model.Conference, now time.Time, width int) string {
	lines := []string{DayTitleStyle.Render(model.DayName(day))}
	if len(confs) == 0 {
		lines = append(lines, EmptyDayStyle.Render("No conferences"))
	}
	for _, c := range confs {
		lines = append(lines, renderConference(day, c, now))
	}
	return DayBoxStyle(clampWidth(width)).Render(strings.Join(lines, "\n"))
}

func renderConference(day int, c model.Conference, now time.Time) string {
	head := TimeStyle.Render(fmt.Sprintf("%s-%s", c.StartTime, c.EndTime)) + "  " + ConferenceTitleStyle.Render(c.Title)

	var notes []string
	if c.Recurrence != model.RecurEvery {
		notes = append(notes, c.Recurrence.String()+" weeks")
	}
	if c.AutostartPermission {
		notes = append(notes, "autostart")
	}
	if c.HasPassword() {
		notes = append(notes, "password")
	}
	if next, err := model.NextOccurrence(day, c, now); err == nil {
		notes = append(notes, "next "+next.Format("Mon 02 Jan"))
	}
	if len(notes) > 0 {
		head += "  " + NoteStyle.Render("("+strings.Join(notes, ", ")+")")
	}

	if c.Link == "" {
		return head
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, "             "+LinkStyle.Render(c.Link))
}

// RenderWeek renders every day of s, Monday first.
func RenderWeek(s *model.Schedule, now time.Time, width int) string {
	days := make([]string, model.DaysInWeek)
	for d := 1; d <= model.DaysInWeek; d++ {
		days[d-1] = RenderDay(d, s.Day(d), now, width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, days...)
}

// FormatCompact renders s with one unstyled line per conference, for
// scripting. Days given in only restrict the output; none means all days.
func FormatCompact(s *model.Schedule, only ...int) string {
	var b strings.Builder
	for d := 1; d <= model.DaysInWeek; d++ {
		if len(only) > 0 && !containsDay(only, d) {
			continue
		}
		for _, c := range s.Day(d) {
			fmt.Fprintf(&b, "%s\t%s-%s\t%s\t%s\t%s\n",
				model.ShortDayName(d), c.StartTime, c.EndTime, c.Recurrence, c.Title, c.Link)
		}
	}
	return b.String()
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
