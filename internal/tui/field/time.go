package field

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/tui"
)

// Time edits an HH:MM value as two integer parts. Left and Right switch
// between hours and minutes.
type Time struct {
	frame
	hours   *Int
	minutes *Int
	onHours bool
}

// NewTime returns a time field showing initial.
func NewTime(title string, initial model.Time) *Time {
	return &Time{
		frame:   frame{title: title},
		hours:   NewInt("", 23, initial.Hour()),
		minutes: NewInt("", 59, initial.Minute()),
		onHours: true,
	}
}

// Value returns HH:MM. Empty parts count as 0.
func (f *Time) Value() string {
	return fmt.Sprintf("%02d:%02d", f.hours.Int(), f.minutes.Int())
}

// Time returns the parsed value.
func (f *Time) Time() (model.Time, error) {
	return model.NewTime(f.hours.Int(), f.minutes.Int())
}

// EditingHours reports whether keys go to the hours part.
func (f *Time) EditingHours() bool { return f.onHours }

func (f *Time) HandleKey(msg tea.KeyMsg) tui.Action {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyRight:
		f.onHours = !f.onHours
		return tui.None
	}
	if f.onHours {
		return f.hours.HandleKey(msg)
	}
	return f.minutes.HandleKey(msg)
}

func (f *Time) Update(tui.Action) tui.Action { return tui.None }

func (f *Time) Draw(s *tui.Surface, area tui.Rect) error {
	inner := f.box(s, area)
	if inner.Empty() {
		return nil
	}

	cols := inner.Columns(0, 2, 1, 2, 0)
	hoursStyle, minutesStyle := tui.StyleNormal, tui.StyleNormal
	if f.cursorVisible {
		if f.onHours {
			hoursStyle = tui.StyleHighlight
		} else {
			minutesStyle = tui.StyleHighlight
		}
	}
	s.Print(cols[1], 0, 0, fmt.Sprintf("%02d", f.hours.Int()), hoursStyle)
	s.Print(cols[2], 0, 0, ":", tui.StyleNormal)
	s.Print(cols[3], 0, 0, fmt.Sprintf("%02d", f.minutes.Int()), minutesStyle)
	return nil
}
