package page

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/browser"
	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/session"
	"github.com/muurk/confsched/internal/tui"
	"github.com/muurk/confsched/internal/tui/form"
)

const (
	tabsHeight   = 3
	listWidth    = 40
	passwordMask = "••••••"
)

// editing is the conference form open on the schedule page.
type editing struct {
	form  *form.ConferenceForm
	day   int
	index int // -1 for a new conference
}

// SchedulePage shows the week one day at a time and edits its conferences.
//
// The selector rows are days and its columns are the conferences of a day.
// Left and Right change the day, Up and Down the conference.
type SchedulePage struct {
	session  *session.Session
	opener   browser.Opener
	now      func() time.Time
	selector *tui.Selector2D
	edit     *editing
}

// NewSchedulePage returns a page over the schedule of s. Links are opened
// with opener.
func NewSchedulePage(s *session.Session, opener browser.Opener) *SchedulePage {
	return &SchedulePage{
		session:  s,
		opener:   opener,
		now:      time.Now,
		selector: tui.NewSelector2D(s.ConferenceCountByDay()),
	}
}

// SetClock replaces the time source used for the next occurrence.
func (p *SchedulePage) SetClock(now func() time.Time) {
	p.now = now
}

// Selected returns the selected day (1 = Monday) and conference index.
func (p *SchedulePage) Selected() (day, index int) {
	row, col := p.selector.Selected()
	return row + 1, col
}

// Editing reports whether the conference form is open.
func (p *SchedulePage) Editing() bool {
	return p.edit != nil
}

// Form returns the open conference form, or nil.
func (p *SchedulePage) Form() *form.ConferenceForm {
	if p.edit == nil {
		return nil
	}
	return p.edit.form
}

func (p *SchedulePage) HandleKey(msg tea.KeyMsg) tui.Action {
	if p.edit != nil {
		if msg.Type == tea.KeyEsc && !p.edit.form.Editing() {
			return p.commit()
		}
		return p.edit.form.HandleKey(msg)
	}

	switch msg.Type {
	case tea.KeyLeft:
		p.selector.MoveUp()
	case tea.KeyRight:
		p.selector.MoveDown()
	case tea.KeyUp:
		p.selector.MoveLeft()
	case tea.KeyDown:
		p.selector.MoveRight()
	case tea.KeyEnter:
		return p.openLink()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "e":
			day, index := p.Selected()
			c, ok := p.session.Conference(day, index)
			if !ok {
				return tui.None
			}
			p.edit = &editing{form: form.NewConferenceForm(c), day: day, index: index}
			return tui.ChangeMode(tui.ModeEdit)
		case "a":
			day, _ := p.Selected()
			p.edit = &editing{form: form.NewConferenceForm(model.Conference{}), day: day, index: -1}
			return tui.ChangeMode(tui.ModeEdit)
		case "d":
			return p.remove()
		}
	}
	return tui.None
}

// commit applies the form through the session and closes it. A new
// conference left without a title is discarded. Invalid input keeps the form
// open.
func (p *SchedulePage) commit() tui.Action {
	e := p.edit
	c, err := e.form.Conference()
	if err != nil {
		if e.index < 0 && model.IsValidationError(err) && e.form.Values()[0][0] == "" {
			p.edit = nil
			return tui.ChangeMode(tui.ModeSchedule)
		}
		return tui.Error(err.Error())
	}

	var m session.Mutation = session.UpdateConference{Day: e.day, Index: e.index, Conference: c}
	if e.index < 0 {
		m = session.AddConference{Day: e.day, Conference: c}
	}
	if err := p.session.Submit(m); err != nil {
		return tui.Error(err.Error())
	}

	p.edit = nil
	p.refresh()
	p.selector.Select(e.day-1, p.session.IndexOf(e.day, c))
	return tui.ChangeMode(tui.ModeSchedule)
}

func (p *SchedulePage) remove() tui.Action {
	day, index := p.Selected()
	if _, ok := p.session.Conference(day, index); !ok {
		return tui.None
	}
	if err := p.session.Submit(session.RemoveConference{Day: day, Index: index}); err != nil {
		return tui.Error(err.Error())
	}
	p.refresh()
	p.selector.Select(day-1, index)
	return tui.None
}

func (p *SchedulePage) openLink() tui.Action {
	c, ok := p.session.Conference(p.Selected())
	if !ok {
		return tui.None
	}
	if err := p.opener.Open(c.Link); err != nil {
		return tui.Errorf("failed to open %q: %v", c.Title, err)
	}
	return tui.None
}

// refresh rebuilds the selector from the current counts, keeping the day.
func (p *SchedulePage) refresh() {
	row, col := p.selector.Selected()
	p.selector = tui.NewSelector2D(p.session.ConferenceCountByDay())
	p.selector.Select(row, col)
}

func (p *SchedulePage) Update(action tui.Action) tui.Action {
	if p.edit != nil {
		return p.edit.form.Update(action)
	}
	return tui.None
}

func (p *SchedulePage) Draw(s *tui.Surface, area tui.Rect) error {
	parts := area.Rows(tabsHeight, 0)
	p.drawTabs(s, parts[0])

	if p.edit != nil {
		title := "Edit " + model.DayName(p.edit.day)
		if p.edit.index < 0 {
			title = "New conference on " + model.DayName(p.edit.day)
		}
		inner := s.Box(parts[1], title, tui.StyleBorderActive)
		return p.edit.form.Draw(s, inner)
	}

	cols := parts[1].Columns(listWidth, 0)
	p.drawList(s, cols[0])
	p.drawDetails(s, cols[1])
	return nil
}

func (p *SchedulePage) drawTabs(s *tui.Surface, area tui.Rect) {
	inner := s.Box(area, "Schedule", tui.StyleBorder)
	day, _ := p.Selected()
	x := 0
	for d := 1; d <= model.DaysInWeek; d++ {
		style := tui.StyleTab
		if d == day {
			style = tui.StyleTabActive
		}
		x = s.Print(inner, x, 0, "  "+model.ShortDayName(d)+"  ", style)
	}
}

func (p *SchedulePage) drawList(s *tui.Surface, area tui.Rect) {
	day, index := p.Selected()
	inner := s.Box(area, model.DayName(day), tui.StyleBorderSelected)
	confs := p.session.Day(day)
	if len(confs) == 0 {
		s.Print(inner, 1, 0, "No conferences. Press a to add one.", tui.StyleSubtle)
		return
	}

	// Scroll so the selection stays visible.
	first := 0
	if index >= inner.Height {
		first = index - inner.Height + 1
	}
	for i := first; i < len(confs) && i-first < inner.Height; i++ {
		prefix, style := "  ", tui.StyleNormal
		if i == index {
			prefix, style = "> ", tui.StyleHighlight
		}
		s.Print(inner, 0, i-first, prefix+confs[i].StartTime.String()+"  "+confs[i].Title, style)
	}
}

func (p *SchedulePage) drawDetails(s *tui.Surface, area tui.Rect) {
	inner := s.Box(area, "Details", tui.StyleBorder)
	day, index := p.Selected()
	c, ok := p.session.Conference(day, index)
	if !ok {
		return
	}

	password := "none"
	if c.HasPassword() {
		password = passwordMask
	}
	autostart := "denied"
	if c.AutostartPermission {
		autostart = "allowed"
	}
	next := "unknown"
	if t, err := model.NextOccurrence(day, c, p.now()); err == nil {
		next = t.Format("Mon 02 Jan 2006 15:04")
	}

	rows := []struct {
		label, value string
		style        tui.Style
	}{
		{"Title", c.Title, tui.StyleTitle},
		{"Time", fmt.Sprintf("%s - %s", c.StartTime, c.EndTime), tui.StyleNormal},
		{"Repeats", c.Recurrence.String(), tui.StyleNormal},
		{"Next", next, tui.StyleNormal},
		{"Link", c.Link, tui.StyleLink},
		{"Password", password, tui.StyleNormal},
		{"Autostart", autostart, tui.StyleNormal},
	}
	for i, r := range rows {
		x := s.Print(inner, 1, i, fmt.Sprintf("%-10s", r.label), tui.StyleSubtle)
		s.Print(inner, x, i, r.value, r.style)
	}
}
