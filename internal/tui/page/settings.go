package page

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/session"
	"github.com/muurk/confsched/internal/tui"
	"github.com/muurk/confsched/internal/tui/form"
)

// SettingsPage edits the application settings. A change is submitted when
// the user leaves the edited field.
type SettingsPage struct {
	session *session.Session
	form    *form.SettingsForm
}

func NewSettingsPage(s *session.Session) *SettingsPage {
	return &SettingsPage{session: s, form: form.NewSettingsForm(s.Settings())}
}

func (p *SettingsPage) Form() *form.SettingsForm { return p.form }

func (p *SettingsPage) HandleKey(msg tea.KeyMsg) tui.Action {
	wasEditing := p.form.Editing()
	action := p.form.HandleKey(msg)
	if wasEditing && !p.form.Editing() {
		if err := p.session.Submit(session.UpdateSettings{Settings: p.form.Settings()}); err != nil {
			return tui.Error(err.Error())
		}
	}
	return action
}

func (p *SettingsPage) Update(action tui.Action) tui.Action {
	return p.form.Update(action)
}

func (p *SettingsPage) Draw(s *tui.Surface, area tui.Rect) error {
	inner := s.Box(area, "Settings", tui.StyleBorder)
	parts := inner.Rows(p.form.Height(), 0)
	if err := p.form.Draw(s, parts[0]); err != nil {
		return err
	}
	s.Print(parts[1], 1, 1, "Enter edits a field, Esc saves it.", tui.StyleSubtle)
	return nil
}
