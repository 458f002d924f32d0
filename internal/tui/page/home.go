package page

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/confsched/internal/config"
	"github.com/muurk/confsched/internal/tui"
)

// Home switches between the Schedule and Settings pages.
type Home struct {
	schedule *SchedulePage
	settings *SettingsPage

	page tui.Mode // ModeSchedule or ModeSettings
	mode tui.Mode

	keys      *tui.KeyMap
	help      help.Model
	lastError string
}

// NewHome returns a Home showing the schedule page.
func NewHome(schedule *SchedulePage, settings *SettingsPage) *Home {
	h := help.New()
	// The surface styles cells itself, so help text must be plain.
	plain := lipgloss.NewStyle()
	h.Styles = help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
	return &Home{
		schedule: schedule,
		settings: settings,
		page:     tui.ModeSchedule,
		mode:     tui.ModeSchedule,
		help:     h,
	}
}

// RegisterConfigHandler builds the footer help from the configured bindings.
func (h *Home) RegisterConfigHandler(cfg *config.Config) error {
	keys, err := tui.NewKeyMap(cfg.Keybindings)
	if err != nil {
		return err
	}
	h.keys = keys
	return nil
}

// Page returns the mode of the visible page.
func (h *Home) Page() tui.Mode { return h.page }

// LastError returns the error shown in the footer.
func (h *Home) LastError() string { return h.lastError }

// ShowAll reports whether the footer lists every binding.
func (h *Home) ShowAll() bool { return h.help.ShowAll }

func (h *Home) active() tui.Component {
	if h.page == tui.ModeSettings {
		return h.settings
	}
	return h.schedule
}

// HandleKey sends msg to the visible page. A key press dismisses the last
// error.
func (h *Home) HandleKey(msg tea.KeyMsg) tui.Action {
	h.lastError = ""
	return h.active().HandleKey(msg)
}

func (h *Home) Update(action tui.Action) tui.Action {
	result := h.schedule.Update(action)
	if a := h.settings.Update(action); result.IsNone() {
		result = a
	}

	switch action.Kind {
	case tui.KindChangeMode:
		h.mode = action.Mode
		if action.Mode == tui.ModeSchedule || action.Mode == tui.ModeSettings {
			h.page = action.Mode
		}
	case tui.KindError:
		h.lastError = action.Message
	case tui.KindHelp:
		h.help.ShowAll = !h.help.ShowAll
	case tui.KindResize:
		h.help.Width = action.Width
	}
	return result
}

func (h *Home) Draw(s *tui.Surface, area tui.Rect) error {
	var helpLines []string
	if h.keys != nil {
		helpLines = strings.Split(h.help.View(h.keys.Help(h.mode)), "\n")
	}
	parts := area.Rows(0, 1+len(helpLines))

	if err := h.active().Draw(s, parts[0]); err != nil {
		return err
	}

	x := s.Print(parts[1], 0, 0, " "+strings.ToUpper(h.mode.String())+" ", tui.StyleTabActive)
	if h.lastError != "" {
		s.Print(parts[1], x+1, 0, h.lastError, tui.StyleError)
	}
	for i, line := range helpLines {
		s.Print(parts[1], 1, i+1, line, tui.StyleHelp)
	}
	return nil
}
