package form

import (
	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/tui/field"
)

// MaxEarlyJoinMinutes bounds how early autostart may open a call.
const MaxEarlyJoinMinutes = 120

var autostartOptions = []string{"Off", "On"}

// SettingsForm edits the application settings.
type SettingsForm struct {
	*Form
	autostart *field.Carousel
	earlyJoin *field.Int
}

// NewSettingsForm returns a form filled with s.
func NewSettingsForm(s model.Settings) *SettingsForm {
	enabled := autostartOptions[0]
	if s.Autostart {
		enabled = autostartOptions[1]
	}
	f := &SettingsForm{
		autostart: field.NewCarousel("Autostart", autostartOptions, enabled),
		earlyJoin: field.NewInt("Join minutes early", MaxEarlyJoinMinutes, int(s.EarlyJoinMinutes)),
	}
	f.Form = New([][]Cell{
		{{Field: f.autostart, Width: textWidth}},
		{{Field: f.earlyJoin, Width: textWidth}},
	})
	return f
}

// Settings builds settings from the input.
func (f *SettingsForm) Settings() model.Settings {
	return model.Settings{
		Autostart:        f.autostart.Value() == autostartOptions[1],
		EarlyJoinMinutes: uint16(f.earlyJoin.Int()),
	}
}
