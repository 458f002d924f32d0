package tui

import (
	"errors"
	"testing"
)

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{Tick, "Tick"},
		{Quit, "Quit"},
		{ClearScreen, "ClearScreen"},
		{Resize(80, 24), "Resize(80,24)"},
		{Error("disk full"), "Error(disk full)"},
		{ChangeMode(ModeSettings), "ChangeMode(Settings)"},
		{None, "None"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseAction_RoundTrip(t *testing.T) {
	actions := []Action{
		Tick, Render, Suspend, Resume, Quit, ClearScreen, Help,
		Resize(120, 40),
		Error("failed to draw: boom (again)"),
		ChangeMode(ModeSchedule), ChangeMode(ModeSettings), ChangeMode(ModeEdit),
	}

	for _, want := range actions {
		got, err := ParseAction(want.String())
		if err != nil {
			t.Errorf("ParseAction(%q) error = %v", want.String(), err)
			continue
		}
		if got != want {
			t.Errorf("ParseAction(%q) = %+v, want %+v", want.String(), got, want)
		}
	}
}

func TestParseAction_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"Explode",
		"Quit(now)",
		"Resize",
		"Resize(80)",
		"Resize(a,b)",
		"ChangeMode(Nowhere)",
		"ChangeMode(Settings",
	}

	for _, in := range inputs {
		_, err := ParseAction(in)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseAction(%q) error = %v, want *ParseError", in, err)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMode(" settings "); err != nil || got != ModeSettings {
		t.Errorf("ParseMode should ignore case and spaces, got %v, %v", got, err)
	}
	if _, err := ParseMode("Home"); err == nil {
		t.Error("ParseMode(Home) expected error")
	}
}

func TestZeroActionIsNone(t *testing.T) {
	var a Action
	if !a.IsNone() || a != None {
		t.Error("zero Action should be None")
	}
	if Quit.IsNone() {
		t.Error("Quit should not be None")
	}
}
