package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/config"
)

func TestParseKeySequence(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"<q>", []string{"q"}, false},
		{"<ctrl+c>", []string{"ctrl+c"}, false},
		{"<g><g>", []string{"g", "g"}, false},
		{"<space>", []string{" "}, false},
		{"<>>", []string{">"}, false},
		{"<?>", []string{"?"}, false},
		{"q", nil, true},
		{"<q", nil, true},
		{"<>", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeySequence(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKeySequence(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseKeySequence(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if err == nil {
				again, _ := ParseKeySequence(FormatKeySequence(got))
				if !reflect.DeepEqual(again, got) {
					t.Errorf("FormatKeySequence round trip = %q, want %q", again, got)
				}
			}
		})
	}
}

func TestNewKeyMap_Defaults(t *testing.T) {
	km, err := NewKeyMap(config.DefaultKeybindings())
	if err != nil {
		t.Fatalf("NewKeyMap() error = %v", err)
	}

	tests := []struct {
		name   string
		mode   Mode
		msg    tea.KeyMsg
		want   Action
		wantOK bool
	}{
		{"q quits", ModeSchedule, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, Quit, true},
		{"ctrl+c quits", ModeEdit, tea.KeyMsg{Type: tea.KeyCtrlC}, Quit, true},
		{"tab to settings", ModeSchedule, tea.KeyMsg{Type: tea.KeyTab}, ChangeMode(ModeSettings), true},
		{"tab back", ModeSettings, tea.KeyMsg{Type: tea.KeyTab}, ChangeMode(ModeSchedule), true},
		{"q is text in edit", ModeEdit, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, None, false},
		{"unbound", ModeSchedule, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, None, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.MatchKey(tt.mode, tt.msg)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MatchKey() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKeyMap_Sequence(t *testing.T) {
	km, err := NewKeyMap(config.Keybindings{
		"Schedule": {"<g><g>": "Help", "<space>": "ClearScreen"},
	})
	if err != nil {
		t.Fatalf("NewKeyMap() error = %v", err)
	}

	if _, ok := km.MatchKey(ModeSchedule, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}); ok {
		t.Error("a single g must not match the two-key binding")
	}
	if _, ok := km.MatchSequence(ModeSchedule, []string{"g"}); ok {
		t.Error("prefix must not match")
	}
	if got, ok := km.MatchSequence(ModeSchedule, []string{"g", "g"}); !ok || got != Help {
		t.Errorf("MatchSequence(g g) = %v, %v, want Help", got, ok)
	}
	if got, ok := km.MatchKey(ModeSchedule, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}); !ok || got != ClearScreen {
		t.Errorf("MatchKey(space) = %v, %v, want ClearScreen", got, ok)
	}
}

func TestNewKeyMap_Errors(t *testing.T) {
	tests := []config.Keybindings{
		{"Nowhere": {"<q>": "Quit"}},
		{"Schedule": {"q": "Quit"}},
		{"Schedule": {"<q>": "Explode"}},
		{"Schedule": {"<q>": "Quit"}, "schedule": {"<q>": "Help"}},
	}
	for _, kb := range tests {
		if _, err := NewKeyMap(kb); err == nil {
			t.Errorf("NewKeyMap(%v) expected error", kb)
		}
	}
}

func TestNewKeyMap_MergedModeCase(t *testing.T) {
	tests := []struct {
		name      string
		user      config.Keybindings
		want      Action
		wantBound bool
	}{
		{"unbind", config.Keybindings{"schedule": {"<q>": ""}}, None, false},
		{"rebind", config.Keybindings{"schedule": {"<q>": "Help"}}, Help, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := config.DefaultKeybindings()
			kb.Merge(tt.user)
			km, err := NewKeyMap(kb)
			if err != nil {
				t.Fatalf("NewKeyMap() error = %v", err)
			}
			got, ok := km.MatchKey(ModeSchedule, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
			if ok != tt.wantBound || (ok && got != tt.want) {
				t.Errorf("MatchKey(q) = %v, %v, want %v, %v", got, ok, tt.want, tt.wantBound)
			}
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km, err := NewKeyMap(config.DefaultKeybindings())
	if err != nil {
		t.Fatal(err)
	}

	short := km.Help(ModeSchedule).ShortHelp()
	if len(short) != 5 {
		t.Fatalf("ShortHelp() has %d bindings, want 5", len(short))
	}
	descs := map[string]string{}
	for _, b := range short {
		descs[b.Help().Key] = b.Help().Desc
	}
	if descs["tab"] != "settings" || descs["q"] != "quit" {
		t.Errorf("help = %v", descs)
	}

	total := 0
	for _, group := range km.Help(ModeSchedule).FullHelp() {
		total += len(group)
	}
	if total != 5 {
		t.Errorf("FullHelp() has %d bindings, want 5", total)
	}
}
