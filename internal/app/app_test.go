package app

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/config"
	"github.com/muurk/confsched/internal/tui"
)

// recorder is a root component that records what it receives.
type recorder struct {
	keys     []string
	actions  []tui.Action
	dispatch tui.Dispatcher
	initArea tui.Rect

	// reply maps a key to the action HandleKey returns for it.
	reply map[string]tui.Action
	// onTick is dispatched when a Tick is drained.
	onTick   tui.Action
	drawFail bool
}

func (r *recorder) RegisterActionHandler(d tui.Dispatcher) { r.dispatch = d }

func (r *recorder) Init(area tui.Rect) error {
	r.initArea = area
	return nil
}

func (r *recorder) HandleKey(msg tea.KeyMsg) tui.Action {
	r.keys = append(r.keys, msg.String())
	return r.reply[msg.String()]
}

func (r *recorder) Update(action tui.Action) tui.Action {
	r.actions = append(r.actions, action)
	if action.Kind == tui.KindTick && !r.onTick.IsNone() {
		r.dispatch.Dispatch(r.onTick)
	}
	return tui.None
}

func (r *recorder) Draw(s *tui.Surface, area tui.Rect) error {
	if r.drawFail {
		panic("boom")
	}
	s.Print(area, 0, 0, "hello", tui.StyleNormal)
	return nil
}

func (r *recorder) saw(kind tui.Kind) bool {
	return slices.ContainsFunc(r.actions, func(a tui.Action) bool { return a.Kind == kind })
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newApp(t *testing.T, roots ...tui.Component) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Keybindings["Schedule"]["<g><g>"] = "Help"
	a, err := New(cfg, tui.Rect{Width: 40, Height: 10}, roots...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestNew_RunsSetupHooks(t *testing.T) {
	rec := &recorder{}
	newApp(t, rec)

	if rec.dispatch == nil {
		t.Error("RegisterActionHandler was not called")
	}
	if rec.initArea.Width != 40 || rec.initArea.Height != 10 {
		t.Errorf("Init area = %+v, want 40x10", rec.initArea)
	}
}

func TestNew_InvalidBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Keybindings["Schedule"]["<x>"] = "Explode"
	if _, err := New(cfg, tui.Rect{}); err == nil {
		t.Error("New() expected error for unknown action")
	}
}

func TestUpdate_KeySequence(t *testing.T) {
	tests := []struct {
		name     string
		msgs     []tea.Msg
		wantHelp bool
		pending  []string
	}{
		{"g g", []tea.Msg{runes("g"), runes("g")}, true, nil},
		{"g tick g", []tea.Msg{runes("g"), tickMsg{}, runes("g")}, false, []string{"g"}},
		{"single g", []tea.Msg{runes("g")}, false, []string{"g"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			a := newApp(t, rec)
			for _, msg := range tt.msgs {
				a.Update(msg)
			}
			if got := rec.saw(tui.KindHelp); got != tt.wantHelp {
				t.Errorf("saw Help = %v, want %v", got, tt.wantHelp)
			}
			if got := a.PendingKeys(); !slices.Equal(got, tt.pending) {
				t.Errorf("PendingKeys() = %v, want %v", got, tt.pending)
			}
		})
	}
}

func TestUpdate_KeysReachRoots(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	a := newApp(t, first, second)

	a.Update(runes("x"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	for i, rec := range []*recorder{first, second} {
		if !slices.Equal(rec.keys, []string{"x", "tab"}) {
			t.Errorf("root %d keys = %v", i, rec.keys)
		}
	}
	if a.Mode() != tui.ModeSettings {
		t.Errorf("Mode() = %v, want Settings after tab", a.Mode())
	}
}

func TestUpdate_ComponentActions(t *testing.T) {
	rec := &recorder{reply: map[string]tui.Action{"e": tui.ChangeMode(tui.ModeEdit)}}
	a := newApp(t, rec)

	a.Update(runes("e"))
	if a.Mode() != tui.ModeEdit {
		t.Fatalf("Mode() = %v, want Edit", a.Mode())
	}

	// Edit mode binds no plain keys, so q is text rather than Quit.
	_, cmd := a.Update(runes("q"))
	if a.Quitting() {
		t.Error("q must not quit in Edit mode")
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q returned tea.Quit in Edit mode")
		}
	}
}

func TestUpdate_Quit(t *testing.T) {
	a := newApp(t, &recorder{})

	_, cmd := a.Update(runes("q"))
	if !a.Quitting() {
		t.Fatal("Quitting() = false after q")
	}
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
	if a.View() != "" {
		t.Error("View() should be empty while quitting")
	}
}

func TestUpdate_DispatchedActionsAreDrained(t *testing.T) {
	rec := &recorder{onTick: tui.Error("late")}
	a := newApp(t, rec)

	a.Update(tickMsg(time.Now()))
	if !rec.saw(tui.KindError) {
		t.Error("dispatched Error was not drained in the same update")
	}
}

func TestUpdate_ResizeAndResume(t *testing.T) {
	rec := &recorder{}
	a := newApp(t, rec)

	a.Update(tea.WindowSizeMsg{Width: 20, Height: 3})
	if lines := strings.Split(a.View(), "\n"); len(lines) != 3 {
		t.Errorf("View() has %d lines, want 3", len(lines))
	}

	a.Update(tea.ResumeMsg{})
	if !rec.saw(tui.KindResume) || !rec.saw(tui.KindClearScreen) {
		t.Errorf("actions = %v, want Resume and ClearScreen", rec.actions)
	}
}

func TestView_DrawPanicBecomesError(t *testing.T) {
	rec := &recorder{drawFail: true}
	a := newApp(t, rec)

	a.View()
	a.Update(frameMsg(time.Now()))

	var msg string
	for _, action := range rec.actions {
		if action.Kind == tui.KindError {
			msg = action.Message
		}
	}
	if !strings.HasPrefix(msg, "failed to draw: ") {
		t.Errorf("error message = %q, want failed to draw prefix", msg)
	}
}

func TestView_ShowsPendingKeys(t *testing.T) {
	a := newApp(t, &recorder{})

	a.Update(runes("g"))
	view := a.View()
	if !strings.Contains(a.surface.String(), "hello") {
		t.Errorf("surface = %q, want root output", a.surface.String())
	}
	if !strings.Contains(a.surface.Text(9), "g") || view == "" {
		t.Errorf("last row = %q, want pending key", a.surface.Text(9))
	}
}
