// Package app runs the dispatch loop of confsched on top of Bubble Tea.
//
// Every message Bubble Tea delivers is turned into actions: key presses are
// matched against the bindings of the current mode and handed to the root
// components, timer messages become Tick and Render, and window changes
// become Resize. The resulting queue is drained to completion before Update
// returns, and each drained action is given to every root component, whose
// answers join the same queue.
package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/muurk/confsched/internal/config"
	"github.com/muurk/confsched/internal/logging"
	"github.com/muurk/confsched/internal/tui"
)

type (
	tickMsg  time.Time
	frameMsg time.Time
)

// App is the Bubble Tea model driving the root components.
type App struct {
	keys  *tui.KeyMap
	roots []tui.Component
	mode  tui.Mode

	queue   []tui.Action
	pending []string

	tickEvery  time.Duration
	frameEvery time.Duration

	surface   *tui.Surface
	quitting  bool
	suspended bool
}

// New returns an App for the given roots and runs their setup hooks with the
// initial terminal area.
func New(cfg *config.Config, area tui.Rect, roots ...tui.Component) (*App, error) {
	keys, err := tui.NewKeyMap(cfg.Keybindings)
	if err != nil {
		return nil, fmt.Errorf("invalid key bindings: %w", err)
	}

	a := &App{
		keys:       keys,
		roots:      roots,
		mode:       tui.ModeSchedule,
		tickEvery:  rate(cfg.TickRate),
		frameEvery: rate(cfg.FrameRate),
		surface:    tui.NewSurface(area.Width, area.Height),
	}
	dispatcher := tui.DispatchFunc(a.enqueue)
	for _, root := range roots {
		if err := tui.Setup(root, dispatcher, cfg, area); err != nil {
			return nil, fmt.Errorf("failed to set up %T: %w", root, err)
		}
	}
	return a, nil
}

func rate(perSecond float64) time.Duration {
	return time.Duration(float64(time.Second) / perSecond)
}

// Mode returns the current mode.
func (a *App) Mode() tui.Mode { return a.mode }

// PendingKeys returns the keys of an unfinished multi-key binding.
func (a *App) PendingKeys() []string {
	return append([]string(nil), a.pending...)
}

// Quitting reports whether a Quit action has been drained.
func (a *App) Quitting() bool { return a.quitting }

func (a *App) enqueue(action tui.Action) {
	if !action.IsNone() {
		a.queue = append(a.queue, action)
	}
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.tickEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) frame() tea.Cmd {
	return tea.Tick(a.frameEvery, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Init starts the tick and frame timers.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.tick(), a.frame())
}

// Update turns msg into actions and drains the queue.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.enqueue(tui.Resize(msg.Width, msg.Height))
	case tickMsg:
		a.enqueue(tui.Tick)
		cmds = append(cmds, a.tick())
	case frameMsg:
		a.enqueue(tui.Render)
		cmds = append(cmds, a.frame())
	case tea.ResumeMsg:
		a.enqueue(tui.Resume)
		a.enqueue(tui.ClearScreen)
	}

	cmds = append(cmds, a.drain()...)
	if a.quitting {
		return a, tea.Quit
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) {
	if action, ok := a.keys.MatchKey(a.mode, msg); ok {
		logging.LogBinding([]string{msg.String()}, action, a.mode)
		a.pending = nil
		a.enqueue(action)
	} else {
		a.pending = append(a.pending, msg.String())
		if action, ok := a.keys.MatchSequence(a.mode, a.pending); ok {
			logging.LogBinding(a.pending, action, a.mode)
			a.pending = nil
			a.enqueue(action)
		}
	}

	for _, root := range a.roots {
		a.enqueue(root.HandleKey(msg))
	}
}

// drain processes the queue until it is empty, including the actions the
// components produce while it runs.
func (a *App) drain() []tea.Cmd {
	var cmds []tea.Cmd
	for len(a.queue) > 0 {
		action := a.queue[0]
		a.queue = a.queue[1:]

		if action.Kind != tui.KindTick && action.Kind != tui.KindRender {
			logging.LogAction(action, a.mode)
		}

		switch action.Kind {
		case tui.KindTick:
			a.pending = nil
		case tui.KindQuit:
			a.quitting = true
		case tui.KindSuspend:
			a.suspended = true
			cmds = append(cmds, tea.Suspend)
		case tui.KindResume:
			a.suspended = false
		case tui.KindResize:
			a.surface.Resize(action.Width, action.Height)
		case tui.KindChangeMode:
			a.mode = action.Mode
		case tui.KindClearScreen:
			cmds = append(cmds, tea.ClearScreen)
		case tui.KindError:
			logging.Error("Error action", zap.String("message", action.Message))
		}

		for _, root := range a.roots {
			a.enqueue(root.Update(action))
		}
	}
	return cmds
}

// View paints every root into the surface and the pending keys into the
// bottom right corner. A failed draw is queued as an Error action for the
// next drain.
func (a *App) View() string {
	if a.suspended || a.quitting {
		return ""
	}
	a.surface.Clear()
	area := a.surface.Bounds()
	for _, root := range a.roots {
		if err := draw(root, a.surface, area); err != nil {
			a.enqueue(tui.Error("failed to draw: " + err.Error()))
		}
	}
	if len(a.pending) > 0 {
		label := strings.Join(a.pending, " ")
		a.surface.Print(area, area.Width-runewidth.StringWidth(label)-1, area.Height-1, label, tui.StyleWarning)
	}
	return a.surface.Render()
}

func draw(c tui.Component, s *tui.Surface, area tui.Rect) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %T: %v", c, r)
		}
	}()
	return c.Draw(s, area)
}
