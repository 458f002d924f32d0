// Package autostart opens conferences shortly before they begin.
//
// The Watcher is a top-level UI component without a visible surface. On each
// Tick it checks, at most once per minute, whether any conference that allows
// autostart begins within the configured early-join window, and opens its
// link once per occurrence.
package autostart

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/confsched/internal/browser"
	"github.com/muurk/confsched/internal/logging"
	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/tui"
)

// Source provides the data the watcher reads.
type Source interface {
	Settings() model.Settings
	Schedule() *model.Schedule
}

// Watcher opens conferences when they are about to start.
type Watcher struct {
	source   Source
	opener   browser.Opener
	now      func() time.Time
	dispatch tui.Dispatcher

	lastCheck time.Time
	// opened maps an occurrence key to its start so old keys can be pruned.
	opened map[string]time.Time
}

// New returns a watcher reading from source and opening links with opener.
func New(source Source, opener browser.Opener) *Watcher {
	return &Watcher{
		source: source,
		opener: opener,
		now:    time.Now,
		opened: make(map[string]time.Time),
	}
}

// SetClock replaces the time source.
func (w *Watcher) SetClock(now func() time.Time) {
	w.now = now
}

func (w *Watcher) RegisterActionHandler(d tui.Dispatcher) {
	w.dispatch = d
}

func (w *Watcher) HandleKey(tea.KeyMsg) tui.Action { return tui.None }

func (w *Watcher) Draw(*tui.Surface, tui.Rect) error { return nil }

// Update runs a check on Tick. The first failure is returned; further ones
// go to the dispatcher when one is registered.
func (w *Watcher) Update(action tui.Action) tui.Action {
	if action.Kind != tui.KindTick {
		return tui.None
	}

	now := w.now()
	minute := now.Truncate(time.Minute)
	if minute.Equal(w.lastCheck) {
		return tui.None
	}
	w.lastCheck = minute

	errs := w.Check(now)
	if len(errs) == 0 {
		return tui.None
	}
	if w.dispatch != nil {
		for _, a := range errs[1:] {
			w.dispatch.Dispatch(a)
		}
	}
	return errs[0]
}

// Check opens every due conference and returns an Error action per failure.
func (w *Watcher) Check(now time.Time) []tui.Action {
	for key, start := range w.opened {
		if start.Before(now.Add(-time.Hour)) {
			delete(w.opened, key)
		}
	}

	settings := w.source.Settings()
	if !settings.Autostart {
		return nil
	}
	early := time.Duration(settings.EarlyJoinMinutes) * time.Minute

	var errs []tui.Action
	schedule := w.source.Schedule()
	for day := 1; day <= model.DaysInWeek; day++ {
		for _, c := range schedule.Day(day) {
			if !c.AutostartPermission {
				continue
			}
			start, err := model.NextOccurrence(day, c, now.Truncate(time.Minute))
			if err != nil {
				errs = append(errs, tui.Error(err.Error()))
				continue
			}
			if now.Before(start.Add(-early)) {
				continue
			}

			key := c.Title + "@" + start.Format(time.RFC3339)
			if _, done := w.opened[key]; done {
				continue
			}
			w.opened[key] = start

			if err := w.opener.Open(c.Link); err != nil {
				logging.Warn("Autostart failed", zap.String("title", c.Title), zap.Error(err))
				errs = append(errs, tui.Errorf("failed to open %q: %v", c.Title, err))
				continue
			}
			logging.Info("Autostarted conference", zap.String("title", c.Title), zap.Time("start", start))
		}
	}
	return errs
}
