package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/config"
)

// Component is a node of the UI tree. A parent delivers keys only to its
// active child and Update to every child.
type Component interface {
	// HandleKey reacts to a key press. The zero Action means nothing happened.
	HandleKey(msg tea.KeyMsg) Action
	// Update is called with every action drained from the queue. Kinds a
	// component does not care about are ignored.
	Update(action Action) Action
	// Draw paints the component into area.
	Draw(s *Surface, area Rect) error
}

// Dispatcher accepts actions for the queue outside the HandleKey/Update
// return path.
type Dispatcher interface {
	Dispatch(action Action)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(Action)

func (f DispatchFunc) Dispatch(action Action) { f(action) }

// Optional hooks, called once before the first loop iteration.
type (
	ActionHandlerRegistrar interface {
		RegisterActionHandler(d Dispatcher)
	}
	ConfigHandlerRegistrar interface {
		RegisterConfigHandler(cfg *config.Config) error
	}
	Initializer interface {
		Init(area Rect) error
	}
)

// Setup runs whichever optional hooks c implements.
func Setup(c Component, d Dispatcher, cfg *config.Config, area Rect) error {
	if r, ok := c.(ActionHandlerRegistrar); ok {
		r.RegisterActionHandler(d)
	}
	if r, ok := c.(ConfigHandlerRegistrar); ok {
		if err := r.RegisterConfigHandler(cfg); err != nil {
			return err
		}
	}
	if i, ok := c.(Initializer); ok {
		if err := i.Init(area); err != nil {
			return err
		}
	}
	return nil
}
