// Package field provides the input fields forms are built from.
//
// Every field draws itself as a titled box three rows tall. The form owning a
// field decides its Style and whether its cursor is shown.
package field

import (
	"github.com/muurk/confsched/internal/tui"
)

// Height is the number of rows a field occupies.
const Height = 3

// Style is the border state of a field inside a form.
type Style uint8

const (
	StyleDefault Style = iota
	StyleSelected
	StyleActive
)

func (s Style) String() string {
	switch s {
	case StyleSelected:
		return "selected"
	case StyleActive:
		return "active"
	}
	return "default"
}

func (s Style) border() tui.Style {
	switch s {
	case StyleSelected:
		return tui.StyleBorderSelected
	case StyleActive:
		return tui.StyleBorderActive
	}
	return tui.StyleBorder
}

// Field is a leaf of a form.
type Field interface {
	tui.Component
	Title() string
	// Value returns the current input as text.
	Value() string
	SetStyle(style Style)
	Style() Style
	SetCursorVisible(visible bool)
}

// frame holds the state every field shares.
type frame struct {
	title         string
	style         Style
	cursorVisible bool
}

func (f *frame) Title() string                 { return f.title }
func (f *frame) SetStyle(style Style)          { f.style = style }
func (f *frame) Style() Style                  { return f.style }
func (f *frame) SetCursorVisible(visible bool) { f.cursorVisible = visible }

// box draws the border and returns the single text line inside it.
func (f *frame) box(s *tui.Surface, area tui.Rect) tui.Rect {
	area = area.Rows(Height)[0]
	return s.Box(area, f.title, f.style.border())
}
