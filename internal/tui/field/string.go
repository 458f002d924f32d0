package field

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/tui"
)

// blinkPeriod is the number of ticks the cursor stays on, then off.
const blinkPeriod = 3

// String is a single-line text field.
type String struct {
	frame
	buf   buffer
	ticks int
}

// NewString returns a field holding at most maxLen runes.
func NewString(title string, maxLen int, initial string) *String {
	return &String{frame: frame{title: title}, buf: newBuffer(initial, maxLen)}
}

func (f *String) Value() string { return f.buf.value() }

// Cursor returns the cursor position in runes.
func (f *String) Cursor() int { return f.buf.cursor }

func (f *String) HandleKey(msg tea.KeyMsg) tui.Action {
	var changed bool
	switch msg.Type {
	case tea.KeyLeft:
		changed = f.buf.left()
	case tea.KeyRight:
		changed = f.buf.right()
	case tea.KeyHome:
		changed = f.buf.home()
	case tea.KeyEnd:
		changed = f.buf.end()
	case tea.KeyBackspace:
		changed = f.buf.backspace()
	case tea.KeyDelete:
		changed = f.buf.delete()
	case tea.KeySpace:
		changed = f.buf.insert(' ')
	case tea.KeyRunes:
		if msg.Alt {
			break
		}
		for _, r := range msg.Runes {
			if f.buf.insert(r) {
				changed = true
			}
		}
	}
	if changed {
		f.ticks = 0
	}
	return tui.None
}

func (f *String) Update(action tui.Action) tui.Action {
	if action.Kind == tui.KindTick {
		f.ticks = (f.ticks + 1) % (blinkPeriod * 2)
	}
	return tui.None
}

// CursorShown reports whether the cursor is in the visible half of its blink.
func (f *String) CursorShown() bool {
	return f.cursorVisible && f.ticks < blinkPeriod
}

func (f *String) Draw(s *tui.Surface, area tui.Rect) error {
	inner := f.box(s, area)
	if inner.Empty() {
		return nil
	}

	// Keep the cursor in view when the text is wider than the box.
	text := f.buf.text
	offset := max(0, f.buf.cursor-inner.Width+1)
	s.Print(inner, 0, 0, string(text[offset:]), tui.StyleNormal)
	if f.CursorShown() {
		s.SetStyle(inner.X+f.buf.cursor-offset, inner.Y, tui.StyleCursor)
	}
	return nil
}
