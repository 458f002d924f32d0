package field

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/confsched/internal/tui"
)

// Carousel cycles through a fixed list of options. It has no cursor.
type Carousel struct {
	frame
	options  []string
	selector *tui.Selector
}

// NewCarousel returns a carousel showing initial, or the first option when
// initial is not among options.
func NewCarousel(title string, options []string, initial string) *Carousel {
	f := &Carousel{
		frame:    frame{title: title},
		options:  append([]string(nil), options...),
		selector: tui.NewSelector(len(options)),
	}
	for i, o := range options {
		if o == initial {
			f.selector.SetIndex(i)
			break
		}
	}
	return f
}

func (f *Carousel) Value() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.selector.Index()]
}

// Index returns the position of the shown option.
func (f *Carousel) Index() int { return f.selector.Index() }

func (f *Carousel) HandleKey(msg tea.KeyMsg) tui.Action {
	switch msg.Type {
	case tea.KeyUp, tea.KeyRight:
		f.selector.Next()
	case tea.KeyDown, tea.KeyLeft:
		f.selector.Prev()
	}
	return tui.None
}

func (f *Carousel) Update(tui.Action) tui.Action { return tui.None }

func (f *Carousel) Draw(s *tui.Surface, area tui.Rect) error {
	inner := f.box(s, area)
	if inner.Width < 2 {
		return nil
	}

	value := f.Value()
	pad := max(inner.Width-2-runewidth.StringWidth(value), 0)
	line := "<" + strings.Repeat(" ", pad/2) + value + strings.Repeat(" ", pad-pad/2) + ">"
	s.Print(inner, 0, 0, line, tui.StyleNormal)
	return nil
}
