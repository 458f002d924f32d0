package field

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/tui"
)

// Int is a text field restricted to a non-negative integer no larger than max.
type Int struct {
	String
	max int
}

// NewInt returns an integer field. Its length limit is the digit count of max.
func NewInt(title string, max, initial int) *Int {
	f := &Int{max: max}
	f.String = String{
		frame: frame{title: title},
		buf:   newBuffer(strconv.Itoa(min(initial, max)), len(strconv.Itoa(max))),
	}
	f.buf.accept = f.accept
	return f
}

func (f *Int) accept(candidate []rune) bool {
	for _, r := range candidate {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(string(candidate))
	return err == nil && n <= f.max
}

// Int returns the value, treating empty input as 0.
func (f *Int) Int() int {
	n, err := strconv.Atoi(f.Value())
	if err != nil {
		return 0
	}
	return n
}

// Max returns the largest accepted value.
func (f *Int) Max() int { return f.max }

func (f *Int) HandleKey(msg tea.KeyMsg) tui.Action {
	if msg.Type == tea.KeySpace {
		return tui.None
	}
	return f.String.HandleKey(msg)
}
