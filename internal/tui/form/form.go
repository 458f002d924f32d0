// Package form arranges input fields in rows and moves focus between them.
//
// A Form is either browsing, where the arrow keys move the selection, or
// editing the selected field, where keys go to that field. Enter starts
// editing and Esc stops it:
//
//	Browsing --Enter--> Editing --Esc--> Browsing
//
// The selected field is drawn with field.StyleSelected, the edited one with
// field.StyleActive and all others with field.StyleDefault.
package form

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/tui"
	"github.com/muurk/confsched/internal/tui/field"
)

// Cell places a field in a row. Width 0 lets the field take the space the
// fixed-width fields of its row leave.
type Cell struct {
	Field field.Field
	Width int
}

// Form is the browsing/editing state machine over a grid of fields.
type Form struct {
	rows     [][]Cell
	selector *tui.Selector2D
	editing  bool
}

// New returns a form browsing the field at (0, 0).
func New(rows [][]Cell) *Form {
	lengths := make([]int, len(rows))
	for i, row := range rows {
		lengths[i] = len(row)
	}
	f := &Form{rows: rows, selector: tui.NewSelector2D(lengths)}
	if sel := f.selected(); sel != nil {
		sel.SetStyle(field.StyleSelected)
	}
	return f
}

// Editing reports whether the selected field receives keys.
func (f *Form) Editing() bool { return f.editing }

// Selected returns the (row, column) of the selected field.
func (f *Form) Selected() (row, col int) { return f.selector.Selected() }

// Field returns the field at (row, col), or nil.
func (f *Form) Field(row, col int) field.Field {
	if row < 0 || row >= len(f.rows) || col < 0 || col >= len(f.rows[row]) {
		return nil
	}
	return f.rows[row][col].Field
}

// Values returns the text of every field, row by row.
func (f *Form) Values() [][]string {
	out := make([][]string, len(f.rows))
	for i, row := range f.rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Field.Value()
		}
	}
	return out
}

// Height returns the rows the form needs to draw every field.
func (f *Form) Height() int {
	return len(f.rows) * field.Height
}

func (f *Form) selected() field.Field {
	return f.Field(f.selector.Selected())
}

func (f *Form) HandleKey(msg tea.KeyMsg) tui.Action {
	sel := f.selected()
	if sel == nil {
		return tui.None
	}

	if f.editing {
		if msg.Type == tea.KeyEsc {
			f.editing = false
			sel.SetStyle(field.StyleSelected)
			sel.SetCursorVisible(false)
			return tui.None
		}
		return sel.HandleKey(msg)
	}

	switch msg.Type {
	case tea.KeyEnter:
		f.editing = true
		sel.SetStyle(field.StyleActive)
		sel.SetCursorVisible(true)
	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight:
		sel.SetStyle(field.StyleDefault)
		switch msg.Type {
		case tea.KeyUp:
			f.selector.MoveUp()
		case tea.KeyDown:
			f.selector.MoveDown()
		case tea.KeyLeft:
			f.selector.MoveLeft()
		case tea.KeyRight:
			f.selector.MoveRight()
		}
		f.selected().SetStyle(field.StyleSelected)
	}
	return tui.None
}

// Update forwards action to every field and returns the first result.
func (f *Form) Update(action tui.Action) tui.Action {
	result := tui.None
	for _, row := range f.rows {
		for _, c := range row {
			if a := c.Field.Update(action); result.IsNone() {
				result = a
			}
		}
	}
	return result
}

func (f *Form) Draw(s *tui.Surface, area tui.Rect) error {
	heights := make([]int, len(f.rows))
	for i := range heights {
		heights[i] = field.Height
	}
	for i, rowArea := range area.Rows(heights...) {
		if rowArea.Empty() {
			break
		}
		widths := make([]int, len(f.rows[i]))
		for j, c := range f.rows[i] {
			widths[j] = c.Width
		}
		for j, cellArea := range rowArea.Columns(widths...) {
			if cellArea.Empty() {
				continue
			}
			if err := f.rows[i][j].Field.Draw(s, cellArea); err != nil {
				return err
			}
		}
	}
	return nil
}
