package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Rect is a region of the screen in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inner shrinks r by n cells on every side.
func (r Rect) Inner(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, Width: max(r.Width-2*n, 0), Height: max(r.Height-2*n, 0)}
}

// Rows splits r top to bottom. Each size is a fixed height, except 0 which
// takes whatever the fixed rows leave (shared evenly between 0 entries).
// Rows that do not fit are empty.
func (r Rect) Rows(sizes ...int) []Rect {
	lengths := split(r.Height, sizes)
	out := make([]Rect, len(sizes))
	y := r.Y
	for i, h := range lengths {
		out[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: h}
		y += h
	}
	return out
}

// Columns splits r left to right, with the same size rules as Rows.
func (r Rect) Columns(sizes ...int) []Rect {
	lengths := split(r.Width, sizes)
	out := make([]Rect, len(sizes))
	x := r.X
	for i, w := range lengths {
		out[i] = Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		x += w
	}
	return out
}

func split(total int, sizes []int) []int {
	fixed, fill := 0, 0
	for _, s := range sizes {
		if s == 0 {
			fill++
		}
		fixed += s
	}
	var share, extra int
	if fill > 0 && total > fixed {
		share = (total - fixed) / fill
		extra = (total - fixed) % fill
	}

	out := make([]int, len(sizes))
	left := total
	for i, s := range sizes {
		if s == 0 {
			s = share
			if extra > 0 {
				s++
				extra--
			}
		}
		s = min(s, left)
		out[i] = s
		left -= s
	}
	return out
}

// Cell is one screen position.
type Cell struct {
	Rune  rune // 0 marks the right half of a wide rune
	Style Style
}

// Surface is the canvas components draw into during a frame.
type Surface struct {
	width, height int
	cells         []Cell
}

// NewSurface returns a blank surface of the given size.
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize reallocates and clears the surface.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	s.cells = make([]Cell, s.width*s.height)
	s.Clear()
}

// Clear blanks every cell.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' '}
	}
}

// Bounds returns the whole surface as a Rect.
func (s *Surface) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Cell returns the cell at (x, y), or a blank cell outside the surface.
func (s *Surface) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y*s.width+x]
}

func (s *Surface) set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	i := y*s.width + x
	old := s.cells[i]
	// Never leave half of a wide rune behind.
	if old.Rune == 0 && c.Rune != 0 && x > 0 {
		s.cells[i-1].Rune = ' '
	}
	if old.Rune != 0 && runewidth.RuneWidth(old.Rune) == 2 && runewidth.RuneWidth(c.Rune) != 2 &&
		x+1 < s.width && s.cells[i+1].Rune == 0 {
		s.cells[i+1].Rune = ' '
	}
	s.cells[i] = c
}

// SetStyle restyles the cell at (x, y) keeping its rune.
func (s *Surface) SetStyle(x, y int, style Style) {
	c := s.Cell(x, y)
	c.Style = style
	s.set(x, y, c)
}

// Print writes str on line row of area starting at column col (both relative
// to area), clipped to area. It returns the column after the last cell
// written.
func (s *Surface) Print(area Rect, col, row int, str string, style Style) int {
	if row < 0 || row >= area.Height {
		return col
	}
	y := area.Y + row
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > area.Width {
			break
		}
		if col >= 0 {
			s.set(area.X+col, y, Cell{Rune: r, Style: style})
			if w == 2 {
				s.set(area.X+col+1, y, Cell{Style: style})
			}
		}
		col += w
	}
	return col
}

// PrintLines writes each line of text on its own row of area.
func (s *Surface) PrintLines(area Rect, text string, style Style) {
	for i, line := range strings.Split(text, "\n") {
		s.Print(area, 0, i, line, style)
	}
}

// Fill paints every cell of area with r.
func (s *Surface) Fill(area Rect, r rune, style Style) {
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			s.set(x, y, Cell{Rune: r, Style: style})
		}
	}
}

// Box draws a border around area with an optional title in the top edge and
// returns the area inside the border.
func (s *Surface) Box(area Rect, title string, style Style) Rect {
	if area.Width < 2 || area.Height < 2 {
		return Rect{X: area.X, Y: area.Y}
	}
	right, bottom := area.X+area.Width-1, area.Y+area.Height-1

	edge := func(str string) rune {
		r, _ := firstRune(str)
		return r
	}
	for x := area.X + 1; x < right; x++ {
		s.set(x, area.Y, Cell{Rune: edge(Border.Top), Style: style})
		s.set(x, bottom, Cell{Rune: edge(Border.Bottom), Style: style})
	}
	for y := area.Y + 1; y < bottom; y++ {
		s.set(area.X, y, Cell{Rune: edge(Border.Left), Style: style})
		s.set(right, y, Cell{Rune: edge(Border.Right), Style: style})
	}
	s.set(area.X, area.Y, Cell{Rune: edge(Border.TopLeft), Style: style})
	s.set(right, area.Y, Cell{Rune: edge(Border.TopRight), Style: style})
	s.set(area.X, bottom, Cell{Rune: edge(Border.BottomLeft), Style: style})
	s.set(right, bottom, Cell{Rune: edge(Border.BottomRight), Style: style})

	if title != "" {
		top := Rect{X: area.X + 1, Y: area.Y, Width: area.Width - 2, Height: 1}
		s.Print(top, 0, 0, " "+title+" ", style)
	}
	return area.Inner(1)
}

// Text returns the runes of row y without styling. Tests use it to assert
// what was drawn.
func (s *Surface) Text(y int) string {
	var b strings.Builder
	for x := 0; x < s.width; x++ {
		if r := s.Cell(x, y).Rune; r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// String returns every row without styling, joined by newlines.
func (s *Surface) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Text(y)
	}
	return strings.Join(rows, "\n")
}

// Render returns the styled frame. Consecutive cells sharing a Style are
// rendered as one run.
func (s *Surface) Render() string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < s.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		current := s.Cell(0, y).Style
		for x := 0; x < s.width; x++ {
			c := s.Cell(x, y)
			if c.Rune == 0 {
				continue
			}
			if c.Style != current {
				out.WriteString(current.Lipgloss().Render(run.String()))
				run.Reset()
				current = c.Style
			}
			run.WriteRune(c.Rune)
		}
		out.WriteString(current.Lipgloss().Render(run.String()))
		run.Reset()
	}
	return out.String()
}

func firstRune(str string) (rune, bool) {
	for _, r := range str {
		return r, true
	}
	return ' ', false
}
