package tui

// Selector2D is a cursor over rows of varying length. Horizontal moves cycle
// within the current row; vertical moves cycle over rows and clamp the column
// into the new row.
type Selector2D struct {
	rows []int
	row  int
	col  int
}

// NewSelector2D returns a selector at (0, 0) over rows of the given lengths.
func NewSelector2D(rowLengths []int) *Selector2D {
	return &Selector2D{rows: append([]int(nil), rowLengths...)}
}

func (s *Selector2D) MoveRight() {
	if n := s.rowLen(); n > 1 {
		s.col = (s.col + 1) % n
	}
}

func (s *Selector2D) MoveLeft() {
	if n := s.rowLen(); n > 1 {
		s.col = (s.col + n - 1) % n
	}
}

func (s *Selector2D) MoveDown() {
	if len(s.rows) < 2 {
		return
	}
	s.row = (s.row + 1) % len(s.rows)
	s.col = clamp(s.col, s.rowLen())
}

func (s *Selector2D) MoveUp() {
	if len(s.rows) < 2 {
		return
	}
	s.row = (s.row + len(s.rows) - 1) % len(s.rows)
	s.col = clamp(s.col, s.rowLen())
}

// Selected returns the (row, column) under the cursor. On an empty row the
// column is 0 even though no element exists there.
func (s *Selector2D) Selected() (row, col int) {
	return s.row, s.col
}

// Select moves to (row, col), each clamped into range.
func (s *Selector2D) Select(row, col int) {
	s.row = clamp(row, len(s.rows))
	s.col = clamp(col, s.rowLen())
}

// RowLengths returns a copy of the row lengths.
func (s *Selector2D) RowLengths() []int {
	return append([]int(nil), s.rows...)
}

func (s *Selector2D) rowLen() int {
	if s.row >= len(s.rows) {
		return 0
	}
	return s.rows[s.row]
}
