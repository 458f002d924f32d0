package tui

// Selector is a cyclic index over a sequence of fixed length.
type Selector struct {
	index  int
	length int
}

// NewSelector returns a selector at index 0.
func NewSelector(length int) *Selector {
	return &Selector{length: max(length, 0)}
}

// Next advances the index, wrapping to 0. No-op when length <= 1.
func (s *Selector) Next() {
	if s.length <= 1 {
		return
	}
	s.index = (s.index + 1) % s.length
}

// Prev moves the index back, wrapping to length-1. No-op when length <= 1.
func (s *Selector) Prev() {
	if s.length <= 1 {
		return
	}
	s.index = (s.index + s.length - 1) % s.length
}

func (s *Selector) Index() int { return s.index }

func (s *Selector) Len() int { return s.length }

// SetIndex moves to i, clamped to [0, length-1].
func (s *Selector) SetIndex(i int) {
	s.index = clamp(i, s.length)
}

// Resize changes the length and clamps the index into it.
func (s *Selector) Resize(length int) {
	s.length = max(length, 0)
	s.index = clamp(s.index, s.length)
}

func clamp(i, length int) int {
	if i >= length {
		i = length - 1
	}
	return max(i, 0)
}
