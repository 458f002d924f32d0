package field

// buffer is an editable rune slice with a cursor. The cursor may sit one past
// the last rune.
type buffer struct {
	text   []rune
	cursor int
	maxLen int
	// accept vets the text an insertion would produce.
	accept func(candidate []rune) bool
}

func newBuffer(initial string, maxLen int) buffer {
	text := []rune(initial)
	if len(text) > maxLen {
		text = text[:maxLen]
	}
	return buffer{text: text, cursor: len(text), maxLen: maxLen}
}

func (b *buffer) value() string {
	return string(b.text)
}

func (b *buffer) left() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

func (b *buffer) right() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	b.cursor++
	return true
}

func (b *buffer) home() bool {
	moved := b.cursor != 0
	b.cursor = 0
	return moved
}

func (b *buffer) end() bool {
	moved := b.cursor != len(b.text)
	b.cursor = len(b.text)
	return moved
}

func (b *buffer) insert(r rune) bool {
	if len(b.text) >= b.maxLen {
		return false
	}
	candidate := make([]rune, 0, len(b.text)+1)
	candidate = append(candidate, b.text[:b.cursor]...)
	candidate = append(candidate, r)
	candidate = append(candidate, b.text[b.cursor:]...)
	if b.accept != nil && !b.accept(candidate) {
		return false
	}
	b.text = candidate
	b.cursor++
	return true
}

func (b *buffer) backspace() bool {
	if b.cursor == 0 {
		return false
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return true
}

func (b *buffer) delete() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	return true
}
