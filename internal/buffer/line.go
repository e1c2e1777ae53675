package buffer

import (
	"fmt"
	"unicode"
)

// Line is an immutable snapshot of one document line.
type Line struct {
	Number int
	Text   []rune
}

// LineAt reads line i from r.
func LineAt(r Reader, i int) (Line, error) {
	b, err := r.Line(i)
	if err != nil {
		return Line{}, fmt.Errorf("read line %d: %w", i, err)
	}
	return Line{Number: i, Text: []rune(string(b))}, nil
}

// NewLine builds a line from a string, mostly for tests and fixtures.
func NewLine(number int, text string) Line {
	return Line{Number: number, Text: []rune(text)}
}

// Len is the line length in runes.
func (l Line) Len() int {
	return len(l.Text)
}

// At returns the rune at i, or 0 when i is out of range.
func (l Line) At(i int) rune {
	if i < 0 || i >= len(l.Text) {
		return 0
	}
	return l.Text[i]
}

// Slice returns the text in [from, to), clamped to the line.
func (l Line) Slice(from, to int) []rune {
	if from < 0 {
		from = 0
	}
	if to > len(l.Text) {
		to = len(l.Text)
	}
	if from >= to {
		return nil
	}
	return l.Text[from:to]
}

// FirstNonWhitespace is the index of the first non-whitespace rune,
// or Len() if the line is blank.
func (l Line) FirstNonWhitespace() int {
	for i, r := range l.Text {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return len(l.Text)
}

func (l Line) String() string {
	return string(l.Text)
}
