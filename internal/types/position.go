// internal/types/position.go
package types

import "fmt"

// Position represents a caret or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Compare returns -1 if p sorts before other, 1 if after, 0 if equal.
// Positions are ordered by line, then by column.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	}
	return 0
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After reports whether p sorts strictly after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Range is a half-open span of text, [Start, End).
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a range from two positions in any order.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}

// AfterRemoving maps p to where it sits once every range in removed has been
// deleted. A position inside a removed range goes to that range's start.
// removed must be in document order and non-overlapping.
func (p Position) AfterRemoving(removed []Range) Position {
	for i := len(removed) - 1; i >= 0; i-- {
		r := removed[i]
		if !p.After(r.Start) {
			continue
		}
		if p.Before(r.End) {
			p = r.Start
			continue
		}
		if p.Line == r.End.Line {
			p.Col = r.Start.Col + (p.Col - r.End.Col)
		}
		p.Line -= r.End.Line - r.Start.Line
	}
	return p
}
