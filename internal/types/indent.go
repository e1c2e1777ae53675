package types

// Direction of a caret movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// IsVertical reports whether d moves between lines.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// IndentContext describes how the active document is indented.
type IndentContext struct {
	// TabWidth is the number of columns per indentation level.
	TabWidth int
	// UseLiteralTabs is true when indentation uses tab characters, in which
	// case caret movement is left to the host's native behavior.
	UseLiteralTabs bool
}

// Normalized returns a copy with an invalid tab width degraded to 1,
// which disables snapping.
func (c IndentContext) Normalized() IndentContext {
	if c.TabWidth < 1 {
		c.TabWidth = 1
	}
	return c
}
