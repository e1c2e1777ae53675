package types

// Selection is a caret with an optional extent.
// Anchor is where the selection started; Active is the end that moves.
// When Anchor == Active the selection is an empty caret.
type Selection struct {
	Anchor Position
	Active Position
}

// NewCaret returns an empty selection at pos.
func NewCaret(pos Position) Selection {
	return Selection{Anchor: pos, Active: pos}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Position {
	if s.Active.Before(s.Anchor) {
		return s.Active
	}
	return s.Anchor
}

// End returns the upper bound of the selection.
func (s Selection) End() Position {
	if s.Active.Before(s.Anchor) {
		return s.Anchor
	}
	return s.Active
}

// Range returns the selected span, Start <= End.
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// Collapse returns an empty selection at pos.
func (s Selection) Collapse(pos Position) Selection {
	return NewCaret(pos)
}

// Extend returns a selection with the same anchor and the active end at pos.
func (s Selection) Extend(pos Position) Selection {
	return Selection{Anchor: s.Anchor, Active: pos}
}
