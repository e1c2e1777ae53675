// Package history provides undo/redo of grouped buffer edits.
package history

import (
	"fmt"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/types"
)

// ActionType indicates whether text was inserted or deleted.
type ActionType int

const (
	InsertAction ActionType = iota
	DeleteAction
)

func (a ActionType) String() string {
	if a == InsertAction {
		return "insert"
	}
	return "delete"
}

// Change represents a single, reversible text operation.
type Change struct {
	Type ActionType
	Text []byte // Text inserted or text deleted
	// Start and End delimit the inserted text after the change, or the
	// deleted text before it.
	Start types.Position
	End   types.Position
}

// Group is one user-visible edit: the changes in the order they were
// applied, plus the selections on either side of it.
type Group struct {
	Changes []Change
	Before  []types.Selection
	After   []types.Selection
}

// Apply performs c on buf.
func Apply(buf buffer.Buffer, c Change) error {
	switch c.Type {
	case InsertAction:
		return buf.Insert(c.Start, c.Text)
	case DeleteAction:
		_, err := buf.Delete(c.Start, c.End)
		return err
	}
	return fmt.Errorf("unknown change type %d", c.Type)
}

// Revert performs the inverse of c on buf.
func Revert(buf buffer.Buffer, c Change) error {
	switch c.Type {
	case InsertAction:
		_, err := buf.Delete(c.Start, c.End)
		return err
	case DeleteAction:
		return buf.Insert(c.Start, c.Text)
	}
	return fmt.Errorf("unknown change type %d", c.Type)
}

// Advance returns the position just past text inserted at pos.
func Advance(pos types.Position, text []byte) types.Position {
	runes := []rune(string(text))
	for _, r := range runes {
		if r == '\n' {
			pos.Line++
			pos.Col = 0
			continue
		}
		pos.Col++
	}
	return pos
}
