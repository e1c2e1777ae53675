// Package tabstop computes caret positions that treat space indentation as
// if each indentation level were a single character.
//
// All functions are pure: they take a snapshot of the relevant lines and
// return a new position without touching their inputs.
package tabstop

import (
	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/types"
	"github.com/bethropolis/softtab/internal/utils"
)

// sign of a horizontal step.
type sign int

const (
	backward sign = -1
	forward  sign = 1
)

// LeftOf returns the caret position one logical step left of pos.
// prev is the line above, or nil on the first line of the document.
func LeftOf(pos types.Position, line buffer.Line, prev *buffer.Line, tabWidth int) types.Position {
	return step(backward, pos, line, prev, tabWidth)
}

// RightOf returns the caret position one logical step right of pos.
// next is the line below, or nil on the last line of the document.
func RightOf(pos types.Position, line buffer.Line, next *buffer.Line, tabWidth int) types.Position {
	return step(forward, pos, line, next, tabWidth)
}

func step(dir sign, pos types.Position, line buffer.Line, neighbor *buffer.Line, tabWidth int) types.Position {
	if tabWidth < 1 {
		tabWidth = 1
	}
	pos.Col = utils.ClampInt(pos.Col, 0, line.Len())

	if atLineEdge(dir, pos.Col, line) {
		if neighbor == nil {
			return pos // document start/end is terminal
		}
		if dir == backward {
			return types.Position{Line: neighbor.Number, Col: neighbor.Len()}
		}
		return types.Position{Line: neighbor.Number, Col: 0}
	}

	candidate := pos.Col + int(dir)
	single := types.Position{Line: pos.Line, Col: candidate}
	if !canSnap(dir, pos.Col, candidate, line, tabWidth) {
		return single
	}

	target := snapTarget(dir, pos.Col, tabWidth)
	if dir == backward {
		return types.Position{Line: pos.Line, Col: utils.ClampInt(target, 0, line.Len())}
	}
	target = utils.ClampInt(target, 0, line.Len())
	if target > line.FirstNonWhitespace() {
		// the jump would leave the indentation and land inside the word
		return single
	}
	return types.Position{Line: pos.Line, Col: target}
}

func atLineEdge(dir sign, col int, line buffer.Line) bool {
	if dir == backward {
		return col == 0
	}
	return col == line.Len()
}

// canSnap reports whether the step from col to candidate may jump to a tab
// stop instead of moving a single character.
func canSnap(dir sign, col, candidate int, line buffer.Line, tabWidth int) bool {
	if tabWidth <= 1 {
		return false
	}
	if isTabStop(candidate, tabWidth) {
		return false
	}
	if candidate >= line.FirstNonWhitespace() {
		return false
	}
	if !aligned(line, candidate, tabWidth) {
		return false
	}
	// every rune the jump passes over must be a space, in either direction
	lo, hi := col, snapTarget(dir, col, tabWidth)
	if dir == backward {
		lo, hi = hi, col
	}
	return allSpaces(line.Slice(lo, hi))
}

// aligned is the alignment check: the run from candidate up to the next tab
// stop must be made only of spaces. Anything else means the indentation is
// irregular and a snap would skip over real content.
func aligned(line buffer.Line, candidate, tabWidth int) bool {
	extra := candidate % tabWidth
	dist := tabWidth - extra
	return allSpaces(line.Slice(candidate, candidate+dist))
}

func allSpaces(run []rune) bool {
	if len(run) == 0 {
		return false
	}
	for _, r := range run {
		if r != ' ' {
			return false
		}
	}
	return true
}

func snapTarget(dir sign, col, tabWidth int) int {
	if dir == backward {
		target := col - tabWidth
		return target + mod(tabWidth-target, tabWidth)
	}
	target := col + tabWidth
	return target - mod(target, tabWidth)
}

func isTabStop(col, tabWidth int) bool {
	return col%tabWidth == 0
}

// mod is the Euclidean remainder; it is never negative.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
