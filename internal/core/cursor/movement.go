package cursor

import (
	"context"
	"fmt"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/tabstop"
	"github.com/bethropolis/softtab/internal/types"
)

// moveHorizontal steps every selection one logical character left or right.
// Plain moves collapse a non-empty selection to its edge first; extending
// moves only the active end.
func moveHorizontal(dir types.Direction, extend bool) Command {
	return func(ctx context.Context, h Host) (types.Position, error) {
		indent := h.IndentContext().Normalized()
		if indent.UseLiteralTabs {
			h.DelegateCharacterMove(dir, extend)
			return primaryOf(h), nil
		}

		sels, doc := snapshot(h)
		next := make([]types.Selection, len(sels))
		for i, sel := range sels {
			if !extend && !sel.IsEmpty() {
				edge := sel.Start()
				if dir == types.Right {
					edge = sel.End()
				}
				next[i] = sel.Collapse(edge)
				continue
			}

			p, err := tabstop.Next(doc, sel.Active, dir, indent.TabWidth)
			if err != nil {
				return primaryOf(h), fmt.Errorf("move %s: %w", dir, err)
			}
			if extend {
				next[i] = sel.Extend(p)
			} else {
				next[i] = sel.Collapse(p)
			}
		}
		return commit(h, next), nil
	}
}

// moveVertical moves every active end one line up or down, keeping the
// column unless it would land mid-indent.
func moveVertical(dir types.Direction, extend bool) Command {
	return func(ctx context.Context, h Host) (types.Position, error) {
		indent := h.IndentContext().Normalized()
		if indent.UseLiteralTabs {
			h.DelegateVerticalMove(dir, extend)
			return primaryOf(h), nil
		}

		sels, doc := snapshot(h)
		next := make([]types.Selection, len(sels))
		for i, sel := range sels {
			p, err := tabstop.VerticalTarget(doc, sel.Active, dir, indent.TabWidth)
			if err != nil {
				return primaryOf(h), fmt.Errorf("move %s: %w", dir, err)
			}
			if extend {
				next[i] = sel.Extend(p)
			} else {
				next[i] = sel.Collapse(p)
			}
		}
		return commit(h, next), nil
	}
}

// home moves the active end to the first non-whitespace column of the
// selection's start line. A second invocation from there goes to column 0.
func home(keepAnchor bool) Command {
	return func(ctx context.Context, h Host) (types.Position, error) {
		sels, doc := snapshot(h)
		next := make([]types.Selection, len(sels))
		for i, sel := range sels {
			start := sel.Start()
			line, err := buffer.LineAt(doc, start.Line)
			if err != nil {
				return primaryOf(h), fmt.Errorf("home: %w", err)
			}
			target := types.Position{Line: start.Line, Col: line.FirstNonWhitespace()}
			if start == target {
				target.Col = 0
			}
			next[i] = place(sel, target, keepAnchor)
		}
		return commit(h, next), nil
	}
}

// end moves the active end to the end of the selection's end line.
func end(keepAnchor bool) Command {
	return func(ctx context.Context, h Host) (types.Position, error) {
		sels, doc := snapshot(h)
		next := make([]types.Selection, len(sels))
		for i, sel := range sels {
			lineNum := sel.End().Line
			length, err := lineLength(doc, lineNum)
			if err != nil {
				return primaryOf(h), fmt.Errorf("end: %w", err)
			}
			next[i] = place(sel, types.Position{Line: lineNum, Col: length}, keepAnchor)
		}
		return commit(h, next), nil
	}
}

func place(sel types.Selection, target types.Position, keepAnchor bool) types.Selection {
	if keepAnchor {
		return sel.Extend(target)
	}
	return sel.Collapse(target)
}
