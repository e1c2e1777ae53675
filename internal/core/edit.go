package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/core/history"
	"github.com/bethropolis/softtab/internal/event"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/types"
)

// ErrOverlappingRanges is returned by Delete for ranges that are unsorted or
// overlap.
var ErrOverlappingRanges = errors.New("ranges overlap or are out of order")

// transaction applies changes to a buffer and can undo them again.
type transaction struct {
	buf     buffer.Buffer
	applied []history.Change
}

func (t *transaction) delete(r types.Range) error {
	removed, err := t.buf.Delete(r.Start, r.End)
	if err != nil {
		return err
	}
	t.applied = append(t.applied, history.Change{Type: history.DeleteAction, Text: removed, Start: r.Start, End: r.End})
	return nil
}

func (t *transaction) insert(pos types.Position, text []byte) (types.Position, error) {
	if err := t.buf.Insert(pos, text); err != nil {
		return pos, err
	}
	end := history.Advance(pos, text)
	t.applied = append(t.applied, history.Change{Type: history.InsertAction, Text: text, Start: pos, End: end})
	return end, nil
}

func (t *transaction) rollback() {
	for i := len(t.applied) - 1; i >= 0; i-- {
		if err := history.Revert(t.buf, t.applied[i]); err != nil {
			logger.Errorf("Editor: rollback of %v at %v failed: %v", t.applied[i].Type, t.applied[i].Start, err)
		}
	}
	t.applied = nil
}

func (t *transaction) ranges() []types.Range {
	out := make([]types.Range, len(t.applied))
	for i, c := range t.applied {
		out[i] = types.Range{Start: c.Start, End: c.End}
	}
	return out
}

func (e *Editor) checkWritable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.buffer.ReadOnly() {
		return buffer.ErrReadOnly
	}
	return nil
}

// Delete removes every range as one edit. Ranges must be in document order
// and must not overlap. Either all ranges are removed or none are.
// Selections are left to the caller.
func (e *Editor) Delete(ctx context.Context, ranges []types.Range) error {
	if err := e.checkWritable(ctx); err != nil {
		return err
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Start.Before(ranges[i-1].End) {
			return fmt.Errorf("%w: %v then %v", ErrOverlappingRanges, ranges[i-1], ranges[i])
		}
	}

	before := e.Selections()
	tx := &transaction{buf: e.buffer}
	// bottom-up so earlier ranges stay valid
	for i := len(ranges) - 1; i >= 0; i-- {
		if ranges[i].IsEmpty() {
			continue
		}
		if err := tx.delete(ranges[i]); err != nil {
			tx.rollback()
			return fmt.Errorf("delete %v: %w", ranges[i], err)
		}
	}
	if len(tx.applied) == 0 {
		return nil
	}

	after := make([]types.Selection, len(before))
	for i, sel := range before {
		after[i] = types.NewCaret(sel.Start().AfterRemoving(ranges))
	}
	e.historyManager.Record(history.Group{Changes: tx.applied, Before: before, After: after})
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Ranges: tx.ranges()})
	logger.DebugTagf("edit", "deleted %d range(s)", len(tx.applied))
	return nil
}

// replacement returns the text to put in place of r, given the line r
// starts on as it is at that point of the edit.
type replacement func(r types.Range, line buffer.Line) string

// replaceEach replaces every selection with the text from fn, as one edit,
// and leaves a caret after each insertion.
func (e *Editor) replaceEach(ctx context.Context, fn replacement) error {
	if err := e.checkWritable(ctx); err != nil {
		return err
	}

	before := e.Selections()
	ranges := make([]types.Range, len(before))
	order := make([]int, len(before))
	for i, sel := range before {
		ranges[i] = sel.Range()
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ranges[order[a]].Start.Before(ranges[order[b]].Start)
	})

	tx := &transaction{buf: e.buffer}
	carets := make([]types.Selection, len(before))
	for k, i := range order {
		r := ranges[i]
		line, err := buffer.LineAt(e.buffer, r.Start.Line)
		if err != nil {
			tx.rollback()
			return err
		}
		text := fn(r, line)

		if !r.IsEmpty() {
			if err := tx.delete(r); err != nil {
				tx.rollback()
				return fmt.Errorf("replace %v: %w", r, err)
			}
		}
		end := r.Start
		if text != "" {
			if end, err = tx.insert(r.Start, []byte(text)); err != nil {
				tx.rollback()
				return fmt.Errorf("insert at %v: %w", r.Start, err)
			}
		}
		carets[i] = types.NewCaret(end)

		for _, j := range order[k+1:] {
			ranges[j] = types.Range{
				Start: remap(ranges[j].Start, r.End, end),
				End:   remap(ranges[j].End, r.End, end),
			}
		}
	}
	if len(tx.applied) == 0 {
		return nil
	}

	e.historyManager.Record(history.Group{Changes: tx.applied, Before: before, After: carets})
	e.SetSelections(carets)
	e.Reveal(e.PrimaryCursor())
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Ranges: tx.ranges()})
	return nil
}

// remap moves p, which follows an edit that turned the text ending at
// oldEnd into text ending at newEnd.
func remap(p, oldEnd, newEnd types.Position) types.Position {
	if p.Before(oldEnd) {
		return newEnd
	}
	if p.Line == oldEnd.Line {
		return types.Position{Line: newEnd.Line, Col: newEnd.Col + p.Col - oldEnd.Col}
	}
	p.Line += newEnd.Line - oldEnd.Line
	return p
}

// InsertText replaces every selection with text.
func (e *Editor) InsertText(ctx context.Context, text string) error {
	return e.replaceEach(ctx, func(types.Range, buffer.Line) string { return text })
}

// InsertRune replaces every selection with r.
func (e *Editor) InsertRune(ctx context.Context, r rune) error {
	return e.InsertText(ctx, string(r))
}

// DeleteSelections removes the text of every non-empty selection.
func (e *Editor) DeleteSelections(ctx context.Context) error {
	return e.replaceEach(ctx, func(types.Range, buffer.Line) string { return "" })
}

// InsertTab inserts a literal tab, or enough spaces to reach the next tab
// stop, at every selection.
func (e *Editor) InsertTab(ctx context.Context) error {
	indent := e.indent.Normalized()
	if indent.UseLiteralTabs {
		return e.InsertText(ctx, "\t")
	}
	return e.replaceEach(ctx, func(r types.Range, line buffer.Line) string {
		visual := VisualCol(line.Text, r.Start.Col, indent.TabWidth)
		return strings.Repeat(" ", indent.TabWidth-visual%indent.TabWidth)
	})
}

// NewLine splits the line at every selection and carries over the leading
// whitespace that precedes the caret.
func (e *Editor) NewLine(ctx context.Context) error {
	return e.replaceEach(ctx, func(r types.Range, line buffer.Line) string {
		lead := line.FirstNonWhitespace()
		if r.Start.Col < lead {
			lead = r.Start.Col
		}
		return "\n" + string(line.Slice(0, lead))
	})
}
