package cursor

import (
	"context"
	"errors"
	"testing"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/tabstop"
	"github.com/bethropolis/softtab/internal/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func run(t *testing.T, h Host, name string) types.Position {
	t.Helper()
	got, err := NewRegistry().Run(context.Background(), name, h)
	require.NoError(t, err)
	return got
}

func TestUnknownCommand(t *testing.T) {
	_, err := NewRegistry().Run(context.Background(), "nope", newFakeHost("", 4))
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRegistryNames(t *testing.T) {
	names := NewRegistry().Names()
	require.Len(t, names, 14)
	require.Contains(t, names, SmartHome)
	require.IsIncreasing(t, names)
}

func TestMoveRightWalksIndentThenContent(t *testing.T) {
	h := newFakeHost("    foo  ", 4)
	var cols []int
	for i := 0; i < 6; i++ {
		cols = append(cols, run(t, h, MoveRight).Col)
	}
	require.Equal(t, []int{4, 5, 6, 7, 8, 9}, cols)
	require.Equal(t, pos(0, 9), h.revealed[len(h.revealed)-1])
}

func TestMoveLeftSnapsBackOverIndent(t *testing.T) {
	h := newFakeHost("        x", 4, caret(0, 8))
	require.Equal(t, pos(0, 4), run(t, h, MoveLeft))
	require.Equal(t, pos(0, 0), run(t, h, MoveLeft))
	require.Equal(t, pos(0, 0), run(t, h, MoveLeft), "document start is terminal")
}

func TestMoveCollapsesSelectionToEdge(t *testing.T) {
	sel := types.Selection{Anchor: pos(0, 6), Active: pos(0, 2)}

	h := newFakeHost("    foo bar", 4, sel)
	require.Equal(t, pos(0, 2), run(t, h, MoveLeft))
	require.True(t, h.sels[0].IsEmpty())

	h = newFakeHost("    foo bar", 4, sel)
	require.Equal(t, pos(0, 6), run(t, h, MoveRight))
}

func TestExtendKeepsAnchor(t *testing.T) {
	h := newFakeHost("    foo", 4, caret(0, 0))
	run(t, h, ExtendRight)
	run(t, h, ExtendRight)
	require.Equal(t, types.Selection{Anchor: pos(0, 0), Active: pos(0, 5)}, h.sels[0])

	run(t, h, ExtendLeft)
	require.Equal(t, types.Selection{Anchor: pos(0, 0), Active: pos(0, 4)}, h.sels[0])
}

func TestSmartHomeToggles(t *testing.T) {
	h := newFakeHost("    foo", 4, caret(0, 6))
	require.Equal(t, pos(0, 4), run(t, h, Home))
	require.Equal(t, pos(0, 0), run(t, h, Home))
	require.Equal(t, pos(0, 4), run(t, h, Home))
}

func TestSmartHomeExtends(t *testing.T) {
	h := newFakeHost("    foo", 4, caret(0, 6))
	run(t, h, SmartHome)
	require.Equal(t, types.Selection{Anchor: pos(0, 6), Active: pos(0, 4)}, h.sels[0])
}

func TestSmartHomeUsesSelectionStartLine(t *testing.T) {
	h := newFakeHost("  a\n    b", 4, types.Selection{Anchor: pos(0, 3), Active: pos(1, 5)})
	run(t, h, SmartHome)
	require.Equal(t, types.Selection{Anchor: pos(0, 3), Active: pos(0, 2)}, h.sels[0])
}

func TestSmartEndUsesSelectionEndLine(t *testing.T) {
	h := newFakeHost("ab\nlonger line", 4, types.Selection{Anchor: pos(1, 2), Active: pos(0, 1)})
	got := run(t, h, SmartEnd)
	require.Equal(t, pos(1, 11), got)
	require.Equal(t, pos(1, 2), h.sels[0].Anchor)

	h = newFakeHost("ab\nlonger line", 4, caret(0, 0))
	require.Equal(t, pos(0, 2), run(t, h, End))
	require.True(t, h.sels[0].IsEmpty())
}

func TestVerticalMoveSnapsIntoIndent(t *testing.T) {
	h := newFakeHost("abcdef\n        x", 4, caret(0, 3))
	require.Equal(t, pos(1, 4), run(t, h, MoveDown))

	h = newFakeHost("a\n        x", 4, caret(0, 1))
	require.Equal(t, pos(1, 0), run(t, h, MoveDown))
}

func TestVerticalMoveAtDocumentEdges(t *testing.T) {
	h := newFakeHost("    foo\nbar", 4, caret(0, 5))
	require.Equal(t, pos(0, 0), run(t, h, MoveUp))

	h = newFakeHost("    foo\nbar", 4, caret(1, 1))
	require.Equal(t, pos(1, 3), run(t, h, MoveDown))
}

func TestExtendDown(t *testing.T) {
	h := newFakeHost("abc\nabc", 4, caret(0, 1))
	run(t, h, ExtendDown)
	require.Equal(t, types.Selection{Anchor: pos(0, 1), Active: pos(1, 1)}, h.sels[0])
	run(t, h, ExtendUp)
	require.True(t, h.sels[0].IsEmpty())
}

func TestLiteralTabsDelegateMovement(t *testing.T) {
	h := newFakeHost("\tfoo", 4, caret(0, 1))
	h.indent.UseLiteralTabs = true

	for _, name := range []string{MoveLeft, ExtendRight, MoveUp, ExtendDown} {
		run(t, h, name)
	}
	require.Equal(t, []string{"char-left", "char-right", "vertical-up", "vertical-down"}, h.delegated)
	require.Equal(t, caret(0, 1), h.sels[0], "selections are the host's business")
}

func TestLiteralTabsStillDeleteWithCalculator(t *testing.T) {
	h := newFakeHost("\tfoo", 4, caret(0, 1))
	h.indent.UseLiteralTabs = true
	require.Equal(t, pos(0, 0), run(t, h, DeleteLeft))
	require.Equal(t, "foo", h.text())
	require.Empty(t, h.delegated)
}

func TestDeleteLeftRemovesIndentUnit(t *testing.T) {
	h := newFakeHost("    foo", 4, caret(0, 4))
	require.Equal(t, pos(0, 0), run(t, h, DeleteLeft))
	require.Equal(t, "foo", h.text())
	require.Equal(t, []types.Selection{caret(0, 0)}, h.sels)
}

func TestDeleteRightRemovesIndentUnit(t *testing.T) {
	h := newFakeHost("        foo", 4, caret(0, 0))
	require.Equal(t, pos(0, 0), run(t, h, DeleteRight))
	require.Equal(t, "    foo", h.text())
}

func TestDeleteJoinsLines(t *testing.T) {
	h := newFakeHost("ab\ncd", 4, caret(1, 0))
	require.Equal(t, pos(0, 2), run(t, h, DeleteLeft))
	require.Equal(t, "abcd", h.text())

	h = newFakeHost("ab\ncd", 4, caret(0, 2))
	require.Equal(t, pos(0, 2), run(t, h, DeleteRight))
	require.Equal(t, "abcd", h.text())
}

func TestDeleteAtDocumentEdgeIsNoop(t *testing.T) {
	h := newFakeHost("abc", 4, caret(0, 0))
	require.Equal(t, pos(0, 0), run(t, h, DeleteLeft))
	require.Equal(t, "abc", h.text())
	require.Empty(t, h.deletes, "nothing to delete, host not called")
}

func TestDeleteNonEmptySelection(t *testing.T) {
	h := newFakeHost("    foo bar", 4, types.Selection{Anchor: pos(0, 8), Active: pos(0, 4)})
	require.Equal(t, pos(0, 4), run(t, h, DeleteRight))
	require.Equal(t, "    bar", h.text())
}

func TestDeleteMultipleCaretsIsOneEdit(t *testing.T) {
	h := newFakeHost("    a\n    b\n    c", 4, caret(2, 4), caret(0, 4), caret(1, 4))
	run(t, h, DeleteLeft)

	require.Equal(t, "a\nb\nc", h.text())
	require.Len(t, h.deletes, 1)
	require.Equal(t, []types.Range{
		{Start: pos(0, 0), End: pos(0, 4)},
		{Start: pos(1, 0), End: pos(1, 4)},
		{Start: pos(2, 0), End: pos(2, 4)},
	}, h.deletes[0])
	require.Equal(t, []types.Selection{caret(2, 0), caret(0, 0), caret(1, 0)}, h.sels, "primary stays first")
}

func TestDeleteCaretsOnSameLineShift(t *testing.T) {
	h := newFakeHost("abcdef", 4, caret(0, 2), caret(0, 5))
	run(t, h, DeleteLeft)
	require.Equal(t, "acdf", h.text())
	require.Equal(t, []types.Selection{caret(0, 1), caret(0, 3)}, h.sels)
}

func TestDeleteAcrossLinesShiftsLaterCarets(t *testing.T) {
	h := newFakeHost("ab\ncd\nef", 4, caret(1, 0), caret(2, 1))
	run(t, h, DeleteLeft)
	require.Equal(t, "abcd\nf", h.text())
	require.Equal(t, []types.Selection{caret(0, 2), caret(1, 0)}, h.sels)
}

func TestOverlappingDeletesAreMerged(t *testing.T) {
	// caret at 4 snaps back to 0 and swallows the caret at 1
	h := newFakeHost("    x", 4, caret(0, 4), caret(0, 1))
	run(t, h, DeleteLeft)
	require.Equal(t, "x", h.text())
	require.Equal(t, []types.Range{{Start: pos(0, 0), End: pos(0, 4)}}, h.deletes[0])
	require.Equal(t, []types.Selection{caret(0, 0)}, h.sels)
}

func TestFailedDeleteLeavesSelections(t *testing.T) {
	h := newFakeHost("    foo", 4, caret(0, 4))
	h.failWith = errHostRefused

	_, err := NewRegistry().Run(context.Background(), DeleteLeft, h)
	require.ErrorIs(t, err, errHostRefused)
	require.Equal(t, []types.Selection{caret(0, 4)}, h.sels)
	require.Empty(t, h.revealed)
	require.Equal(t, "    foo", h.text())
}

func TestReadOnlyDelete(t *testing.T) {
	h := newFakeHost("    foo", 4, caret(0, 4))
	h.buf.SetReadOnly(true)

	_, err := NewRegistry().Run(context.Background(), DeleteLeft, h)
	require.True(t, errors.Is(err, buffer.ErrReadOnly))
	require.Equal(t, caret(0, 4), h.sels[0])
}

func TestOutOfRangeSelectionsAreClamped(t *testing.T) {
	h := newFakeHost("ab\ncd", 4, caret(7, 40))
	require.Equal(t, pos(1, 1), run(t, h, MoveLeft))
}

func TestInvalidTabWidthDisablesSnapping(t *testing.T) {
	h := newFakeHost("    foo", 0, caret(0, 0))
	require.Equal(t, pos(0, 1), run(t, h, MoveRight))
}

func TestDeleteSpanMatchesMoveSpan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tabWidth := rapid.IntRange(1, 8).Draw(t, "tabWidth")
		indent := rapid.StringMatching(`[ \t]{0,12}`).Draw(t, "indent")
		body := rapid.StringMatching(`[a-z ]{0,6}`).Draw(t, "body")
		text := indent + body + "\n" + body
		line, _ := buffer.LineAt(buffer.NewSliceBufferFromString(text), 0)
		col := rapid.IntRange(0, line.Len()).Draw(t, "col")
		dir := rapid.SampledFrom([]types.Direction{types.Left, types.Right}).Draw(t, "dir")

		doc := buffer.NewSliceBufferFromString(text)
		moved, err := tabstop.Next(doc, pos(0, col), dir, tabWidth)
		require.NoError(t, err)
		want := types.NewRange(pos(0, col), moved)
		expected := string(doc.Text(want.Start, want.End))

		h := newFakeHost(text, tabWidth, caret(0, col))
		name := DeleteLeft
		if dir == types.Right {
			name = DeleteRight
		}
		_, err = NewRegistry().Run(context.Background(), name, h)
		require.NoError(t, err)

		if want.IsEmpty() {
			require.Empty(t, h.deletes)
			return
		}
		require.Equal(t, [][]types.Range{{want}}, h.deletes)
		removedLen := len(text) - len(h.text())
		require.Equal(t, len(expected), removedLen)
		require.Equal(t, []types.Selection{caret(want.Start.Line, want.Start.Col)}, h.sels)
	})
}
