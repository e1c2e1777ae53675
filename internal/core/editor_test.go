package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/core/cursor"
	"github.com/bethropolis/softtab/internal/event"
	"github.com/bethropolis/softtab/internal/types"
	"github.com/stretchr/testify/require"
)

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func caret(line, col int) types.Selection { return types.NewCaret(pos(line, col)) }

func newEditor(t *testing.T, text string, tabWidth int, sels ...types.Selection) *Editor {
	t.Helper()
	e := NewEditor(buffer.NewSliceBufferFromString(text))
	e.clipboardManager.UseSystem(false)
	e.SetIndentContext(types.IndentContext{TabWidth: tabWidth})
	if len(sels) > 0 {
		e.SetSelections(sels)
	}
	return e
}

func text(e *Editor) string { return string(e.GetBuffer().Bytes()) }

// flakyBuffer fails the nth Delete call.
type flakyBuffer struct {
	*buffer.SliceBuffer
	failOn int
	calls  int
}

var errDisk = errors.New("disk on fire")

func (f *flakyBuffer) Delete(start, end types.Position) ([]byte, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, errDisk
	}
	return f.SliceBuffer.Delete(start, end)
}

func TestDeleteLeftThroughEditorAndUndo(t *testing.T) {
	e := newEditor(t, "    foo", 4, caret(0, 4))

	got, err := e.Run(context.Background(), cursor.DeleteLeft)
	require.NoError(t, err)
	require.Equal(t, pos(0, 0), got)
	require.Equal(t, "foo", text(e))

	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "    foo", text(e))
	require.Equal(t, []types.Selection{caret(0, 4)}, e.Selections())

	ok, err = e.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "foo", text(e))
	require.Equal(t, []types.Selection{caret(0, 0)}, e.Selections())
}

func TestMultiCaretDeleteUndoesAsOneGroup(t *testing.T) {
	e := newEditor(t, "    a\n    b", 4, caret(0, 4), caret(1, 4))
	_, err := e.Run(context.Background(), cursor.DeleteLeft)
	require.NoError(t, err)
	require.Equal(t, "a\nb", text(e))

	_, err = e.Undo()
	require.NoError(t, err)
	require.Equal(t, "    a\n    b", text(e))
	require.False(t, e.GetHistoryManager().CanUndo())
}

func TestDeleteRejectsOverlap(t *testing.T) {
	e := newEditor(t, "abcdef", 4)
	err := e.Delete(context.Background(), []types.Range{
		{Start: pos(0, 0), End: pos(0, 3)},
		{Start: pos(0, 2), End: pos(0, 4)},
	})
	require.ErrorIs(t, err, ErrOverlappingRanges)
	require.Equal(t, "abcdef", text(e))
}

func TestDeleteRollsBackOnPartialFailure(t *testing.T) {
	buf := &flakyBuffer{SliceBuffer: buffer.NewSliceBufferFromString("ab\ncd\nef"), failOn: 2}
	e := NewEditor(buf)

	err := e.Delete(context.Background(), []types.Range{
		{Start: pos(0, 0), End: pos(0, 1)},
		{Start: pos(2, 0), End: pos(2, 1)},
	})
	require.ErrorIs(t, err, errDisk)
	require.Equal(t, "ab\ncd\nef", string(buf.Bytes()))
	require.False(t, e.GetHistoryManager().CanUndo())
}

func TestDeleteHonoursContext(t *testing.T) {
	e := newEditor(t, "abc", 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Delete(ctx, []types.Range{{Start: pos(0, 0), End: pos(0, 1)}})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "abc", text(e))
}

func TestReadOnlyBufferRefusesEdits(t *testing.T) {
	e := newEditor(t, "    foo", 4, caret(0, 4))
	e.GetBuffer().SetReadOnly(true)

	_, err := e.Run(context.Background(), cursor.DeleteLeft)
	require.ErrorIs(t, err, buffer.ErrReadOnly)
	require.Equal(t, []types.Selection{caret(0, 4)}, e.Selections())
	require.ErrorIs(t, e.InsertText(context.Background(), "x"), buffer.ErrReadOnly)
}

func TestBufferModifiedEvent(t *testing.T) {
	e := newEditor(t, "    foo", 4, caret(0, 4))
	mgr := event.NewManager()
	e.SetEventManager(mgr)
	var got []types.Range
	mgr.Subscribe(event.TypeBufferModified, func(ev event.Event) bool {
		got = ev.Data.(event.BufferModifiedData).Ranges
		return false
	})

	_, err := e.Run(context.Background(), cursor.DeleteLeft)
	require.NoError(t, err)
	require.Equal(t, []types.Range{{Start: pos(0, 0), End: pos(0, 4)}}, got)
}

func TestSetSelectionsNormalises(t *testing.T) {
	e := newEditor(t, "ab\ncd", 4)
	mgr := event.NewManager()
	e.SetEventManager(mgr)
	changes := 0
	mgr.Subscribe(event.TypeSelectionsChanged, func(event.Event) bool { changes++; return false })

	e.SetSelections([]types.Selection{caret(5, 9), caret(1, 2), caret(1, 2)})
	require.Equal(t, []types.Selection{caret(1, 2)}, e.Selections())

	e.SetSelections(nil)
	require.Equal(t, []types.Selection{caret(0, 0)}, e.Selections())
	require.Equal(t, 2, changes)
}

func TestInsertTextAtEveryCaret(t *testing.T) {
	e := newEditor(t, "a\nb", 4, caret(0, 1), caret(1, 1))
	require.NoError(t, e.InsertText(context.Background(), "X"))
	require.Equal(t, "aX\nbX", text(e))
	require.Equal(t, []types.Selection{caret(0, 2), caret(1, 2)}, e.Selections())
}

func TestInsertMultilineReplacesSelections(t *testing.T) {
	e := newEditor(t, "abc abc", 4,
		types.Selection{Anchor: pos(0, 4), Active: pos(0, 5)},
		types.Selection{Anchor: pos(0, 0), Active: pos(0, 1)},
	)
	require.NoError(t, e.InsertText(context.Background(), "1\n2"))
	require.Equal(t, "1\n2bc 1\n2bc", text(e))
	require.Equal(t, []types.Selection{caret(2, 1), caret(1, 1)}, e.Selections())

	_, err := e.Undo()
	require.NoError(t, err)
	require.Equal(t, "abc abc", text(e))
}

func TestInsertTabPadsToNextStop(t *testing.T) {
	e := newEditor(t, "ab", 4, caret(0, 2))
	require.NoError(t, e.InsertTab(context.Background()))
	require.Equal(t, "ab  ", text(e))
	require.Equal(t, pos(0, 4), e.PrimaryCursor())

	require.NoError(t, e.InsertTab(context.Background()))
	require.Equal(t, "ab      ", text(e))
}

func TestInsertTabLiteral(t *testing.T) {
	e := newEditor(t, "x", 4, caret(0, 0))
	e.SetIndentContext(types.IndentContext{TabWidth: 4, UseLiteralTabs: true})
	require.NoError(t, e.InsertTab(context.Background()))
	require.Equal(t, "\tx", text(e))
}

func TestNewLineKeepsIndent(t *testing.T) {
	e := newEditor(t, "    foo", 4, caret(0, 7))
	require.NoError(t, e.NewLine(context.Background()))
	require.Equal(t, "    foo\n    ", text(e))
	require.Equal(t, pos(1, 4), e.PrimaryCursor())

	e = newEditor(t, "    foo", 4, caret(0, 2))
	require.NoError(t, e.NewLine(context.Background()))
	require.Equal(t, "  \n    foo", text(e))
}

func TestCutAndPaste(t *testing.T) {
	e := newEditor(t, "hello world", 4, types.Selection{Anchor: pos(0, 0), Active: pos(0, 6)})
	ok, err := e.GetClipboardManager().Cut(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "world", text(e))

	e.SetCursor(pos(0, 5))
	ok, err = e.GetClipboardManager().Paste(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "worldhello ", text(e))
}

func TestNativeCharacterMoveWraps(t *testing.T) {
	e := newEditor(t, "    a\nb", 4, caret(0, 5))
	e.DelegateCharacterMove(types.Right, false)
	require.Equal(t, pos(1, 0), e.PrimaryCursor())

	e.SetCursor(pos(0, 4))
	e.DelegateCharacterMove(types.Left, false)
	require.Equal(t, pos(0, 3), e.PrimaryCursor(), "no snapping")

	e.DelegateCharacterMove(types.Left, true)
	require.Equal(t, types.Selection{Anchor: pos(0, 3), Active: pos(0, 2)}, e.Selections()[0])
}

func TestNativeVerticalMoveKeepsScreenColumn(t *testing.T) {
	e := newEditor(t, "\tx\n    y\nab", 4, caret(0, 1))
	e.DelegateVerticalMove(types.Down, false)
	require.Equal(t, pos(1, 4), e.PrimaryCursor())

	e.DelegateVerticalMove(types.Down, false)
	require.Equal(t, pos(2, 2), e.PrimaryCursor())

	e.DelegateVerticalMove(types.Down, false)
	require.Equal(t, pos(2, 2), e.PrimaryCursor(), "end of last line")

	e.SetCursor(pos(0, 1))
	e.DelegateVerticalMove(types.Up, false)
	require.Equal(t, pos(0, 0), e.PrimaryCursor())
}

func TestLiteralTabsRouteToNativeMoves(t *testing.T) {
	e := newEditor(t, "\tx\n    y", 4, caret(0, 1))
	e.SetIndentContext(types.IndentContext{TabWidth: 4, UseLiteralTabs: true})

	_, err := e.Run(context.Background(), cursor.MoveDown)
	require.NoError(t, err)
	require.Equal(t, pos(1, 4), e.PrimaryCursor())

	_, err = e.Run(context.Background(), cursor.MoveLeft)
	require.NoError(t, err)
	require.Equal(t, pos(1, 3), e.PrimaryCursor())
}

func TestVisualAndBufferColumns(t *testing.T) {
	line := []rune("\tab")
	require.Equal(t, 4, VisualCol(line, 1, 4))
	require.Equal(t, 5, VisualCol(line, 2, 4))
	require.Equal(t, 0, BufferCol(line, 2, 4))
	require.Equal(t, 1, BufferCol(line, 4, 4))
	require.Equal(t, 3, BufferCol(line, 40, 4))

	wide := []rune("世a\tb")
	require.Equal(t, 2, VisualCol(wide, 1, 4))
	require.Equal(t, 4, VisualCol(wide, 3, 4), "tab after 3 columns fills to 4")
	require.Equal(t, 0, BufferCol(wide, 1, 4))
	require.Equal(t, 1, BufferCol(wide, 2, 4))
}

func TestScrollFollowsCaret(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	lines[25] = strings.Repeat("x", 40)
	e := newEditor(t, strings.Join(lines, "\n"), 4)
	e.SetViewSize(10, 6) // five text rows plus status bar

	e.SetCursor(pos(20, 0))
	top, left := e.GetViewport()
	require.Equal(t, 18, top)
	require.Equal(t, 0, left)

	e.SetCursor(pos(25, 30))
	_, left = e.GetViewport()
	require.Equal(t, 21, left)

	e.SetCursor(pos(0, 0))
	top, left = e.GetViewport()
	require.Equal(t, 0, top)
	require.Equal(t, 0, left)
}

func TestPageMove(t *testing.T) {
	e := newEditor(t, strings.Repeat("x\n", 20)+"x", 4)
	e.SetViewSize(10, 6)
	e.PageMove(1)
	require.Equal(t, pos(5, 0), e.PrimaryCursor())
	e.PageMove(10)
	require.Equal(t, pos(20, 0), e.PrimaryCursor())
}

func TestGuessIndent(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		want   types.IndentContext
		wantOK bool
	}{
		{"two spaces", "a\n  b\n    c\n  d", types.IndentContext{TabWidth: 2}, true},
		{"four spaces", "a\n    b\n        c\nd", types.IndentContext{TabWidth: 4}, true},
		{"tabs", "a\n\tb\n\t\tc\n  d", types.IndentContext{TabWidth: 8, UseLiteralTabs: true}, true},
		{"flat", "a\nb\n\n", types.IndentContext{TabWidth: 8}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := GuessIndent(buffer.NewSliceBufferFromString(tc.text), 8)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLoadDetectsIndentationAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tabs.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n\tb\n\tc\n"), 0o644))

	e := newEditor(t, "", 4)
	mgr := event.NewManager()
	e.SetEventManager(mgr)
	var events []event.Type
	for _, typ := range []event.Type{event.TypeBufferLoaded, event.TypeOptionsChanged, event.TypeBufferSaved} {
		mgr.Subscribe(typ, func(ev event.Event) bool { events = append(events, ev.Type); return false })
	}

	require.NoError(t, e.LoadFile(path, true))
	require.True(t, e.IndentContext().UseLiteralTabs)

	require.NoError(t, e.InsertText(context.Background(), "z"))
	require.NoError(t, e.SaveBuffer())
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "za\n\tb\n\tc", string(saved))
	require.Equal(t, []event.Type{event.TypeOptionsChanged, event.TypeBufferLoaded, event.TypeBufferSaved}, events)
}

func TestReloadPicksUpExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.txt")
	require.NoError(t, os.WriteFile(path, []byte("    one\n    two\n"), 0o644))
	e := newEditor(t, "", 4)
	require.NoError(t, e.LoadFile(path, false))
	e.SetCursor(pos(1, 7))

	ok, err := e.Reload(false)
	require.NoError(t, err)
	require.False(t, ok, "unchanged apart from the final newline")

	require.NoError(t, os.WriteFile(path, []byte("    one\n    2\n"), 0o644))
	ok, err = e.Reload(false)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "    one\n    2", text(e))
	require.Equal(t, pos(1, 5), e.PrimaryCursor(), "clamped to the shorter line")
}

func TestReloadKeepsUnsavedChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	e := newEditor(t, "", 4)
	require.NoError(t, e.LoadFile(path, false))
	require.NoError(t, e.InsertText(context.Background(), "x"))

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	ok, err := e.Reload(false)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "xa", text(e))
}

func TestReloadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	e := newEditor(t, "", 4)
	require.NoError(t, e.LoadFile(path, false))
	require.NoError(t, os.Remove(path))

	_, err := e.Reload(false)
	require.ErrorIs(t, err, os.ErrNotExist)
}
