package cursor

import (
	"context"
	"errors"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/types"
)

// fakeHost is a minimal Host over a SliceBuffer.
type fakeHost struct {
	buf       *buffer.SliceBuffer
	indent    types.IndentContext
	sels      []types.Selection
	revealed  []types.Position
	deletes   [][]types.Range
	failWith  error
	delegated []string
}

func newFakeHost(text string, tabWidth int, sels ...types.Selection) *fakeHost {
	if len(sels) == 0 {
		sels = []types.Selection{types.NewCaret(types.Position{})}
	}
	return &fakeHost{
		buf:    buffer.NewSliceBufferFromString(text),
		indent: types.IndentContext{TabWidth: tabWidth},
		sels:   sels,
	}
}

func (h *fakeHost) Document() buffer.Reader            { return h.buf }
func (h *fakeHost) IndentContext() types.IndentContext { return h.indent }
func (h *fakeHost) Selections() []types.Selection {
	return append([]types.Selection(nil), h.sels...)
}
func (h *fakeHost) SetSelections(sels []types.Selection) { h.sels = sels }
func (h *fakeHost) Reveal(pos types.Position)            { h.revealed = append(h.revealed, pos) }

func (h *fakeHost) Delete(ctx context.Context, ranges []types.Range) error {
	if h.failWith != nil {
		return h.failWith
	}
	if h.buf.ReadOnly() {
		return buffer.ErrReadOnly
	}
	h.deletes = append(h.deletes, ranges)
	for i := len(ranges) - 1; i >= 0; i-- {
		if _, err := h.buf.Delete(ranges[i].Start, ranges[i].End); err != nil {
			return err
		}
	}
	return nil
}

func (h *fakeHost) DelegateCharacterMove(dir types.Direction, extend bool) {
	h.delegated = append(h.delegated, "char-"+dir.String())
}

func (h *fakeHost) DelegateVerticalMove(dir types.Direction, extend bool) {
	h.delegated = append(h.delegated, "vertical-"+dir.String())
}

func (h *fakeHost) text() string { return string(h.buf.Bytes()) }

var errHostRefused = errors.New("host refused edit")

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func caret(line, col int) types.Selection { return types.NewCaret(pos(line, col)) }
