package cursor

import (
	"context"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/types"
)

// Host is what the caret commands need from the editor they run against.
// It is passed to every command; commands keep no reference to it.
type Host interface {
	Document() buffer.Reader
	IndentContext() types.IndentContext

	// Selections returns the current selections, primary first.
	Selections() []types.Selection
	SetSelections(sels []types.Selection)
	// Reveal scrolls pos into view. It is a hint only.
	Reveal(pos types.Position)

	// Delete removes every range as one edit. Either all ranges are removed
	// or, on error, none are.
	Delete(ctx context.Context, ranges []types.Range) error

	// DelegateCharacterMove and DelegateVerticalMove run the host's own
	// movement, used when indentation is made of literal tabs.
	DelegateCharacterMove(dir types.Direction, extend bool)
	DelegateVerticalMove(dir types.Direction, extend bool)
}
