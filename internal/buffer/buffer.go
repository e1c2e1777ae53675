// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/softtab/internal/types"
)

// ErrReadOnly is returned by mutating calls on a read-only buffer.
var ErrReadOnly = errors.New("buffer is read-only")

// Reader is the read-only document view the position calculator works on.
type Reader interface {
	Line(index int) ([]byte, error)
	LineCount() int
}

// Buffer defines the interface for text buffer operations.
type Buffer interface {
	Reader
	Load(filePath string) error
	Lines() [][]byte
	// Insert places text at pos. Text may contain newlines.
	Insert(pos types.Position, text []byte) error
	// Delete removes [start, end) and returns the removed text.
	Delete(start, end types.Position) ([]byte, error)
	// Text returns [start, end) without modifying the buffer.
	Text(start, end types.Position) []byte
	Save(filePath string) error
	Bytes() []byte
	FilePath() string
	IsModified() bool
	ReadOnly() bool
	SetReadOnly(readOnly bool)
}
