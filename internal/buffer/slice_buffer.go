// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/softtab/internal/types"
	"github.com/bethropolis/softtab/internal/utils"
)

// SliceBuffer keeps the document as a slice of lines.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool // Track if buffer has unsaved changes
	readOnly bool
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		// Start with a single empty line, common for new files
		lines: [][]byte{[]byte("")},
	}
}

// NewSliceBufferFromString creates a buffer holding text, split on '\n'.
func NewSliceBufferFromString(text string) *SliceBuffer {
	sb := NewSliceBuffer()
	parts := bytes.Split([]byte(text), []byte("\n"))
	sb.lines = make([][]byte, len(parts))
	for i, p := range parts {
		sb.lines[i] = append([]byte(nil), p...)
	}
	return sb
}

// Load reads a file into the buffer. Replaces existing content.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{[]byte("")}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}
	sb.lines = newLines
	sb.filePath = filePath
	return nil
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins all lines with '\n'.
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

// Save writes the buffer content to filePath, or the stored path if empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

func (sb *SliceBuffer) ReadOnly() bool {
	return sb.readOnly
}

func (sb *SliceBuffer) SetReadOnly(readOnly bool) {
	sb.readOnly = readOnly
}

// --- Buffer Modification Methods ---

// validatePosition clamps pos into the buffer and returns its byte offset.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int) {
	pos.Line = utils.ClampInt(pos.Line, 0, len(sb.lines)-1)
	line := sb.lines[pos.Line]
	offset := utils.RuneIndexToByteOffset(line, pos.Col)
	pos.Col = utils.ByteOffsetToRuneIndex(line, offset)
	return pos, offset
}

// Insert inserts text at a given position. Handles single/multiple lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) error {
	if sb.readOnly {
		return ErrReadOnly
	}
	if len(text) == 0 {
		return nil
	}

	validPos, byteOffset := sb.validatePosition(pos)
	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := make([]byte, len(currentLine[byteOffset:]))
	copy(tail, currentLine[byteOffset:])

	head := append([]byte(nil), currentLine[:byteOffset]...)
	sb.lines[validPos.Line] = append(head, insertLines[0]...)

	if len(insertLines) == 1 {
		sb.lines[validPos.Line] = append(sb.lines[validPos.Line], tail...)
		return nil
	}

	newLines := make([][]byte, len(insertLines)-1)
	for i := 1; i < len(insertLines); i++ {
		newLines[i-1] = append([]byte(nil), insertLines[i]...)
	}
	newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)

	rest := append([][]byte(nil), sb.lines[validPos.Line+1:]...)
	sb.lines = append(append(sb.lines[:validPos.Line+1], newLines...), rest...)
	return nil
}

// Delete removes text within [start, end) and returns what was removed.
func (sb *SliceBuffer) Delete(start, end types.Position) ([]byte, error) {
	if sb.readOnly {
		return nil, ErrReadOnly
	}
	if end.Before(start) {
		start, end = end, start
	}

	vStart, startOffset := sb.validatePosition(start)
	vEnd, endOffset := sb.validatePosition(end)
	if vStart == vEnd {
		return nil, nil // Nothing to delete
	}

	sb.modified = true

	startLine := sb.lines[vStart.Line]
	if vStart.Line == vEnd.Line {
		removed := append([]byte(nil), startLine[startOffset:endOffset]...)
		merged := append([]byte(nil), startLine[:startOffset]...)
		sb.lines[vStart.Line] = append(merged, startLine[endOffset:]...)
		return removed, nil
	}

	// Deletion spans multiple lines
	var removed bytes.Buffer
	removed.Write(startLine[startOffset:])
	for i := vStart.Line + 1; i < vEnd.Line; i++ {
		removed.WriteByte('\n')
		removed.Write(sb.lines[i])
	}
	endLine := sb.lines[vEnd.Line]
	removed.WriteByte('\n')
	removed.Write(endLine[:endOffset])

	merged := append([]byte(nil), startLine[:startOffset]...)
	sb.lines[vStart.Line] = append(merged, endLine[endOffset:]...)
	sb.lines = append(sb.lines[:vStart.Line+1], sb.lines[vEnd.Line+1:]...)

	return removed.Bytes(), nil
}

// Text returns the text in [start, end) without modifying the buffer.
func (sb *SliceBuffer) Text(start, end types.Position) []byte {
	if end.Before(start) {
		start, end = end, start
	}
	vStart, startOffset := sb.validatePosition(start)
	vEnd, endOffset := sb.validatePosition(end)
	if vStart.Line == vEnd.Line {
		return append([]byte(nil), sb.lines[vStart.Line][startOffset:endOffset]...)
	}
	var out bytes.Buffer
	out.Write(sb.lines[vStart.Line][startOffset:])
	for i := vStart.Line + 1; i < vEnd.Line; i++ {
		out.WriteByte('\n')
		out.Write(sb.lines[i])
	}
	out.WriteByte('\n')
	out.Write(sb.lines[vEnd.Line][:endOffset])
	return out.Bytes()
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
