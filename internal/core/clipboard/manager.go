// Package clipboard copies, cuts and pastes selection text through the
// system clipboard, falling back to an internal register.
package clipboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/types"
)

// EditorInterface defines methods needed from editor
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	Selections() []types.Selection
	InsertText(ctx context.Context, text string) error
	DeleteSelections(ctx context.Context) error
}

// Manager handles clipboard operations
type Manager struct {
	editor    EditorInterface
	system    bool
	clipboard []byte // internal register, always kept in sync

	// system clipboard access, replaceable in tests
	readAll  func() (string, error)
	writeAll func(string) error
}

// NewManager creates a new clipboard manager
func NewManager(editor EditorInterface, useSystem bool) *Manager {
	m := &Manager{
		editor:   editor,
		readAll:  clipboard.ReadAll,
		writeAll: clipboard.WriteAll,
	}
	m.UseSystem(useSystem)
	return m
}

// UseSystem switches between the system clipboard and the internal register.
func (m *Manager) UseSystem(on bool) {
	m.system = on && !clipboard.Unsupported
}

// Copy stores the text of all non-empty selections, joined by newlines in
// document order. It returns false when nothing is selected.
func (m *Manager) Copy() (bool, error) {
	text := m.selectedText()
	if text == "" {
		return false, nil
	}
	m.clipboard = []byte(text)
	if m.system {
		if err := m.writeAll(text); err != nil {
			// the register still holds the text
			logger.Warnf("ClipboardManager: system clipboard unavailable: %v", err)
		}
	}
	logger.Debugf("ClipboardManager: Copied %d bytes", len(text))
	return true, nil
}

// Cut copies the selections and then deletes them.
func (m *Manager) Cut(ctx context.Context) (bool, error) {
	ok, err := m.Copy()
	if !ok || err != nil {
		return ok, err
	}
	if err := m.editor.DeleteSelections(ctx); err != nil {
		return false, fmt.Errorf("cut: %w", err)
	}
	return true, nil
}

// Paste replaces every selection with the clipboard text.
func (m *Manager) Paste(ctx context.Context) (bool, error) {
	text := string(m.clipboard)
	if m.system {
		if sys, err := m.readAll(); err == nil {
			text = sys
		} else {
			logger.Warnf("ClipboardManager: reading system clipboard: %v", err)
		}
	}
	if text == "" {
		return false, nil
	}
	if err := m.editor.InsertText(ctx, text); err != nil {
		return false, fmt.Errorf("paste: %w", err)
	}
	return true, nil
}

// Contents returns the internal register.
func (m *Manager) Contents() []byte {
	return m.clipboard
}

func (m *Manager) selectedText() string {
	sels := m.editor.Selections()
	ranges := make([]types.Range, 0, len(sels))
	for _, sel := range sels {
		if !sel.IsEmpty() {
			ranges = append(ranges, sel.Range())
		}
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})

	buf := m.editor.GetBuffer()
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = string(buf.Text(r.Start, r.End))
	}
	return strings.Join(parts, "\n")
}
