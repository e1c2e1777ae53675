// internal/core/editor.go
package core

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/config"
	"github.com/bethropolis/softtab/internal/core/clipboard"
	"github.com/bethropolis/softtab/internal/core/cursor"
	"github.com/bethropolis/softtab/internal/core/history"
	"github.com/bethropolis/softtab/internal/event"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/tabstop"
	"github.com/bethropolis/softtab/internal/types"
)

// Editor owns one buffer together with its selections, indentation settings
// and viewport. It is the Host the caret commands run against.
type Editor struct {
	buffer     buffer.Buffer
	selections []types.Selection // primary first
	indent     types.IndentContext

	ViewportY  int // Top visible line index (0-based)
	ViewportX  int // Leftmost visible visual column - Horizontal scroll
	viewWidth  int // Cached terminal width
	viewHeight int // Cached terminal height (excluding status bar)
	ScrollOff  int // Number of lines to keep visible above/below cursor

	statusBarHeight int

	eventManager     *event.Manager
	historyManager   *history.Manager
	clipboardManager *clipboard.Manager
	commands         *cursor.Registry
}

var _ cursor.Host = (*Editor)(nil)

// NewEditor creates a new Editor instance with a given buffer.
func NewEditor(buf buffer.Buffer) *Editor {
	e := &Editor{
		buffer:          buf,
		selections:      []types.Selection{types.NewCaret(types.Position{})},
		indent:          types.IndentContext{TabWidth: config.DefaultTabWidth},
		ScrollOff:       config.DefaultScrollOff,
		statusBarHeight: config.StatusBarHeight,
		commands:        cursor.NewRegistry(),
	}
	e.historyManager = history.NewManager(e, history.DefaultMaxHistory)
	e.clipboardManager = clipboard.NewManager(e, config.SystemClipboard)
	return e
}

// Configure applies the editor section of the configuration.
func (e *Editor) Configure(cfg config.EditorConfig) {
	e.ScrollOff = cfg.ScrollOff
	e.statusBarHeight = cfg.StatusBarHeight
	e.clipboardManager.UseSystem(cfg.SystemClipboard)
	e.SetIndentContext(cfg.Indent())
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager, which may be nil.
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// GetHistoryManager returns the undo/redo stack.
func (e *Editor) GetHistoryManager() *history.Manager {
	return e.historyManager
}

// GetClipboardManager returns the clipboard manager.
func (e *Editor) GetClipboardManager() *clipboard.Manager {
	return e.clipboardManager
}

// Run executes the named caret command against this editor.
func (e *Editor) Run(ctx context.Context, name string) (types.Position, error) {
	return e.commands.Run(ctx, name, e)
}

// --- cursor.Host ---

// Document returns the buffer as a read-only view.
func (e *Editor) Document() buffer.Reader {
	return e.buffer
}

// IndentContext returns the current indentation settings.
func (e *Editor) IndentContext() types.IndentContext {
	return e.indent
}

// Selections returns a copy of the selections, primary first.
func (e *Editor) Selections() []types.Selection {
	out := make([]types.Selection, len(e.selections))
	copy(out, e.selections)
	return out
}

// SetSelections replaces the selections. Positions are clamped to the
// buffer and duplicates dropped; an empty set becomes a caret at 0:0.
func (e *Editor) SetSelections(sels []types.Selection) {
	out := make([]types.Selection, 0, len(sels))
	seen := make(map[types.Selection]bool, len(sels))
	for _, sel := range sels {
		sel = types.Selection{
			Anchor: tabstop.Clamp(e.buffer, sel.Anchor),
			Active: tabstop.Clamp(e.buffer, sel.Active),
		}
		if seen[sel] {
			continue
		}
		seen[sel] = true
		out = append(out, sel)
	}
	if len(out) == 0 {
		out = append(out, types.NewCaret(types.Position{}))
	}
	e.selections = out
	e.dispatch(event.TypeSelectionsChanged, event.SelectionsChangedData{Selections: e.Selections()})
}

// Reveal scrolls the viewport so pos is visible.
func (e *Editor) Reveal(pos types.Position) {
	e.scrollTo(pos)
}

// --- selection helpers ---

// PrimaryCursor returns the active end of the primary selection.
func (e *Editor) PrimaryCursor() types.Position {
	return e.selections[0].Active
}

// SetCursor collapses everything to a single caret at pos.
func (e *Editor) SetCursor(pos types.Position) {
	e.SetSelections([]types.Selection{types.NewCaret(pos)})
	e.Reveal(e.PrimaryCursor())
}

// AddCaret adds an empty selection at pos after the existing ones.
func (e *Editor) AddCaret(pos types.Position) {
	e.SetSelections(append(e.Selections(), types.NewCaret(pos)))
}

// AddCaretVertical adds a caret on the line above or below the last caret,
// placed the way a vertical move would place it. It returns false at the
// document edge.
func (e *Editor) AddCaretVertical(dir types.Direction) bool {
	from := e.selections[len(e.selections)-1].Active
	if (dir == types.Up && from.Line == 0) || (dir == types.Down && from.Line >= e.buffer.LineCount()-1) {
		return false
	}
	indent := e.indent.Normalized()
	var (
		p   types.Position
		err error
	)
	if indent.UseLiteralTabs {
		p, err = e.verticalNative(from, dir, indent.TabWidth, e.buffer.LineCount()-1)
	} else {
		p, err = tabstop.VerticalTarget(e.buffer, from, dir, indent.TabWidth)
	}
	if err != nil {
		logger.Warnf("add caret %v: %v", dir, err)
		return false
	}
	e.AddCaret(p)
	e.Reveal(p)
	return true
}

// HasSelection reports whether any selection has an extent.
func (e *Editor) HasSelection() bool {
	for _, sel := range e.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// SelectAll selects the whole buffer with a single selection.
func (e *Editor) SelectAll() {
	last := e.buffer.LineCount() - 1
	end := tabstop.Clamp(e.buffer, types.Position{Line: last, Col: int(^uint(0) >> 1)})
	e.SetSelections([]types.Selection{{Anchor: types.Position{}, Active: end}})
	e.Reveal(end)
}

// --- indentation ---

// SetIndentContext replaces the indentation settings.
func (e *Editor) SetIndentContext(indent types.IndentContext) {
	indent = indent.Normalized()
	if indent == e.indent {
		return
	}
	e.indent = indent
	logger.DebugTagf("indent", "tab width %d, literal tabs %v", indent.TabWidth, indent.UseLiteralTabs)
	e.dispatch(event.TypeOptionsChanged, event.OptionsChangedData{Indent: indent})
}

// DetectIndentation guesses the buffer's indentation and applies it.
// It returns false, leaving the settings alone, when no line is indented.
func (e *Editor) DetectIndentation() bool {
	indent, ok := GuessIndent(e.buffer, e.indent.TabWidth)
	if ok {
		e.SetIndentContext(indent)
	}
	return ok
}

// --- file handling ---

// LoadFile replaces the buffer contents with the file at path. When detect
// is set the indentation is guessed from the new contents.
func (e *Editor) LoadFile(path string, detect bool) error {
	if err := e.buffer.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.historyManager.Clear()
	e.ViewportX, e.ViewportY = 0, 0
	e.SetSelections(nil)
	if detect {
		e.DetectIndentation()
	}
	e.dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	return nil
}

// Reload rereads the buffer's file after another program changed it. It
// does nothing, returning false, when the buffer has unsaved changes or
// already matches the file. The primary caret is kept, clamped to the new
// contents.
func (e *Editor) Reload(detect bool) (bool, error) {
	path := e.buffer.FilePath()
	if path == "" || e.buffer.IsModified() {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reload %s: %w", path, err)
	}
	// Load drops the final newline
	if bytes.Equal(bytes.TrimSuffix(data, []byte("\n")), e.buffer.Bytes()) {
		return false, nil
	}
	caret := e.PrimaryCursor()
	if err := e.LoadFile(path, detect); err != nil {
		return false, err
	}
	e.SetCursor(caret)
	return true, nil
}

// SaveBuffer saves the buffer to its file.
func (e *Editor) SaveBuffer() error {
	path := e.buffer.FilePath()
	if err := e.buffer.Save(path); err != nil {
		return err
	}
	e.dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buffer.FilePath()})
	return nil
}

// --- undo/redo ---

// Undo reverts the last edit.
func (e *Editor) Undo() (bool, error) {
	ok, err := e.historyManager.Undo()
	if ok {
		e.Reveal(e.PrimaryCursor())
	}
	return ok, err
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() (bool, error) {
	ok, err := e.historyManager.Redo()
	if ok {
		e.Reveal(e.PrimaryCursor())
	}
	return ok, err
}
