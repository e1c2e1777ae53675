// Package statusbar draws the single status line below the text area.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/softtab/internal/config"
	"github.com/bethropolis/softtab/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: config.MessageTimeout,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	isModified bool
	cursorPos  types.Position
	selections int
	indent     types.IndentContext

	tempMessage     string
	tempMessageTime time.Time

	now func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(cfg Config) *StatusBar {
	return &StatusBar{
		config:     cfg,
		selections: 1,
		indent:     types.IndentContext{TabWidth: config.DefaultTabWidth},
		now:        time.Now,
	}
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the primary caret position and the number of
// selections.
func (sb *StatusBar) SetCursorInfo(pos types.Position, selections int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.selections = selections
}

// SetIndentInfo updates the indentation shown on the right.
func (sb *StatusBar) SetIndentInfo(indent types.IndentContext) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.indent = indent.Normalized()
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line Draw would render, clearing an expired message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		return sb.tempMessage, true
	}
	return sb.defaultText(), false
}

// defaultText assumes sb.mu is held.
func (sb *StatusBar) defaultText() string {
	path := sb.filePath
	if path == "" {
		path = "[No Name]"
	}
	modified := ""
	if sb.isModified {
		modified = " [Modified]"
	}
	multi := ""
	if sb.selections > 1 {
		multi = fmt.Sprintf(" (%d selections)", sb.selections)
	}
	indent := fmt.Sprintf("Spaces: %d", sb.indent.TabWidth)
	if sb.indent.UseLiteralTabs {
		indent = fmt.Sprintf("Tab Size: %d", sb.indent.TabWidth)
	}
	return fmt.Sprintf("%s%s -- Ln %d, Col %d%s -- %s",
		path, modified, sb.cursorPos.Line+1, sb.cursorPos.Col+1, multi, indent)
}

// Draw renders the status bar onto the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, isMessage := sb.Text()
	style := sb.config.StyleDefault
	if isMessage {
		style = sb.config.StyleMessage
	} else {
		sb.mu.RLock()
		if sb.isModified {
			style = sb.config.StyleModified
		}
		sb.mu.RUnlock()
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	x := 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
