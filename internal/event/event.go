// internal/event/event.go
package event

import (
	"github.com/bethropolis/softtab/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified    // Fired when buffer content changes (insert/delete)
	TypeBufferLoaded      // Fired after a buffer is successfully loaded
	TypeBufferSaved       // Fired after a buffer is successfully saved
	TypeSelectionsChanged // Fired when carets or selections change
	TypeOptionsChanged    // Fired when the indentation context changes

	// Input Events
	TypeKeyPressed // Raw key press event forwarded

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

var typeNames = map[Type]string{
	TypeUnknown:           "unknown",
	TypeBufferModified:    "buffer-modified",
	TypeBufferLoaded:      "buffer-loaded",
	TypeBufferSaved:       "buffer-saved",
	TypeSelectionsChanged: "selections-changed",
	TypeOptionsChanged:    "options-changed",
	TypeKeyPressed:        "key-pressed",
	TypeAppReady:          "app-ready",
	TypeAppQuit:           "app-quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// BufferModifiedData lists the ranges touched by one edit, in the order the
// changes were applied.
type BufferModifiedData struct {
	Ranges []types.Range
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// SelectionsChangedData carries the new selections, primary first.
type SelectionsChangedData struct {
	Selections []types.Selection
}

// OptionsChangedData carries the new indentation context.
type OptionsChangedData struct {
	Indent types.IndentContext
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
