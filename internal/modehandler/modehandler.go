// Package modehandler turns decoded key actions into editor operations.
package modehandler

import (
	"context"

	"github.com/bethropolis/softtab/internal/core"
	"github.com/bethropolis/softtab/internal/event"
	"github.com/bethropolis/softtab/internal/input"
	"github.com/bethropolis/softtab/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// ModeHandler executes actions against the editor and tracks the pending
// quit confirmation.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}

	forceQuitPending bool
	quitting         bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // closed once to stop the app
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
	}
}

// HandleKeyEvent decodes ev and executes the resulting action.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ctx context.Context, ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})
	return mh.HandleAction(ctx, mh.inputProcessor.ProcessEvent(ev))
}

// ForceQuitPending reports whether the next quit will discard changes.
func (mh *ModeHandler) ForceQuitPending() bool {
	return mh.forceQuitPending
}

func (mh *ModeHandler) quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}
