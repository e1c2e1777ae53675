// Package app wires the editor, the terminal and the input handling
// together and runs the main loop.
package app

import (
	"context"
	"fmt"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/config"
	"github.com/bethropolis/softtab/internal/core"
	"github.com/bethropolis/softtab/internal/event"
	"github.com/bethropolis/softtab/internal/input"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/modehandler"
	"github.com/bethropolis/softtab/internal/statusbar"
	"github.com/bethropolis/softtab/internal/tui"
	"github.com/bethropolis/softtab/internal/watcher"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	tuiManager   *tui.TUI
	editor       *core.Editor
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	modeHandler  *modehandler.ModeHandler
	filePath     string
	detectIndent bool

	quit          chan struct{}
	redrawRequest chan struct{}
	stopWatcher   func() error
}

// NewApp creates the application on the real terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(cfg, filePath, tuiManager)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, filePath string, tuiManager *tui.TUI) (*App, error) {
	editor := core.NewEditor(buffer.NewSliceBuffer())
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	a := &App{
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		eventManager:  eventManager,
		filePath:      filePath,
		detectIndent:  cfg.Editor.DetectIndentation,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}
	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		QuitSignal:     a.quit,
	})
	a.subscribe()

	editor.Configure(cfg.Editor)
	if filePath != "" {
		if err := editor.LoadFile(filePath, cfg.Editor.DetectIndentation); err != nil {
			return nil, err
		}
		logger.Infof("App: loaded %s (tab width %d, literal tabs %v)",
			filePath, editor.IndentContext().TabWidth, editor.IndentContext().UseLiteralTabs)
	}
	a.updateStatusBarContent()
	return a, nil
}

// Run starts the application's main loop. It returns when the user quits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.tuiManager.Close()
	defer func() {
		if a.stopWatcher != nil {
			_ = a.stopWatcher()
		}
	}()

	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)
	go a.tuiManager.GetScreen().ChannelEvents(events, stop)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	fileChanged := a.watchFile()

	a.SetStatusMessage("softtab - Ctrl+S Save | Ctrl+Q Quit | Ctrl+T Toggle tabs")

	for {
		select {
		case <-ctx.Done():
			logger.Infof("App: stopping: %v", ctx.Err())
			return nil
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.GetBuffer().IsModified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleEvent(ctx, ev) {
				a.requestRedraw()
			}
		case <-fileChanged:
			if a.reloadFile() {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// watchFile starts watching the opened file. The returned channel is nil,
// and never fires, when there is no file or the watcher cannot start.
func (a *App) watchFile() <-chan struct{} {
	if a.filePath == "" {
		return nil
	}
	w, err := watcher.New(watcher.DefaultConfig(a.filePath))
	if err != nil {
		logger.Warnf("App: not watching %s: %v", a.filePath, err)
		return nil
	}
	changed, err := w.Start()
	if err != nil {
		_ = w.Stop()
		logger.Warnf("App: not watching %s: %v", a.filePath, err)
		return nil
	}
	a.stopWatcher = w.Stop
	return changed
}

// reloadFile picks up an external change to the opened file and reports
// whether the screen needs a redraw.
func (a *App) reloadFile() bool {
	if a.editor.GetBuffer().IsModified() {
		a.statusBar.SetTemporaryMessage("File changed on disk; unsaved changes kept")
		return true
	}
	reloaded, err := a.editor.Reload(a.detectIndent)
	if err != nil {
		logger.Warnf("App: %v", err)
		a.statusBar.SetTemporaryMessage("Reload failed: %v", err)
		return true
	}
	if reloaded {
		a.statusBar.SetTemporaryMessage("Reloaded %s", a.filePath)
	}
	return reloaded
}

// handleEvent reports whether ev needs a redraw.
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ctx, ev)
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // a redraw is already pending
	}
}
