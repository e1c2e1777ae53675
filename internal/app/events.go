package app

import (
	"github.com/bethropolis/softtab/internal/event"
	"github.com/bethropolis/softtab/internal/logger"
)

func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeSelectionsChanged, a.handleSelectionsChangedForStatus)
	a.eventManager.Subscribe(event.TypeOptionsChanged, a.handleOptionsChangedForStatus)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferChangedForStatus)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferChangedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoadedForStatus)
}

// handleSelectionsChangedForStatus updates the caret position shown.
func (a *App) handleSelectionsChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.SelectionsChangedData); ok && len(data.Selections) > 0 {
		a.statusBar.SetCursorInfo(data.Selections[0].Active, len(data.Selections))
	}
	return false
}

func (a *App) handleOptionsChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.OptionsChangedData); ok {
		a.statusBar.SetIndentInfo(data.Indent)
	}
	return false
}

// handleBufferChangedForStatus refreshes the modified indicator.
func (a *App) handleBufferChangedForStatus(event.Event) bool {
	a.updateStatusBarContent()
	return false
}

func (a *App) handleBufferLoadedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		logger.Debugf("App: buffer loaded from %s", data.FilePath)
	}
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}
