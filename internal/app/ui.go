package app

import (
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	gutter := tui.GutterWidth(a.editor.GetBuffer().LineCount(), width)
	a.editor.SetViewSize(width-gutter, height)
	a.updateStatusBarContent()

	logger.DebugTagf("draw", "drawEditor: screen %dx%d, gutter %d", width, height, gutter)

	a.tuiManager.Clear()
	tui.DrawBuffer(a.tuiManager, a.editor)
	a.statusBar.Draw(screen, width, height)
	tui.DrawCursor(a.tuiManager, a.editor)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetCursorInfo(a.editor.PrimaryCursor(), len(a.editor.Selections()))
	a.statusBar.SetIndentInfo(a.editor.IndentContext())
}

// SetStatusMessage shows a temporary message in the status bar.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}
