package modehandler

import (
	"context"
	"errors"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/core/cursor"
	"github.com/bethropolis/softtab/internal/input"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/types"
)

// caretCommands maps actions onto the named caret commands.
var caretCommands = map[input.Action]string{
	input.ActionMoveLeft:           cursor.MoveLeft,
	input.ActionMoveRight:          cursor.MoveRight,
	input.ActionMoveUp:             cursor.MoveUp,
	input.ActionMoveDown:           cursor.MoveDown,
	input.ActionMoveHome:           cursor.Home,
	input.ActionMoveEnd:            cursor.End,
	input.ActionSelectLeft:         cursor.ExtendLeft,
	input.ActionSelectRight:        cursor.ExtendRight,
	input.ActionSelectUp:           cursor.ExtendUp,
	input.ActionSelectDown:         cursor.ExtendDown,
	input.ActionSelectHome:         cursor.SmartHome,
	input.ActionSelectEnd:          cursor.SmartEnd,
	input.ActionDeleteCharBackward: cursor.DeleteLeft,
	input.ActionDeleteCharForward:  cursor.DeleteRight,
}

// HandleAction executes one decoded action.
// Returns true if the action changed something that needs a redraw.
func (mh *ModeHandler) HandleAction(ctx context.Context, actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	actionProcessed := true

	if name, ok := caretCommands[action]; ok {
		if _, err := mh.editor.Run(ctx, name); err != nil {
			mh.reportEditError(name, err)
			actionProcessed = false
		}
		mh.afterAction(action, actionProcessed)
		return actionProcessed
	}

	switch action {
	// Quit/Save actions
	case input.ActionQuit:
		if mh.editor.GetBuffer().IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press Ctrl+Q again or Ctrl+W to force quit.")
			mh.forceQuitPending = true
		} else {
			mh.quit()
			actionProcessed = false
		}
	case input.ActionForceQuit:
		mh.quit()
		actionProcessed = false

	case input.ActionSave:
		err := mh.editor.SaveBuffer()
		savedPath := mh.editor.GetBuffer().FilePath()
		if savedPath == "" {
			savedPath = "[No Name]"
		}
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
			logger.Warnf("ModeHandler: save %s: %v", savedPath, err)
		} else {
			mh.statusBar.SetTemporaryMessage("Buffer saved to %s", savedPath)
		}

	case input.ActionMovePageUp:
		mh.editor.PageMove(-1)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1)

	// Multiple selections
	case input.ActionSelectAll:
		mh.editor.SelectAll()
	case input.ActionAddCursorAbove:
		actionProcessed = mh.editor.AddCaretVertical(types.Up)
	case input.ActionAddCursorBelow:
		actionProcessed = mh.editor.AddCaretVertical(types.Down)
	case input.ActionCollapseSelections:
		sels := mh.editor.Selections()
		if len(sels) == 1 && sels[0].IsEmpty() {
			actionProcessed = false
			break
		}
		mh.editor.SetCursor(sels[0].Active)

	// Clipboard actions
	case input.ActionCopy:
		copied, err := mh.editor.GetClipboardManager().Copy()
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
			actionProcessed = false
		case copied:
			mh.statusBar.SetTemporaryMessage("Text copied to clipboard")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		}
	case input.ActionCut:
		cut, err := mh.editor.GetClipboardManager().Cut(ctx)
		switch {
		case err != nil:
			mh.reportEditError("cut", err)
			actionProcessed = false
		case !cut:
			mh.statusBar.SetTemporaryMessage("Nothing selected to cut")
			actionProcessed = false
		}
	case input.ActionPaste:
		pasted, err := mh.editor.GetClipboardManager().Paste(ctx)
		switch {
		case err != nil:
			mh.reportEditError("paste", err)
			actionProcessed = false
		case !pasted:
			mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
			actionProcessed = false
		}

	// Undo/Redo actions
	case input.ActionUndo:
		undone, err := mh.editor.Undo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
			logger.Debugf("Undo error: %v", err)
			actionProcessed = false
		} else if !undone {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
			actionProcessed = false
		}
	case input.ActionRedo:
		redone, err := mh.editor.Redo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
			logger.Debugf("Redo error: %v", err)
			actionProcessed = false
		} else if !redone {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
			actionProcessed = false
		}

	// Text modification actions
	case input.ActionInsertRune:
		if err := mh.editor.InsertRune(ctx, actionEvent.Rune); err != nil {
			mh.reportEditError("insert", err)
			actionProcessed = false
		}
	case input.ActionInsertNewLine:
		if err := mh.editor.NewLine(ctx); err != nil {
			mh.reportEditError("newline", err)
			actionProcessed = false
		}
	case input.ActionInsertTab:
		if err := mh.editor.InsertTab(ctx); err != nil {
			mh.reportEditError("tab", err)
			actionProcessed = false
		}

	case input.ActionToggleLiteralTabs:
		indent := mh.editor.IndentContext()
		indent.UseLiteralTabs = !indent.UseLiteralTabs
		mh.editor.SetIndentContext(indent)
		if indent.UseLiteralTabs {
			mh.statusBar.SetTemporaryMessage("Indenting with tabs")
		} else {
			mh.statusBar.SetTemporaryMessage("Indenting with %d spaces", mh.editor.IndentContext().TabWidth)
		}

	default:
		actionProcessed = false
	}

	mh.afterAction(action, actionProcessed)
	return actionProcessed
}

func (mh *ModeHandler) afterAction(action input.Action, processed bool) {
	if action != input.ActionQuit && action != input.ActionUnknown && processed {
		mh.forceQuitPending = false
	}
}

func (mh *ModeHandler) reportEditError(what string, err error) {
	if errors.Is(err, buffer.ErrReadOnly) {
		mh.statusBar.SetTemporaryMessage("Buffer is read-only")
		return
	}
	mh.statusBar.SetTemporaryMessage("%s failed: %v", what, err)
	logger.Debugf("ModeHandler: %s: %v", what, err)
}
