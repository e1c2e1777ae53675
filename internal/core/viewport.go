package core

import (
	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/tabstop"
	"github.com/bethropolis/softtab/internal/types"
)

// SetViewSize updates the cached view dimensions. width is the text area
// without the line number gutter; height includes the status bar.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	if height > e.statusBarHeight {
		e.viewHeight = height - e.statusBarHeight
	} else {
		e.viewHeight = 0 // No space to draw buffer
	}
	e.scrollTo(e.PrimaryCursor())
}

// GetViewport returns the top line and left visual column on screen.
func (e *Editor) GetViewport() (int, int) {
	return e.ViewportY, e.ViewportX
}

// ViewSize returns the cached text area dimensions.
func (e *Editor) ViewSize() (int, int) {
	return e.viewWidth, e.viewHeight
}

// scrollTo adjusts the viewport incorporating ScrollOff and visual width.
func (e *Editor) scrollTo(pos types.Position) {
	if e.viewHeight <= 0 || e.viewWidth <= 0 {
		return
	}

	// Effective scrolloff (cannot be larger than half the view height)
	scrollOff := e.ScrollOff
	if scrollOff*2 >= e.viewHeight {
		scrollOff = (e.viewHeight - 1) / 2
	}

	if pos.Line < e.ViewportY+scrollOff {
		e.ViewportY = pos.Line - scrollOff
	} else if pos.Line >= e.ViewportY+e.viewHeight-scrollOff {
		e.ViewportY = pos.Line - e.viewHeight + 1 + scrollOff
	}

	visualCol := 0
	if line, err := buffer.LineAt(e.buffer, pos.Line); err == nil {
		visualCol = VisualCol(line.Text, pos.Col, e.indent.TabWidth)
	} else {
		logger.Debugf("scrollTo: %v", err)
	}
	if visualCol < e.ViewportX {
		e.ViewportX = visualCol
	} else if visualCol >= e.ViewportX+e.viewWidth {
		// keep the cursor on the last visible column
		e.ViewportX = visualCol - e.viewWidth + 1
	}

	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	if e.ViewportX < 0 {
		e.ViewportX = 0
	}
}

// PageMove moves every caret and the viewport by one page.
// deltaPages is typically +1 (PageDown) or -1 (PageUp).
func (e *Editor) PageMove(deltaPages int) {
	if e.viewHeight <= 0 {
		return
	}
	sels := e.Selections()
	for i, sel := range sels {
		target := sel.Active
		target.Line += e.viewHeight * deltaPages
		sels[i] = types.NewCaret(tabstop.Clamp(e.buffer, target))
	}
	e.ViewportY += e.viewHeight * deltaPages
	maxViewportY := e.buffer.LineCount() - e.viewHeight
	if e.ViewportY > maxViewportY {
		e.ViewportY = maxViewportY
	}
	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	e.SetSelections(sels)
	e.scrollTo(e.PrimaryCursor())
}

// DelegateCharacterMove is the editor's own horizontal movement: one rune
// at a time, wrapping across line ends.
func (e *Editor) DelegateCharacterMove(dir types.Direction, extend bool) {
	sels := e.Selections()
	for i, sel := range sels {
		if !extend && !sel.IsEmpty() {
			edge := sel.Start()
			if dir == types.Right {
				edge = sel.End()
			}
			sels[i] = sel.Collapse(edge)
			continue
		}
		// a tab width of 1 never snaps
		p, err := tabstop.Next(e.buffer, sel.Active, dir, 1)
		if err != nil {
			logger.Warnf("character move %v: %v", dir, err)
			continue
		}
		sels[i] = moveOrExtend(sel, p, extend)
	}
	e.SetSelections(sels)
	e.Reveal(e.PrimaryCursor())
}

// DelegateVerticalMove is the editor's own vertical movement. It keeps the
// tab-expanded screen column rather than the rune index.
func (e *Editor) DelegateVerticalMove(dir types.Direction, extend bool) {
	tabWidth := e.indent.Normalized().TabWidth
	last := e.buffer.LineCount() - 1
	sels := e.Selections()
	for i, sel := range sels {
		p, err := e.verticalNative(sel.Active, dir, tabWidth, last)
		if err != nil {
			logger.Warnf("vertical move %v: %v", dir, err)
			continue
		}
		sels[i] = moveOrExtend(sel, p, extend)
	}
	e.SetSelections(sels)
	e.Reveal(e.PrimaryCursor())
}

func (e *Editor) verticalNative(pos types.Position, dir types.Direction, tabWidth, last int) (types.Position, error) {
	target := pos.Line - 1
	if dir == types.Down {
		target = pos.Line + 1
	}
	switch {
	case target < 0:
		return types.Position{}, nil
	case target > last:
		return tabstop.Clamp(e.buffer, types.Position{Line: last, Col: int(^uint(0) >> 1)}), nil
	}

	from, err := buffer.LineAt(e.buffer, pos.Line)
	if err != nil {
		return pos, err
	}
	to, err := buffer.LineAt(e.buffer, target)
	if err != nil {
		return pos, err
	}
	visual := VisualCol(from.Text, pos.Col, tabWidth)
	return types.Position{Line: target, Col: BufferCol(to.Text, visual, tabWidth)}, nil
}

func moveOrExtend(sel types.Selection, p types.Position, extend bool) types.Selection {
	if extend {
		return sel.Extend(p)
	}
	return sel.Collapse(p)
}
