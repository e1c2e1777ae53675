package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/core"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// guideRune marks tab stops inside leading spaces.
const guideRune = '│'

// GutterWidth returns the width of the line number column, or 0 when the
// screen is too narrow for it.
func GutterWidth(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gutter := maxDigits + 1 // space between number and text
	if gutter >= width {
		return 0
	}
	return gutter
}

// isPositionWithin checks if pos is within [start, end).
func isPositionWithin(pos, start, end types.Position) bool {
	return !pos.Before(start) && pos.Before(end)
}

func selected(sels []types.Selection, pos types.Position) bool {
	for _, sel := range sels {
		if !sel.IsEmpty() && isPositionWithin(pos, sel.Start(), sel.End()) {
			return true
		}
	}
	return false
}

// lineView is what drawing one buffer line needs to know.
type lineView struct {
	screen   tcell.Screen
	styles   Styles
	y        int
	gutter   int
	viewX    int
	width    int
	tabWidth int
	sels     []types.Selection
	carets   map[types.Position]bool // secondary carets
}

// DrawBuffer draws the visible part of the editor's buffer: line numbers,
// text with tabs expanded, selections and secondary carets.
func DrawBuffer(t *TUI, editor *core.Editor) {
	width, _ := t.Size()
	_, viewHeight := editor.ViewSize()
	viewY, viewX := editor.GetViewport()
	lines := editor.GetBuffer().Lines()
	gutter := GutterWidth(len(lines), width)
	if viewHeight <= 0 || width-gutter <= 0 {
		return
	}

	sels := editor.Selections()
	primary := editor.PrimaryCursor()
	carets := make(map[types.Position]bool, len(sels)-1)
	for _, sel := range sels[1:] {
		carets[sel.Active] = true
	}
	lv := lineView{
		screen:   t.screen,
		styles:   t.styles,
		gutter:   gutter,
		viewX:    viewX,
		width:    width,
		tabWidth: editor.IndentContext().Normalized().TabWidth,
		sels:     sels,
		carets:   carets,
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + viewY
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, t.styles.Default)
		}
		if lineIdx >= len(lines) {
			continue
		}

		if gutter > 0 {
			style := t.styles.LineNumber
			if lineIdx == primary.Line {
				style = t.styles.CurrentLine
			}
			for i, r := range fmt.Sprintf("%*d", gutter-1, lineIdx+1) {
				t.screen.SetContent(i, screenY, r, nil, style)
			}
		}

		lv.y = screenY
		lv.draw(buffer.NewLine(lineIdx, string(lines[lineIdx])))
	}
}

func (lv lineView) draw(line buffer.Line) {
	lead := line.FirstNonWhitespace()
	visual, index := 0, 0
	gr := uniseg.NewGraphemes(line.String())
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		isTab := len(runes) == 1 && runes[0] == '\t'
		if isTab {
			w = lv.tabWidth - visual%lv.tabWidth
		}

		pos := types.Position{Line: line.Number, Col: index}
		style := lv.styles.Default
		mainRune, combining := runes[0], runes[1:]
		switch {
		case lv.carets[pos]:
			style = lv.styles.SecondaryCaret
		case selected(lv.sels, pos):
			style = lv.styles.Selection
		case index < lead && mainRune == ' ' && visual > 0 && lv.tabWidth > 1 && visual%lv.tabWidth == 0:
			style = lv.styles.Whitespace
			mainRune = guideRune
		}
		if isTab {
			mainRune = ' '
		}

		for cell := 0; cell < w; cell++ {
			x := visual + cell - lv.viewX + lv.gutter
			if x < lv.gutter || x >= lv.width {
				continue
			}
			if cell == 0 {
				lv.screen.SetContent(x, lv.y, mainRune, combining, style)
			} else {
				lv.screen.SetContent(x, lv.y, ' ', nil, style)
			}
		}

		visual += w
		index += len(runes)
		if visual-lv.viewX+lv.gutter >= lv.width {
			return
		}
	}

	// a caret past the last character
	if lv.carets[types.Position{Line: line.Number, Col: index}] {
		if x := visual - lv.viewX + lv.gutter; x >= lv.gutter && x < lv.width {
			lv.screen.SetContent(x, lv.y, ' ', nil, lv.styles.SecondaryCaret)
		}
	}
}

// DrawCursor shows the terminal cursor at the primary caret, or hides it
// when the caret is scrolled out of view.
func DrawCursor(t *TUI, editor *core.Editor) {
	cursor := editor.PrimaryCursor()
	viewY, viewX := editor.GetViewport()
	_, viewHeight := editor.ViewSize()
	width, _ := t.Size()
	gutter := GutterWidth(editor.GetBuffer().LineCount(), width)

	visual := 0
	if line, err := buffer.LineAt(editor.GetBuffer(), cursor.Line); err == nil {
		visual = core.VisualCol(line.Text, cursor.Col, editor.IndentContext().Normalized().TabWidth)
	} else {
		logger.Debugf("DrawCursor: Error getting line %d: %v", cursor.Line, err)
	}

	screenX := visual - viewX + gutter
	screenY := cursor.Line - viewY
	if screenX < gutter || screenX >= width || screenY < 0 || screenY >= viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}
