package core

import (
	"github.com/rivo/uniseg"
)

// VisualCol returns the screen column at which rune index col of line is
// drawn. Tabs advance to the next multiple of tabWidth and grapheme clusters
// take their display width.
func VisualCol(line []rune, col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	visual, index := 0, 0
	gr := uniseg.NewGraphemes(string(line))
	for index < col && gr.Next() {
		runes := gr.Runes()
		visual += clusterWidth(runes, gr.Width(), visual, tabWidth)
		index += len(runes)
	}
	return visual
}

// BufferCol is the inverse of VisualCol: it returns the rune index of the
// cluster drawn at screen column visual, or the line length past the end.
// A column inside a wide cluster or a tab maps to that cluster's start.
func BufferCol(line []rune, visual, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	at, index := 0, 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		runes := gr.Runes()
		width := clusterWidth(runes, gr.Width(), at, tabWidth)
		if at+width > visual {
			return index
		}
		at += width
		index += len(runes)
	}
	return index
}

func clusterWidth(runes []rune, width, at, tabWidth int) int {
	if len(runes) == 1 && runes[0] == '\t' {
		return tabWidth - at%tabWidth
	}
	return width
}
