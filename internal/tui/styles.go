package tui

import "github.com/gdamore/tcell/v2"

// Styles holds the cell styles of the text area.
type Styles struct {
	Default        tcell.Style
	LineNumber     tcell.Style
	CurrentLine    tcell.Style // line number of the primary caret
	Selection      tcell.Style
	SecondaryCaret tcell.Style
	Whitespace     tcell.Style // indentation guides at tab stops
}

// DefaultStyles is a dark palette on the terminal's own background.
func DefaultStyles() Styles {
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	return Styles{
		Default:        base,
		LineNumber:     base.Foreground(muted),
		CurrentLine:    base.Foreground(fg).Bold(true),
		Selection:      base.Reverse(true),
		SecondaryCaret: base.Background(muted),
		Whitespace:     base.Foreground(tcell.NewHexColor(0x3b4048)),
	}
}
