package core

import (
	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/types"
)

// maxGuessedWidth bounds the indentation step GuessIndent will report.
const maxGuessedWidth = 8

// GuessIndent inspects the leading whitespace of r's lines. Literal tabs win
// when more lines start with a tab than with a space, and keep fallbackWidth.
// Otherwise the tab width is the most common indentation step between
// consecutive lines, preferring the smaller on ties, or fallbackWidth when
// there is none.
// ok is false when no line is indented at all.
func GuessIndent(r buffer.Reader, fallbackWidth int) (types.IndentContext, bool) {
	var tabLines, spaceLines int
	steps := make(map[int]int)
	previous := 0

	for i := 0; i < r.LineCount(); i++ {
		raw, err := r.Line(i)
		if err != nil {
			continue
		}
		line := buffer.Line{Number: i, Text: []rune(string(raw))}
		lead := line.FirstNonWhitespace()
		if lead == line.Len() {
			continue // blank lines say nothing
		}

		switch line.At(0) {
		case '\t':
			tabLines++
			continue
		case ' ':
			spaceLines++
		}

		spaces := 0
		for spaces < lead && line.At(spaces) == ' ' {
			spaces++
		}
		step := spaces - previous
		if step < 0 {
			step = -step
		}
		if step > 1 && step <= maxGuessedWidth {
			steps[step]++
		}
		previous = spaces
	}

	if tabLines == 0 && spaceLines == 0 {
		return types.IndentContext{TabWidth: fallbackWidth}.Normalized(), false
	}

	if tabLines > spaceLines {
		return types.IndentContext{TabWidth: fallbackWidth, UseLiteralTabs: true}.Normalized(), true
	}

	width, best := fallbackWidth, 0
	for step := 2; step <= maxGuessedWidth; step++ {
		if steps[step] > best {
			width, best = step, steps[step]
		}
	}
	return types.IndentContext{TabWidth: width}.Normalized(), true
}
