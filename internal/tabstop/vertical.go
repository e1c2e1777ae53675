package tabstop

import (
	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/types"
	"github.com/bethropolis/softtab/internal/utils"
)

// SnapVertical moves a column that landed inside a line's indentation to the
// nearest tab stop. Ties round down.
func SnapVertical(pos types.Position, line buffer.Line, tabWidth int) types.Position {
	if tabWidth <= 1 {
		return pos
	}
	firstNonWS := line.FirstNonWhitespace()
	if pos.Col <= 0 || pos.Col >= firstNonWS {
		return pos
	}
	remainder := pos.Col % tabWidth
	if remainder*2 > tabWidth {
		pos.Col = utils.ClampInt(pos.Col+tabWidth-remainder, 0, firstNonWS)
	} else {
		pos.Col -= remainder
	}
	return pos
}

// VerticalTarget returns where a caret at pos lands after one line of
// vertical movement. The first and last lines are terminal: up from the first
// line goes to column 0, down from the last line goes to its end.
func VerticalTarget(r buffer.Reader, pos types.Position, dir types.Direction, tabWidth int) (types.Position, error) {
	lastLine := r.LineCount() - 1
	pos.Line = utils.ClampInt(pos.Line, 0, lastLine)

	targetLine := pos.Line - 1
	if dir == types.Down {
		targetLine = pos.Line + 1
	}

	switch {
	case targetLine < 0:
		return types.Position{Line: 0, Col: 0}, nil
	case targetLine > lastLine:
		line, err := buffer.LineAt(r, lastLine)
		if err != nil {
			return pos, err
		}
		return types.Position{Line: lastLine, Col: line.Len()}, nil
	}

	line, err := buffer.LineAt(r, targetLine)
	if err != nil {
		return pos, err
	}
	moved := types.Position{Line: targetLine, Col: utils.ClampInt(pos.Col, 0, line.Len())}
	return SnapVertical(moved, line, tabWidth), nil
}
