package tabstop

import (
	"fmt"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/types"
	"github.com/bethropolis/softtab/internal/utils"
)

// Next reads the lines around pos from r and returns the position one
// logical step away in dir. Vertical directions go through VerticalTarget.
func Next(r buffer.Reader, pos types.Position, dir types.Direction, tabWidth int) (types.Position, error) {
	if dir.IsVertical() {
		return VerticalTarget(r, pos, dir, tabWidth)
	}

	pos.Line = utils.ClampInt(pos.Line, 0, r.LineCount()-1)
	line, err := buffer.LineAt(r, pos.Line)
	if err != nil {
		return pos, err
	}

	neighborIndex := pos.Line - 1
	if dir == types.Right {
		neighborIndex = pos.Line + 1
	}
	var neighbor *buffer.Line
	if neighborIndex >= 0 && neighborIndex < r.LineCount() {
		n, err := buffer.LineAt(r, neighborIndex)
		if err != nil {
			return pos, err
		}
		neighbor = &n
	}

	switch dir {
	case types.Left:
		return LeftOf(pos, line, neighbor, tabWidth), nil
	case types.Right:
		return RightOf(pos, line, neighbor, tabWidth), nil
	}
	return pos, fmt.Errorf("unsupported direction %v", dir)
}

// Clamp limits pos to an existing line and column of r.
func Clamp(r buffer.Reader, pos types.Position) types.Position {
	pos.Line = utils.ClampInt(pos.Line, 0, r.LineCount()-1)
	line, err := buffer.LineAt(r, pos.Line)
	if err != nil {
		return types.Position{}
	}
	pos.Col = utils.ClampInt(pos.Col, 0, line.Len())
	return pos
}
