package board

import (
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/chesscore/position"
)

var (
	drawLabel     = color.New(color.Bold)
	drawDark      = color.New(color.FgBlack, color.BgGreen)
	drawLight     = color.New(color.FgBlack, color.BgHiWhite)
	drawHighlight = color.New(color.FgBlack, color.BgHiYellow)
)

// Draw renders the board for a terminal, marking the cells in highlight.
func (b *Board) Draw(highlight Bitmap) string {
	builder := strings.Builder{}
	for y := Height - 1; y >= 0; y-- {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < Width; x++ {
			pos := position.NewPos(x, y)
			s, p := b.PieceAt(pos)
			sym := p.SymbolUnicode(s, false)
			if p == PieceUnknown {
				sym = " "
			}
			c := drawDark
			switch {
			case highlight.Has(pos):
				c = drawHighlight
			case pos.IsLight():
				c = drawLight
			}
			_, _ = builder.WriteString(c.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
