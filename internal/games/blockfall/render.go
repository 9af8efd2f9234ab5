package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

const (
	cellW = 2  // screen columns per board cell
	gap   = 2  // space between board and HUD
	hudW  = 14 // HUD column width
)

var pieceColors = map[engine.PieceType]core.Color{
	engine.PieceI: core.ColorBrightCyan,
	engine.PieceJ: core.ColorBlue,
	engine.PieceL: core.ColorOrange,
	engine.PieceO: core.ColorBrightYellow,
	engine.PieceS: core.ColorBrightGreen,
	engine.PieceT: core.ColorMagenta,
	engine.PieceZ: core.ColorBrightRed,
}

// layoutSize returns the smallest screen that fits the board and HUD.
func layoutSize(rows, cols int) (w, h int) {
	return cols*cellW + 2 + gap + hudW, rows + 2
}

// Render draws the board, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	w, h := layoutSize(snap.Rows, snap.Columns)
	ox := max((g.screenW-w)/2, 0)
	oy := max((g.screenH-h)/2, 0)
	board := core.NewRect(ox, oy, snap.Columns*cellW+2, snap.Rows+2)

	g.renderBoard(dst, board, snap)
	g.renderHUD(dst, board.Right()+gap, oy, snap)
	g.renderOverlay(dst, board, snap)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

func (g *Game) renderBoard(dst *core.Screen, box core.Rect, snap engine.Snapshot) {
	over := snap.State == engine.StateGameOver
	border := core.ColorWhite
	if over {
		border = core.ColorGray
	}
	dst.DrawBox(box, border)

	hidden := make(map[int]bool, len(g.blinkRows))
	if !g.blinkShown {
		for _, y := range g.blinkRows {
			hidden[y] = true
		}
	}

	inner := box.Inset(1)
	for y, row := range snap.Board {
		for x, r := range row {
			px, py := inner.X+x*cellW, inner.Y+y
			if r == '.' || hidden[y] {
				dst.SetColored(px, py, '·', core.ColorGray)
				continue
			}
			c := core.ColorWhite
			if t, err := engine.ParsePieceType(string(r)); err == nil {
				c = pieceColors[t]
			}
			if over {
				c = core.ColorGray
			}
			drawBlock(dst, px, py, c)
		}
	}

	if snap.Piece != nil {
		t, _ := engine.ParsePieceType(snap.Piece.Type)
		for _, b := range snap.Piece.Blocks {
			drawBlock(dst, inner.X+b.X*cellW, inner.Y+b.Y, pieceColors[t])
		}
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetColored(x, y, '█', c)
	dst.SetColored(x+1, y, '█', c)
}

func (g *Game) renderHUD(dst *core.Screen, x, y int, snap engine.Snapshot) {
	dst.DrawTextColored(x, y, "BLOCKFALL", core.ColorBrightCyan)

	dst.DrawTextColored(x, y+2, "SCORE", core.ColorGray)
	dst.DrawTextColored(x, y+3, fmt.Sprintf("%d", snap.Score), core.ColorBrightWhite)

	dst.DrawTextColored(x, y+5, "LINES", core.ColorGray)
	dst.DrawTextColored(x, y+6, fmt.Sprintf("%d", snap.Lines), core.ColorBrightWhite)

	dst.DrawTextColored(x, y+8, "NEXT", core.ColorGray)
	if t, err := engine.ParsePieceType(snap.Next); err == nil {
		for _, p := range engine.ShapeOf(t).Cells() {
			drawBlock(dst, x+p.X*cellW, y+9+p.Y, pieceColors[t])
		}
	}

	dst.DrawTextColored(x, y+12, "MODE", core.ColorGray)
	dst.DrawTextColored(x, y+13, g.Mode(), core.ColorDefault)

	if high := g.highScore; high > 0 {
		dst.DrawTextColored(x, y+15, "BEST", core.ColorGray)
		dst.DrawTextColored(x, y+16, fmt.Sprintf("%d", max(high, snap.Score)), core.ColorYellow)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, box core.Rect, snap engine.Snapshot) {
	var lines []string
	color := core.ColorBrightWhite
	switch {
	case snap.State == engine.StateIdle:
		lines = []string{"Press SPACE", "to Start"}
	case snap.State == engine.StateGameOver:
		lines = []string{"GAME OVER", "", "SPACE to restart"}
		color = core.ColorBrightRed
	case g.paused:
		lines = []string{"PAUSED", "", "P to resume"}
		color = core.ColorBrightYellow
	default:
		return
	}

	top := box.Y + (box.H-len(lines))/2
	for i, line := range lines {
		x := box.X + (box.W-len([]rune(line)))/2
		dst.DrawTextColored(x, top+i, line, color)
	}
}
