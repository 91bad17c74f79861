package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 6 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardSize returns the drawn board width and height in characters.
func (g *Game) boardSize() (int, int) {
	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Cols
	if g.eng != nil {
		rows, cols = g.eng.Board().Rows(), g.eng.Board().Cols()
	}
	return cols*cellWidth + 1, rows*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.eng == nil {
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)

	if g.animating && g.animationPhase == PhaseSlide {
		g.renderSlide(dst, boardX, boardY)
	} else {
		g.renderTiles(dst, boardX, boardY)
	}

	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the score and level info.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	// Level/Target info (campaign) or Max tile (endless)
	var infoStr string
	if g.currentTarget > 0 {
		infoStr = fmt.Sprintf("Lv %d/%d  Goal %d", g.levelIndex+1, len(g.levels), g.currentTarget)
	} else {
		infoStr = fmt.Sprintf("Max: %d", g.eng.Board().MaxBlock())
	}
	dst.DrawText(core.Max(boardX, boardX+boardW-len(infoStr)), 1, infoStr)

	modeStr := "Campaign"
	if g.variant.Mode == ModeEndless {
		modeStr = fmt.Sprintf("Endless %dx%d", g.eng.Board().Rows(), g.eng.Board().Cols())
	}
	dst.DrawTextColored(boardX+(boardW-len(modeStr))/2, 2, modeStr, core.ColorGray)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	rows, cols := g.eng.Board().Rows(), g.eng.Board().Cols()
	for y := range rows + 1 {
		for x := range cols + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == cols:
				corner = '┐'
			case y == rows && x == 0:
				corner = '└'
			case y == rows && x == cols:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws the live board. A popping tile is highlighted.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	board := g.eng.Board()
	for _, p := range board.OccupiedSlots() {
		v, _ := board.At(p)
		color := tileColor(int(v))
		if g.animationPhase == PhasePop && len(g.animations) > 0 && g.animations[0].To == p {
			color = core.ColorBrightWhite
		}
		drawTile(dst, boardX, boardY, float64(p.Row), float64(p.Col), int(v), color)
	}
}

// renderSlide draws the pre-move board with moving tiles in flight.
func (g *Game) renderSlide(dst *core.Screen, boardX, boardY int) {
	if g.prevBoard == nil {
		g.renderTiles(dst, boardX, boardY)
		return
	}
	for _, p := range g.prevBoard.OccupiedSlots() {
		if _, moving := g.lastMoves.Get(p); moving {
			continue
		}
		v, _ := g.prevBoard.At(p)
		drawTile(dst, boardX, boardY, float64(p.Row), float64(p.Col), int(v), tileColor(int(v)))
	}
	for i := range g.animations {
		a := &g.animations[i]
		row, col := a.interpolatePosition()
		drawTile(dst, boardX, boardY, row, col, a.Value, tileColor(a.Value))
	}
}

// drawTile centers a value inside the cell at a possibly fractional position.
func drawTile(dst *core.Screen, boardX, boardY int, row, col float64, value int, color core.Color) {
	cellX := boardX + int(math.Round(col*cellWidth)) + 1
	cellY := boardY + int(math.Round(row*cellHeight)) + 1

	valStr := strconv.Itoa(value)
	padLeft := core.Max((cellWidth-1-len(valStr))/2, 0)
	dst.DrawTextColored(cellX+padLeft, cellY, valStr, color)
}

// tileColor picks a color by tile magnitude.
func tileColor(v int) core.Color {
	switch {
	case v <= 2:
		return core.ColorWhite
	case v <= 4:
		return core.ColorBrightWhite
	case v <= 16:
		return core.ColorOrange
	case v <= 64:
		return core.ColorRed
	case v <= 256:
		return core.ColorYellow
	case v <= 1024:
		return core.ColorBrightYellow
	case v <= 2048:
		return core.ColorGreen
	case v <= 8192:
		return core.ColorCyan
	default:
		return core.ColorMagenta
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.levelCleared {
		targetStr := fmt.Sprintf("Target %d reached!", g.currentTarget)
		if g.levelIndex >= len(g.levels)-1 {
			g.drawOverlay(dst, centerX, centerY, targetStr, "Final level complete!")
		} else {
			g.drawOverlay(dst, centerX, centerY, targetStr, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
		return
	}

	if g.won {
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")
		return
	}

	if g.gameOver {
		maxStr := fmt.Sprintf("Max tile: %d", g.eng.Board().MaxBlock())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | P: Pause | Ctrl+S: Save | R: Restart | Q: Quit"
}
