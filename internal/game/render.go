package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dodge/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar  = '█'
	BarrierChar = '▓'
	CoinChar    = '●'
)

// Smallest terminal the playfield can be drawn in.
const (
	MinScreenW = 24
	MinScreenH = 10
)

// viewport maps canvas units onto the cell grid inside the playfield border.
type viewport struct {
	x, y   int // Top-left cell of the playfield interior
	w, h   int // Interior size in cells
	sx, sy float64
}

// viewport computes the playfield layout for a screen of the given size.
// Row 0 holds the HUD and the playfield border surrounds the interior.
func (g *Game) viewport(screenW, screenH int) viewport {
	v := viewport{
		x: 1,
		y: 2,
		w: core.Max(1, screenW-2),
		h: core.Max(1, screenH-3),
	}
	v.sx = float64(v.w) / g.cfg.Canvas.Width
	v.sy = float64(v.h) / g.cfg.Canvas.Height
	return v
}

// cells returns the inclusive interior cell span covered by r.
// ok is false when r lies entirely outside the playfield.
func (v viewport) cells(r core.Rect) (x0, y0, x1, y1 int, ok bool) {
	x0 = int(math.Floor(r.X * v.sx))
	y0 = int(math.Floor(r.Y * v.sy))
	x1 = int(math.Ceil(r.Right()*v.sx)) - 1
	y1 = int(math.Ceil(r.Bottom()*v.sy)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	if x1 < 0 || y1 < 0 || x0 >= v.w || y0 >= v.h {
		return 0, 0, 0, 0, false
	}
	x0 = core.Clamp(x0, 0, v.w-1)
	y0 = core.Clamp(y0, 0, v.h-1)
	x1 = core.Clamp(x1, 0, v.w-1)
	y1 = core.Clamp(y1, 0, v.h-1)
	return x0, y0, x1, y1, true
}

func (v viewport) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0, y0, x1, y1, ok := v.cells(r)
	if !ok {
		return
	}
	dst.FillRect(v.x+x0, v.y+y0, x1-x0+1, y1-y0+1, ch, c)
}

// ScreenToCanvas converts a terminal cell to canvas coordinates, using the
// layout Render produces for a screen of screenW x screenH cells. The result
// is the center of the cell and may fall outside the canvas.
func (g *Game) ScreenToCanvas(screenW, screenH, col, row int) (x, y float64) {
	v := g.viewport(screenW, screenH)
	x = (float64(col-v.x) + 0.5) / v.sx
	y = (float64(row-v.y) + 0.5) / v.sy
	return x, y
}

// CellSize returns the canvas extent of one terminal cell.
func (g *Game) CellSize(screenW, screenH int) (w, h float64) {
	v := g.viewport(screenW, screenH)
	return 1 / v.sx, 1 / v.sy
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("need %dx%d", MinScreenW, MinScreenH))
		return
	}

	v := g.viewport(dst.Width(), dst.Height())
	dst.DrawBox(v.x-1, v.y-1, v.w+2, v.h+2, core.ColorFrame)

	for _, c := range g.coins {
		if c.Collected {
			continue
		}
		v.fill(dst, c.Rect(), CoinChar, core.ColorCoin)
	}

	for _, b := range g.barriers {
		color := core.ColorBarrier
		if b.Orientation == OrientationVertical {
			color = core.ColorBarrierTall
		}
		v.fill(dst, b.Rect(), BarrierChar, color)
	}

	v.fill(dst, g.player.Rect(), PlayerChar, core.ColorPlayer)

	g.drawHUD(dst)

	if g.state.Paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawHUD renders the score line above the playfield.
func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Score: %d  Coins: %d  Speed: %.1fx ", g.state.Score, g.state.Coins, g.state.Speed)
	dst.DrawTextColored(1, 0, hud, core.ColorHUD)

	name := " " + g.playerName + " "
	x := dst.Width() - len([]rune(name)) - 1
	if x > len([]rune(hud))+1 {
		dst.DrawTextColored(x, 0, name, core.ColorName)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorFrame)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorAccent)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
