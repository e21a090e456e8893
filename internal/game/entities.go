package game

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/vovakirdan/dodge/internal/core"
)

// Entity dimensions in canvas units.
const (
	BarrierLength    = 60.0 // Extent along the travel axis
	BarrierThickness = 40.0 // Extent across the travel axis
	CoinSize         = 30.0
	CoinMargin       = 15.0 // Minimum distance of a fresh coin from each edge
)

// Orientation is the axis a barrier travels along.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// Direction is the way a barrier travels.
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
)

// Barrier is an obstacle crossing the canvas. Touching one ends the game.
type Barrier struct {
	ID          string
	X, Y        float64
	W, H        float64
	Orientation Orientation
	Direction   Direction
}

// Rect returns the collision rectangle for this barrier.
func (b Barrier) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// Coin is a collectible worth a score bonus.
type Coin struct {
	ID        string
	X, Y      float64
	W, H      float64
	Collected bool
}

// Rect returns the collision rectangle for this coin.
func (c Coin) Rect() core.Rect {
	return core.NewRect(c.X, c.Y, c.W, c.H)
}

// Player is the square the user steers around the canvas.
type Player struct {
	X, Y float64
	Size float64
	Lane int // Kept for display layouts; gameplay ignores it
}

// Rect returns the collision rectangle for the player.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Size, p.Size)
}

// IDSource hands out entity identifiers that are unique within one game.
type IDSource struct {
	next uint64
}

// Next returns a fresh identifier with the given prefix.
func (s *IDSource) Next(prefix string) string {
	s.next++
	return prefix + "-" + strconv.FormatUint(s.next, 10)
}

// Reset restarts numbering.
func (s *IDSource) Reset() {
	s.next = 0
}

// GenerateBarrier creates a barrier just outside the canvas, on the side
// opposite to its direction of travel.
// speed is accepted for future difficulty scaling and currently unused.
func GenerateBarrier(rng *rand.Rand, ids *IDSource, canvasW, canvasH, speed float64) Barrier {
	_ = speed

	b := Barrier{ID: ids.Next("b")}

	if rng.Intn(2) == 0 {
		b.Orientation = OrientationHorizontal
		b.W, b.H = BarrierLength, BarrierThickness
		b.Direction = DirRight
		if rng.Float64() > 0.5 {
			b.Direction = DirLeft
		}
		b.Y = rng.Float64() * (canvasH - BarrierThickness)
		if b.Direction == DirLeft {
			b.X = canvasW
		} else {
			b.X = -BarrierLength
		}
		return b
	}

	b.Orientation = OrientationVertical
	b.W, b.H = BarrierThickness, BarrierLength
	b.Direction = DirDown
	if rng.Float64() > 0.5 {
		b.Direction = DirUp
	}
	b.X = rng.Float64() * (canvasW - BarrierThickness)
	if b.Direction == DirUp {
		b.Y = canvasH
	} else {
		b.Y = -BarrierLength
	}
	return b
}

// GenerateCoin creates an uncollected coin at a random position that keeps
// CoinMargin of free space to every canvas edge.
func GenerateCoin(rng *rand.Rand, ids *IDSource, canvasW, canvasH float64) Coin {
	spanX := math.Max(0, canvasW-CoinSize-2*CoinMargin)
	spanY := math.Max(0, canvasH-CoinSize-2*CoinMargin)
	return Coin{
		ID: ids.Next("c"),
		X:  CoinMargin + rng.Float64()*spanX,
		Y:  CoinMargin + rng.Float64()*spanY,
		W:  CoinSize,
		H:  CoinSize,
	}
}

// UpdateBarrier returns the barrier advanced by speed along its direction.
// The input value is not modified.
func UpdateBarrier(b Barrier, speed float64) Barrier {
	switch b.Direction {
	case DirLeft:
		b.X -= speed
	case DirRight:
		b.X += speed
	case DirUp:
		b.Y -= speed
	case DirDown:
		b.Y += speed
	}
	return b
}

// IsBarrierOffScreen reports whether the barrier no longer overlaps the
// canvas rectangle [0,canvasW]x[0,canvasH].
func IsBarrierOffScreen(b Barrier, canvasW, canvasH float64) bool {
	return b.X+b.W < 0 ||
		b.X > canvasW ||
		b.Y+b.H < 0 ||
		b.Y > canvasH
}
