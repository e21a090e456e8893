// Package input turns raw pointer and key events into player movement.
// Every translator produces (dx, dy) deltas in canvas units that are fed to
// game.Game.Move; none of them touch game state directly.
package input

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/dodge/internal/core"
)

// ControlMode selects how the player steers.
type ControlMode string

const (
	ModeButtons ControlMode = "buttons"
	ModeSwipe   ControlMode = "swipe"
	ModeTilt    ControlMode = "tilt"
)

// Modes lists the control modes in cycling order.
var Modes = []ControlMode{ModeButtons, ModeSwipe, ModeTilt}

// ParseControlMode converts a CLI or preference value into a mode.
// An empty string selects ModeButtons.
func ParseControlMode(s string) (ControlMode, error) {
	switch ControlMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeButtons:
		return ModeButtons, nil
	case ModeSwipe:
		return ModeSwipe, nil
	case ModeTilt:
		return ModeTilt, nil
	}
	return "", fmt.Errorf("unknown control mode %q (expected buttons, swipe or tilt)", s)
}

// Next returns the mode after m in cycling order.
func (m ControlMode) Next() ControlMode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeButtons
}

// Label returns the display name of the mode.
func (m ControlMode) Label() string {
	switch m {
	case ModeSwipe:
		return "Swipe"
	case ModeTilt:
		return "Tilt"
	default:
		return "Buttons"
	}
}

// Hint returns a one-line usage hint for the mode.
func (m ControlMode) Hint() string {
	switch m {
	case ModeSwipe:
		return "Drag with the mouse to move"
	case ModeTilt:
		return "Move the mouse to tilt"
	default:
		return "Arrows or WASD to move"
	}
}

// ButtonDelta returns the move for a directional action.
// ok is false for any other action.
func ButtonDelta(a core.Action, step float64) (dx, dy float64, ok bool) {
	switch a {
	case core.ActionUp:
		return 0, -step, true
	case core.ActionDown:
		return 0, step, true
	case core.ActionLeft:
		return -step, 0, true
	case core.ActionRight:
		return step, 0, true
	}
	return 0, 0, false
}

// Drag gesture tuning.
const (
	SwipeThreshold = 5.0 // Travel before a drag produces movement
	SwipeFactor    = 0.5 // Share of the travel applied to the player
)

// DragTracker converts a pointer drag into movement. The anchor follows the
// pointer each time movement is produced.
type DragTracker struct {
	x, y   float64
	active bool
}

// Press starts a drag at (x, y).
func (d *DragTracker) Press(x, y float64) {
	d.x, d.y = x, y
	d.active = true
}

// Drag reports the move for the pointer now being at (x, y).
func (d *DragTracker) Drag(x, y float64) (dx, dy float64, ok bool) {
	if !d.active {
		d.Press(x, y)
		return 0, 0, false
	}

	dx = x - d.x
	dy = y - d.y
	if math.Abs(dx) <= SwipeThreshold && math.Abs(dy) <= SwipeThreshold {
		return 0, 0, false
	}

	d.x, d.y = x, y
	return dx * SwipeFactor, dy * SwipeFactor, true
}

// Release ends the drag.
func (d *DragTracker) Release() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *DragTracker) Active() bool {
	return d.active
}

// Tilt tuning.
const (
	TiltGain      = 2.0 // Canvas units per degree of change
	TiltDeadband  = 1.0 // Changes at or below this many units are ignored
	TiltRangeDegs = 90.0
)

// TiltTracker converts successive orientation samples into movement.
// The first sample after a reset only primes the tracker.
type TiltTracker struct {
	gamma, beta float64
	primed      bool
}

// Sample records a new orientation in degrees: gamma tilts left and right,
// beta tilts forward and back.
func (t *TiltTracker) Sample(gamma, beta float64) (dx, dy float64, ok bool) {
	if !t.primed {
		t.gamma, t.beta = gamma, beta
		t.primed = true
		return 0, 0, false
	}

	dx = (gamma - t.gamma) * TiltGain
	dy = (beta - t.beta) * TiltGain
	t.gamma, t.beta = gamma, beta

	if math.Abs(dx) > TiltDeadband || math.Abs(dy) > TiltDeadband {
		return dx, dy, true
	}
	return 0, 0, false
}

// Reset forgets the last sample.
func (t *TiltTracker) Reset() {
	t.primed = false
}

// PointerToTilt maps a pointer position on the canvas to an orientation.
// The canvas spans TiltRangeDegs on each axis, centered on zero.
func PointerToTilt(x, y, canvasW, canvasH float64) (gamma, beta float64) {
	if canvasW <= 0 || canvasH <= 0 {
		return 0, 0
	}
	gamma = (x/canvasW - 0.5) * TiltRangeDegs
	beta = (y/canvasH - 0.5) * TiltRangeDegs
	return gamma, beta
}
