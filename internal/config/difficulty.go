package config

import "math"

// DifficultyManager calculates dynamic game parameters based on distance/score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// Config returns the difficulty settings the manager runs with, including
// any overrides.
func (d *DifficultyManager) Config() DifficultyConfig {
	cfg := d.cfg
	cfg.InitialLevel = d.initialLevel
	return cfg
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on distance/score.
func (d *DifficultyManager) Level(distance int, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "distance":
		progress = float64(distance) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// StartSpeed returns the speed a new game begins with, never above maxSpeed.
func (d *DifficultyManager) StartSpeed(baseSpeed, maxSpeed float64) float64 {
	speed := baseSpeed * (1.0 + d.initialLevel*d.cfg.Scaling.SpeedMultiplier)
	return math.Min(speed, maxSpeed)
}

// SpeedIncrement returns the per-tick speed ramp. Fixed difficulty disables it.
func (d *DifficultyManager) SpeedIncrement(baseIncrement float64) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return baseIncrement
}

// BarrierRate returns the barrier spawn rate for the current difficulty level.
func (d *DifficultyManager) BarrierRate(baseRate float64, distance int, score int) float64 {
	level := d.Level(distance, score)
	return baseRate * (1.0 + level*d.cfg.Scaling.SpawnMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
