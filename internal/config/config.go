// Package config provides YAML-based game configuration loading and
// difficulty management for the dodge game.
package config

import (
	"errors"
	"fmt"
)

// DodgeConfig contains all configuration for the Dodge game.
type DodgeConfig struct {
	Canvas     DodgeCanvas      `yaml:"canvas"`
	Player     DodgePlayer      `yaml:"player"`
	Physics    DodgePhysics     `yaml:"physics"`
	Spawning   DodgeSpawning    `yaml:"spawning"`
	Scoring    DodgeScoring     `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DodgeCanvas defines the logical playfield size in canvas units.
type DodgeCanvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DodgePlayer defines player parameters.
type DodgePlayer struct {
	Size     float64 `yaml:"size"`
	MoveStep float64 `yaml:"move_step"` // Distance of one directional button press
}

// DodgePhysics defines the speed ramp.
type DodgePhysics struct {
	InitialSpeed   float64 `yaml:"initial_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // Added every tick
	MaxSpeed       float64 `yaml:"max_speed"`
}

// DodgeSpawning defines per-tick spawn probabilities.
type DodgeSpawning struct {
	BarrierRate float64 `yaml:"barrier_rate"` // Scaled by (1 + speed/10)
	CoinRate    float64 `yaml:"coin_rate"`
	MaxCoins    int     `yaml:"max_coins"`
}

// DodgeScoring defines score awards.
type DodgeScoring struct {
	TickPoints int `yaml:"tick_points"`
	CoinBonus  int `yaml:"coin_bonus"`
}

// Validate reports the first structural problem with the config.
func (c DodgeConfig) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("canvas must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	case c.Player.Size <= 0:
		return errors.New("player size must be positive")
	case c.Player.Size > c.Canvas.Width || c.Player.Size > c.Canvas.Height:
		return errors.New("player does not fit on the canvas")
	case c.Physics.InitialSpeed <= 0:
		return errors.New("initial speed must be positive")
	case c.Physics.SpeedIncrement < 0:
		return errors.New("speed increment must not be negative")
	case c.Physics.MaxSpeed < c.Physics.InitialSpeed:
		return fmt.Errorf("max speed %v is below initial speed %v", c.Physics.MaxSpeed, c.Physics.InitialSpeed)
	case c.Spawning.BarrierRate < 0 || c.Spawning.CoinRate < 0:
		return errors.New("spawn rates must not be negative")
	case c.Spawning.MaxCoins < 0:
		return errors.New("max coins must not be negative")
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "distance", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Distance/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the starting speed multiplier at max difficulty
	SpawnMultiplier float64 `yaml:"spawn_multiplier"` // Added to the barrier spawn multiplier at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset converts a CLI value into a preset.
// An empty string yields an empty preset, meaning "use the config as is".
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
