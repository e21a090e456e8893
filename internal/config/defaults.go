package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

// DefaultDodgeConfig returns the default Dodge configuration.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		Canvas: DodgeCanvas{
			Width:  800,
			Height: 600,
		},
		Player: DodgePlayer{
			Size:     40,
			MoveStep: 15,
		},
		Physics: DodgePhysics{
			InitialSpeed:   3,
			SpeedIncrement: 0.001,
			MaxSpeed:       12,
		},
		Spawning: DodgeSpawning{
			BarrierRate: 0.02,
			CoinRate:    0.015,
			MaxCoins:    5,
		},
		Scoring: DodgeScoring{
			TickPoints: 1,
			CoinBonus:  50,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SpawnMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDodgeYAML
}
