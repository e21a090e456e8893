package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDodge loads the Dodge configuration.
// Search order: customPath -> ~/.dodge/configs/dodge.yaml -> ./configs/dodge.yaml -> embedded default
func LoadDodge(customPath string) (DodgeConfig, error) {
	// Start from defaults so partial files only override what they mention
	cfg := DefaultDodgeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dodge.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "dodge.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	embedded := DefaultDodgeConfig()
	if err := yaml.Unmarshal(defaultDodgeYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultDodgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Missing or broken files are skipped.
func tryLoad(path string) (DodgeConfig, bool) {
	cfg := DefaultDodgeConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dodge", "configs", filename)
}

// ApplyDodgePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyDodgePreset(cfg *DodgeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}

	dm := NewDifficultyManager(cfg.Difficulty)
	if IsFixedPreset(preset) {
		dm.SetEnabled(false)
	} else {
		dm.SetEnabled(true)
		dm.SetInitialLevel(InitialLevelForPreset(preset))
	}
	cfg.Difficulty = dm.Config()
}
