// Package prefs remembers per-user choices between local runs: the last
// player name and the preferred control mode.
//
// Data is stored through gdata in the platform's application data
// directory. Without a gdata manager the package runs in memory only.
package prefs

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name.
const AppName = "dodge"

const (
	prefsObject   = "prefs"
	prefsProperty = "local"
)

// Prefs holds the remembered choices.
type Prefs struct {
	PlayerName string `yaml:"player_name"`
	Controls   string `yaml:"controls"`
}

// Manager loads and saves Prefs.
type Manager struct {
	data   *gdata.Manager // nil means degraded, in-memory mode
	prefs  Prefs
	logger *log.Logger
}

// Open creates a manager backed by gdata storage for appName. When storage
// cannot be opened the manager falls back to memory and logs a warning.
func Open(appName string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}

	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("preferences unavailable, using defaults", "error", err)
		data = nil
	}

	return New(data, logger)
}

// New creates a manager over an existing gdata manager, which may be nil,
// and loads any saved preferences.
func New(data *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}

	m := &Manager{data: data, logger: logger}
	if err := m.Load(); err != nil {
		logger.Warn("failed to load preferences", "error", err)
	}
	return m
}

// Persistent reports whether changes survive the process.
func (m *Manager) Persistent() bool {
	return m.data != nil
}

// Load reads saved preferences. Missing data leaves the zero Prefs.
func (m *Manager) Load() error {
	m.prefs = Prefs{}

	if m.data == nil {
		return nil
	}

	if !m.data.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	raw, err := m.data.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	var p Prefs
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	m.prefs = p
	return nil
}

// Save writes the current preferences. It is a no-op in degraded mode.
func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}

	raw, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := m.data.SaveObjectProp(prefsObject, prefsProperty, raw); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Get returns the current preferences.
func (m *Manager) Get() Prefs {
	return m.prefs
}

// Remember updates the preferences and saves them. Empty fields keep their
// previous value. Save failures are logged.
func (m *Manager) Remember(playerName, controls string) {
	if playerName != "" {
		m.prefs.PlayerName = playerName
	}
	if controls != "" {
		m.prefs.Controls = controls
	}

	if err := m.Save(); err != nil {
		m.logger.Warn("failed to save preferences", "error", err)
	}
}
