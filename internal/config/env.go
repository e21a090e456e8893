package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Environment variable names understood by dodge.
const (
	EnvDBPath  = "DODGE_DB"
	EnvOffline = "DODGE_OFFLINE"
	EnvPlayer  = "DODGE_PLAYER"
)

// Env holds backend settings taken from the process environment and optional
// dotenv files. Real environment variables win over file values.
type Env struct {
	DBPath     string
	Offline    bool
	PlayerName string
}

// LoadEnv reads the given dotenv files (missing files are skipped) and
// merges them under the process environment.
func LoadEnv(paths ...string) Env {
	fileValues := make(map[string]string)
	for _, p := range paths {
		values, err := godotenv.Read(p)
		if err != nil {
			continue
		}
		for k, v := range values {
			fileValues[k] = v
		}
	}

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return fileValues[key]
	}

	offline, ok := parseSwitch(get(EnvOffline))
	if !ok {
		log.Warn("ignoring unrecognized value, expected yes or no", "var", EnvOffline, "value", get(EnvOffline))
	}

	return Env{
		DBPath:     strings.TrimSpace(get(EnvDBPath)),
		Offline:    offline,
		PlayerName: strings.TrimSpace(get(EnvPlayer)),
	}
}

// parseSwitch reads an on/off environment value. Empty means off. ok is
// false for values that are neither.
func parseSwitch(v string) (on, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "", "0", "f", "false", "n", "no", "off":
		return false, true
	}
	return false, false
}
