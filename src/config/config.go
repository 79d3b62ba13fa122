// Package config loads application settings from a .env file next to the
// executable, with plain environment variables taking precedence.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPathVar names an alternative .env location, used when no .env sits
// next to the executable.
const EnvPathVar = "REGION_MIRROR_ENV"

// DefaultHotkey begins a region selection.
const DefaultHotkey = "Ctrl+Alt+M"

type Config struct {
	// FrameRateCap bounds the capture frame rate. Default 30.
	FrameRateCap int
	// Hotkey is the global begin-selection combination.
	Hotkey string
	// EnableFileLogging writes the rotating debug log; otherwise logs are
	// discarded to keep stdout clean.
	EnableFileLogging bool
	// ShowBorder toggles the capture-region border indicator.
	ShowBorder bool
}

func Load() (*Config, error) {
	// Priority order: .env in the executable directory, then the
	// REGION_MIRROR_ENV path. Real environment variables win over both.
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		FrameRateCap:      resolvePositiveInt("FRAME_RATE_CAP", 30),
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		ShowBorder:        strings.ToLower(getEnvWithDefault("SHOW_BORDER", "true")) != "false",
	}
	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func resolvePositiveInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
