package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the capture tool configuration
type Config struct {
	// Capture settings
	Capture CaptureConfig `json:"capture"`

	// Archive settings
	Archive ArchiveConfig `json:"archive"`

	// Logging settings
	Logging LoggingConfig `json:"logging"`
}

// CaptureConfig holds screen capture settings
type CaptureConfig struct {
	// Display is the zero-based index of the display to capture by default
	Display int `json:"display"`

	// OutputDir is where captured images are written
	OutputDir string `json:"output_dir"`
}

// ArchiveConfig holds capture archive settings
type ArchiveConfig struct {
	// DatabasePath is the sqlite file backing the capture archive
	DatabasePath string `json:"database_path"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Debug bool   `json:"debug"`
	File  string `json:"file"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".screengrab")

	return &Config{
		Capture: CaptureConfig{
			Display:   0,
			OutputDir: filepath.Join(base, "captures"),
		},
		Archive: ArchiveConfig{
			DatabasePath: filepath.Join(base, "screengrab.db"),
		},
		Logging: LoggingConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Capture.Display < 0 {
		return nil, fmt.Errorf("display index must not be negative")
	}

	return &cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
