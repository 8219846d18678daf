package x_log

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//
// ---------- Config ----------

// Config describes log outputs, level and rotation.
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // console | json
	ToConsole  bool   `json:"to_console"`
	ToFile     bool   `json:"to_file"`
	LogFile    string `json:"log_file"`
	Style      string `json:"style"`       // dark | light
	MaxSize    int    `json:"max_size"`    // MB
	MaxBackups int    `json:"max_backups"` // rotated files
	MaxAge     int    `json:"max_age"`     // days
	Compress   bool   `json:"compress"`
}

//
// ---------- Defaults ----------

const (
	defaultConfigPath = "./xlog.json"
	EnvConfigPath     = "XLOG_CONFIG"
)

var defaultConfig = Config{
	Level:      "info",
	Format:     FormatConsole,
	LogFile:    "logs/trie.log",
	ToConsole:  true,
	ToFile:     false,
	Style:      "dark",
	MaxSize:    10,
	MaxBackups: 5,
	MaxAge:     7,
	Compress:   true,
}

// DefaultConfig returns a copy of the built-in defaults.
func DefaultConfig() *Config {
	cfg := defaultConfig
	return &cfg
}

//
// ---------- LoadConfig ----------

// LoadConfig reads JSON config from file.
// If path is empty, uses XLOG_CONFIG or ./xlog.json. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			path = defaultConfigPath
		}
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config from %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

//
// ---------- Defaults Fill ----------

// applyDefaults fills missing config values from defaultConfig
func applyDefaults(cfg *Config) {
	if cfg.Level == "" {
		cfg.Level = defaultConfig.Level
	}
	if cfg.Format == "" {
		cfg.Format = defaultConfig.Format
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultConfig.LogFile
	}
	if cfg.Style == "" {
		cfg.Style = defaultConfig.Style
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = defaultConfig.MaxSize
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = defaultConfig.MaxBackups
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultConfig.MaxAge
	}
	if !cfg.ToConsole && !cfg.ToFile {
		cfg.ToConsole = true
	}
}
