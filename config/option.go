// file: trie/config/option.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Option is a functional config initializer.
type Option func(*Config) error

// WithDefaults sets initial config values.
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) error {
		for k, v := range defaults {
			c.Set(k, v)
		}
		return nil
	}
}

// FromJSON loads config from a JSON file.
func FromJSON(path string) Option {
	return func(c *Config) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		data = ReplaceEnvVars(data)

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse config json: %w", err)
		}
		for k, v := range raw {
			c.Set(k, v)
		}
		return nil
	}
}

// FromTOML loads config from a TOML file. Only top-level keys are kept.
func FromTOML(path string) Option {
	return func(c *Config) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		data = ReplaceEnvVars(data)

		var raw map[string]any
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return fmt.Errorf("parse config toml: %w", err)
		}
		for k, v := range raw {
			c.Set(k, v)
		}
		return nil
	}
}

// FromFile picks FromTOML for .toml files and FromJSON otherwise.
// An empty path is a no-op.
func FromFile(path string) Option {
	return func(c *Config) error {
		switch {
		case path == "":
			return nil
		case strings.EqualFold(filepath.Ext(path), ".toml"):
			return FromTOML(path)(c)
		default:
			return FromJSON(path)(c)
		}
	}
}

// FromEnv loads config values from environment variables with prefix.
func FromEnv(prefix string) Option {
	return func(c *Config) error {
		for _, e := range os.Environ() {
			if !strings.HasPrefix(e, prefix) {
				continue
			}
			kv := strings.SplitN(e, "=", 2)
			if len(kv) == 2 {
				c.Set(strings.TrimPrefix(kv[0], prefix), ParseEnvValue(kv[1]))
			}
		}
		return nil
	}
}

// ParseEnvValue interprets strings like "true", "123".
func ParseEnvValue(v string) any {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "true") {
		return true
	}
	if strings.EqualFold(v, "false") {
		return false
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return v
}

// ReplaceEnvVars replaces ${ENV_VAR} in raw file contents.
func ReplaceEnvVars(data []byte) []byte {
	return []byte(os.ExpandEnv(string(data)))
}
