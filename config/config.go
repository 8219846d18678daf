// file: trie/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rskv-p/trie/constant"
)

// Config is a flat, case-insensitive key/value store filled by Options in
// the order given. Later options override earlier ones.
type Config struct {
	values map[string]any
}

// New builds a Config from options.
func New(opts ...Option) (*Config, error) {
	c := &Config{values: map[string]any{}}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ----------------------------------------------------
// Getters
// ----------------------------------------------------

func (c *Config) Get(key string) (any, bool) {
	v, ok := c.values[strings.ToLower(key)]
	return v, ok
}

func (c *Config) Set(key string, v any) {
	c.values[strings.ToLower(key)] = v
}

// MustString returns the value if it is a string, "" otherwise.
func (c *Config) MustString(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

// StringOr returns the value as text or fallback when missing.
func (c *Config) StringOr(key, fallback string) string {
	v, ok := c.Get(key)
	if !ok {
		return fallback
	}
	return fmt.Sprint(v)
}

// Int accepts ints, JSON/TOML numbers and numeric strings.
func (c *Config) Int(key string, fallback int) int {
	v, ok := c.Get(key)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return fallback
}

func (c *Config) Bool(key string, fallback bool) bool {
	v, ok := c.Get(key)
	if !ok {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return fallback
}

// Decode copies the values into out, a pointer to a struct tagged with
// `mapstructure`. Numeric strings are converted.
func (c *Config) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(c.values); err != nil {
		return fmt.Errorf("%w: %v", constant.ErrInvalidConfig, err)
	}
	return nil
}

// ----------------------------------------------------
// Output
// ----------------------------------------------------

func (c *Config) String() string {
	data, _ := json.MarshalIndent(c.values, "", "  ")
	return string(data)
}

func (c *Config) Dump(w io.Writer) {
	_, _ = io.WriteString(w, c.String())
}
