// file: trie/config/harness.go
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rskv-p/trie/constant"
)

// HarnessConfig drives the scenario runner and the bench command.
type HarnessConfig struct {
	Keys     int    `mapstructure:"keys" json:"keys"`
	Workers  int    `mapstructure:"workers" json:"workers"`
	KeyMode  string `mapstructure:"key_mode" json:"key_mode"`
	FailAt   int    `mapstructure:"fail_at" json:"fail_at"`
	LogLevel string `mapstructure:"log_level" json:"log_level"`
}

// DefaultHarness returns the settings used when nothing is configured.
func DefaultHarness() HarnessConfig {
	return HarnessConfig{
		Keys:     constant.DefaultKeys,
		Workers:  constant.DefaultWorkers,
		KeyMode:  constant.KeyModeSeq,
		FailAt:   constant.DefaultFailAt,
		LogLevel: constant.DefaultLogLevel,
	}
}

func harnessDefaults() map[string]any {
	d := DefaultHarness()
	return map[string]any{
		constant.ConfigKeys:     d.Keys,
		constant.ConfigWorkers:  d.Workers,
		constant.ConfigKeyMode:  d.KeyMode,
		constant.ConfigFailAt:   d.FailAt,
		constant.ConfigLogLevel: d.LogLevel,
	}
}

// LoadHarness layers defaults, the config file (path, or $TRIE_CONFIG) and
// TRIE_* environment variables, then validates the result.
func LoadHarness(path string) (HarnessConfig, error) {
	if path == "" {
		path = os.Getenv(constant.EnvConfigPath)
	}
	cfg, err := New(
		WithDefaults(harnessDefaults()),
		FromFile(path),
		FromEnv(constant.EnvPrefix),
	)
	if err != nil {
		return HarnessConfig{}, err
	}

	var hc HarnessConfig
	if err := cfg.Decode(&hc); err != nil {
		return HarnessConfig{}, err
	}
	if err := hc.Validate(); err != nil {
		return HarnessConfig{}, err
	}
	return hc, nil
}

// Validate checks ranges and enumerations.
func (hc HarnessConfig) Validate() error {
	var bad []string
	if hc.Keys <= 0 {
		bad = append(bad, fmt.Sprintf("keys(%d)", hc.Keys))
	}
	if hc.Workers <= 0 {
		bad = append(bad, fmt.Sprintf("workers(%d)", hc.Workers))
	}
	if hc.FailAt <= 0 {
		bad = append(bad, fmt.Sprintf("fail_at(%d)", hc.FailAt))
	}
	switch hc.KeyMode {
	case constant.KeyModeSeq, constant.KeyModeRandom:
	default:
		bad = append(bad, fmt.Sprintf("key_mode(%q)", hc.KeyMode))
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", constant.ErrInvalidConfig, strings.Join(bad, ", "))
	}
	return nil
}

type harnessKey struct{}

// WithHarness stores hc in ctx.
func WithHarness(ctx context.Context, hc HarnessConfig) context.Context {
	return context.WithValue(ctx, harnessKey{}, hc)
}

// HarnessFrom returns the config stored by WithHarness, or the defaults.
func HarnessFrom(ctx context.Context) HarnessConfig {
	if ctx != nil {
		if hc, ok := ctx.Value(harnessKey{}).(HarnessConfig); ok {
			return hc
		}
	}
	return DefaultHarness()
}
