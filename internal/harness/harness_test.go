package harness_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rskv-p/trie/config"
	"github.com/rskv-p/trie/constant"
	"github.com/rskv-p/trie/internal/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(keys int, mode string) config.HarnessConfig {
	cfg := config.DefaultHarness()
	cfg.Keys = keys
	cfg.KeyMode = mode
	return cfg
}

func TestKeys(t *testing.T) {
	seq, err := harness.Keys(5, constant.KeyModeSeq)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, seq)

	random, err := harness.Keys(500, constant.KeyModeRandom)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, k := range random {
		assert.False(t, seen[k], "duplicate %q", k)
		seen[k] = true
		assert.False(t, strings.HasPrefix(k, "~"))
	}

	_, err = harness.Keys(5, "zigzag")
	assert.ErrorIs(t, err, constant.ErrInvalidConfig)
	_, err = harness.Keys(-1, constant.KeyModeSeq)
	assert.ErrorIs(t, err, constant.ErrInvalidConfig)
}

func TestScenarios_DefaultSize(t *testing.T) {
	if testing.Short() {
		t.Skip("100000 keys")
	}
	for _, r := range harness.All(config.DefaultHarness()) {
		assert.True(t, r.Passed, "%s: %v", r.Name, r.Err)
		assert.Positive(t, r.Steps, r.Name)
	}
}

func TestScenarios_BothModes(t *testing.T) {
	for _, mode := range []string{constant.KeyModeSeq, constant.KeyModeRandom} {
		t.Run(mode, func(t *testing.T) {
			reports := harness.All(smallConfig(3000, mode))
			require.Len(t, reports, len(harness.Names()))
			for i, r := range reports {
				assert.Equal(t, harness.Names()[i], r.Name)
				assert.True(t, r.Passed, "%s: %v", r.Name, r.Err)
				assert.NoError(t, r.Err)
			}
		})
	}
}

func TestScenarioB_StepsPerRemove(t *testing.T) {
	r := harness.ScenarioB(smallConfig(100, constant.KeyModeSeq))
	require.True(t, r.Passed, r.Err)
	// populate check, one per remove, final count, node check
	assert.Equal(t, 1+100+2, r.Steps)
}

func TestScenarioD_EveryFailurePoint(t *testing.T) {
	for n := 1; n <= 10; n++ {
		cfg := smallConfig(500, constant.KeyModeSeq)
		cfg.FailAt = n
		r := harness.ScenarioD(cfg)
		assert.True(t, r.Passed, "fail_at=%d: %v", n, r.Err)
	}
}

func TestScenarioD_FailAtTooLarge(t *testing.T) {
	cfg := smallConfig(10, constant.KeyModeSeq)
	cfg.FailAt = 1000
	r := harness.ScenarioD(cfg)
	assert.False(t, r.Passed)
	assert.ErrorIs(t, r.Err, constant.ErrInvalidConfig)
}

func TestScenarioA_SmallKeySet(t *testing.T) {
	// fewer keys than the probe value, the last key is probed instead
	r := harness.ScenarioA(smallConfig(10, constant.KeyModeSeq))
	assert.True(t, r.Passed, r.Err)
}

func TestScenarioA_PanicIsReported(t *testing.T) {
	// zero keys indexes keys[-1]
	r := harness.ScenarioA(smallConfig(0, constant.KeyModeSeq))
	assert.False(t, r.Passed)
	require.Error(t, r.Err)
	assert.Contains(t, r.Err.Error(), "panic recovered in harness.A")
}

func TestScenarios_Fixed(t *testing.T) {
	cfg := smallConfig(1, constant.KeyModeSeq)
	for _, r := range []harness.Report{harness.ScenarioC(cfg), harness.ScenarioEmptyKey(cfg), harness.ScenarioReplace(cfg)} {
		assert.True(t, r.Passed, "%s: %v", r.Name, r.Err)
	}
}

func TestRun(t *testing.T) {
	r, err := harness.Run("c", config.DefaultHarness())
	require.NoError(t, err)
	assert.Equal(t, "C", r.Name)
	assert.True(t, r.Passed)

	r, err = harness.Run("EMPTY-KEY", config.DefaultHarness())
	require.NoError(t, err)
	assert.Equal(t, "empty-key", r.Name)

	_, err = harness.Run("nope", config.DefaultHarness())
	assert.ErrorIs(t, err, constant.ErrUnknownScenario)
}

func TestBench(t *testing.T) {
	cfg := smallConfig(2000, constant.KeyModeRandom)
	cfg.Workers = 4

	res, err := harness.Bench(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, res, 4)
	for i, r := range res {
		assert.Equal(t, i, r.Worker)
		assert.Equal(t, 2000, r.Keys)
		assert.Greater(t, r.Nodes, 2000)
		assert.Greater(t, r.OpsPerSec(), 0.0)
	}
}

func TestBench_Errors(t *testing.T) {
	cfg := smallConfig(100, constant.KeyModeSeq)
	cfg.Workers = 0
	_, err := harness.Bench(context.Background(), cfg)
	assert.ErrorIs(t, err, constant.ErrInvalidConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg.Workers = 2
	_, err = harness.Bench(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Zero(t, harness.BenchResult{}.OpsPerSec())
}
