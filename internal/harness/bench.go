// file: trie/internal/harness/bench.go
package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/rskv-p/trie/config"
	"github.com/rskv-p/trie/constant"
	"github.com/rskv-p/trie/pkg/x_log"
	"github.com/rskv-p/trie/pkg/x_trie"
	"golang.org/x/sync/errgroup"
)

// ctxEvery is how many operations run between context checks.
const ctxEvery = 4096

// BenchResult holds one worker's phase timings.
type BenchResult struct {
	Worker int
	Keys   int
	Nodes  int
	Insert time.Duration
	Lookup time.Duration
	Remove time.Duration
}

// OpsPerSec returns the combined throughput of the three phases.
func (r BenchResult) OpsPerSec() float64 {
	total := r.Insert + r.Lookup + r.Remove
	if total <= 0 {
		return 0
	}
	return float64(3*r.Keys) / total.Seconds()
}

// Bench inserts, looks up and removes cfg.Keys keys on cfg.Workers
// goroutines. Every worker owns its trie; nothing is shared.
func Bench(ctx context.Context, cfg config.HarnessConfig) ([]BenchResult, error) {
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: workers(%d)", constant.ErrInvalidConfig, cfg.Workers)
	}
	results := make([]BenchResult, cfg.Workers)
	log := x_log.New("harness")

	g, ctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			keys, err := Keys(cfg.Keys, cfg.KeyMode)
			if err != nil {
				return err
			}
			r, err := benchWorker(ctx, keys)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			r.Worker = w
			results[w] = r
			log.Debug().
				Int("worker", w).
				Int("keys", r.Keys).
				Dur("insert", r.Insert).
				Dur("lookup", r.Lookup).
				Dur("remove", r.Remove).
				Msg("bench worker done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func benchWorker(ctx context.Context, keys []string) (BenchResult, error) {
	tr := x_trie.New[int]()
	defer tr.Free()
	r := BenchResult{Keys: len(keys)}

	start := time.Now()
	for i, k := range keys {
		if i%ctxEvery == 0 && ctx.Err() != nil {
			return r, ctx.Err()
		}
		if err := tr.InsertString(k, i); err != nil {
			return r, err
		}
	}
	r.Insert = time.Since(start)
	r.Nodes = tr.NumNodes()

	start = time.Now()
	for i, k := range keys {
		if i%ctxEvery == 0 && ctx.Err() != nil {
			return r, ctx.Err()
		}
		if v, ok := tr.LookupString(k); !ok || v != i {
			return r, fmt.Errorf("lookup(%q) = %d,%t: %w", k, v, ok, constant.ErrCheckFailed)
		}
	}
	r.Lookup = time.Since(start)

	start = time.Now()
	for i, k := range keys {
		if i%ctxEvery == 0 && ctx.Err() != nil {
			return r, ctx.Err()
		}
		if !tr.RemoveString(k) {
			return r, fmt.Errorf("remove(%q): %w", k, constant.ErrCheckFailed)
		}
	}
	r.Remove = time.Since(start)

	if tr.NumEntries() != 0 {
		return r, fmt.Errorf("%d entries left: %w", tr.NumEntries(), constant.ErrCheckFailed)
	}
	return r, nil
}
