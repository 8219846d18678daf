// file: trie/internal/harness/scenario.go
package harness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rskv-p/trie/config"
	"github.com/rskv-p/trie/constant"
	"github.com/rskv-p/trie/pkg/x_alloc"
	"github.com/rskv-p/trie/pkg/x_log"
	"github.com/rskv-p/trie/pkg/x_trie"
	"github.com/rskv-p/trie/recover"
)

// missingKey is never produced by Keys in either mode.
const missingKey = "000000000000000"

// probeKey is the decimal key Scenario A looks up when enough keys exist.
const probeKey = 54321

// longKey starts with a byte no generated key uses, so every byte of it
// needs a fresh node.
const longKey = "~brand-new-long-key-for-rollback"

// Report is the outcome of one scenario.
type Report struct {
	Name     string
	Passed   bool
	Steps    int
	Duration time.Duration
	Err      error
}

type scenarioFunc func(cfg config.HarnessConfig, p *probe) error

type entry struct {
	name string
	fn   scenarioFunc
}

var scenarios = []entry{
	{"A", scenarioA},
	{"B", scenarioB},
	{"C", scenarioC},
	{"D", scenarioD},
	{"empty-key", scenarioEmptyKey},
	{"replace", scenarioReplace},
}

// Names lists the scenarios in run order.
func Names() []string {
	out := make([]string, len(scenarios))
	for i, s := range scenarios {
		out[i] = s.name
	}
	return out
}

// Run executes the named scenario. Names match case-insensitively.
func Run(name string, cfg config.HarnessConfig) (Report, error) {
	for _, s := range scenarios {
		if strings.EqualFold(s.name, name) {
			return execute(s, cfg), nil
		}
	}
	return Report{}, fmt.Errorf("%w: %q", constant.ErrUnknownScenario, name)
}

// All runs every scenario in order.
func All(cfg config.HarnessConfig) []Report {
	out := make([]Report, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, execute(s, cfg))
	}
	return out
}

func ScenarioA(cfg config.HarnessConfig) Report        { return execute(scenarios[0], cfg) }
func ScenarioB(cfg config.HarnessConfig) Report        { return execute(scenarios[1], cfg) }
func ScenarioC(cfg config.HarnessConfig) Report        { return execute(scenarios[2], cfg) }
func ScenarioD(cfg config.HarnessConfig) Report        { return execute(scenarios[3], cfg) }
func ScenarioEmptyKey(cfg config.HarnessConfig) Report { return execute(scenarios[4], cfg) }
func ScenarioReplace(cfg config.HarnessConfig) Report  { return execute(scenarios[5], cfg) }

func execute(s entry, cfg config.HarnessConfig) Report {
	p := &probe{}
	run := recover.WrapRecover("harness", s.name, func(context.Context) error {
		return s.fn(cfg, p)
	})

	start := time.Now()
	err := run(context.Background())
	r := Report{
		Name:     s.name,
		Passed:   err == nil,
		Steps:    p.steps,
		Duration: time.Since(start),
		Err:      err,
	}

	log := x_log.New("harness")
	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("scenario", r.Name).
		Bool("passed", r.Passed).
		Int("steps", r.Steps).
		Dur("duration", r.Duration).
		Msg("scenario finished")
	return r
}

//---------------------
// Checks
//---------------------

type probe struct {
	steps int
}

func (p *probe) expect(ok bool, format string, args ...any) error {
	p.steps++
	if ok {
		return nil
	}
	return fmt.Errorf("step %d: %s: %w", p.steps, fmt.Sprintf(format, args...), constant.ErrCheckFailed)
}

func populate(tr *x_trie.Trie[int], keys []string, p *probe) error {
	for i, k := range keys {
		if err := tr.InsertString(k, i); err != nil {
			return fmt.Errorf("populate: %w", err)
		}
	}
	return p.expect(tr.NumEntries() == len(keys), "num_entries %d after %d inserts", tr.NumEntries(), len(keys))
}

//---------------------
// Scenarios
//---------------------

func scenarioA(cfg config.HarnessConfig, p *probe) error {
	keys, err := Keys(cfg.Keys, cfg.KeyMode)
	if err != nil {
		return err
	}
	tr := x_trie.New[int]()
	if err := populate(tr, keys, p); err != nil {
		return err
	}

	_, ok := tr.LookupString(missingKey)
	if err := p.expect(!ok, "lookup(%q) found a value", missingKey); err != nil {
		return err
	}

	idx := min(probeKey, len(keys)-1)
	v, ok := tr.LookupString(keys[idx])
	return p.expect(ok && v == idx, "lookup(%q) = %d, %t; want %d", keys[idx], v, ok, idx)
}

func scenarioB(cfg config.HarnessConfig, p *probe) error {
	keys, err := Keys(cfg.Keys, cfg.KeyMode)
	if err != nil {
		return err
	}
	heap := x_alloc.NewHeap()
	tr := x_trie.New[int](x_trie.WithAllocator(heap))
	if err := populate(tr, keys, p); err != nil {
		return err
	}

	for i, k := range keys {
		before := tr.NumEntries()
		removed := tr.RemoveString(k)
		if err := p.expect(removed && tr.NumEntries() == before-1,
			"remove(%q) #%d: removed=%t entries %d -> %d", k, i, removed, before, tr.NumEntries()); err != nil {
			return err
		}
	}
	if err := p.expect(tr.NumEntries() == 0, "num_entries %d after removing all", tr.NumEntries()); err != nil {
		return err
	}
	return p.expect(tr.NumNodes() == 1 && heap.Stats().Live == 0,
		"nodes=%d %s after removing all", tr.NumNodes(), heap.Stats())
}

func scenarioC(_ config.HarnessConfig, p *probe) error {
	tr := x_trie.New[string]()
	if err := tr.InsertString("hello", "A"); err != nil {
		return err
	}
	if err := tr.InsertString("hell", "B"); err != nil {
		return err
	}

	a, okA := tr.LookupString("hello")
	b, okB := tr.LookupString("hell")
	if err := p.expect(okA && a == "A" && okB && b == "B", "hello=%q,%t hell=%q,%t", a, okA, b, okB); err != nil {
		return err
	}

	removed := tr.RemoveString("hello")
	b, okB = tr.LookupString("hell")
	if err := p.expect(removed && okB && b == "B", "hell after remove(hello) = %q,%t", b, okB); err != nil {
		return err
	}
	_, okA = tr.LookupString("hello")
	return p.expect(!okA && tr.NumEntries() == 1, "hello still present or entries=%d", tr.NumEntries())
}

func scenarioD(cfg config.HarnessConfig, p *probe) error {
	if cfg.FailAt > len(longKey) {
		return fmt.Errorf("%w: fail_at(%d) beyond key of %d bytes", constant.ErrInvalidConfig, cfg.FailAt, len(longKey))
	}
	keys, err := Keys(cfg.Keys, cfg.KeyMode)
	if err != nil {
		return err
	}
	fail := x_alloc.NewFailAt(0)
	tr := x_trie.New[int](x_trie.WithAllocator(fail))
	if err := populate(tr, keys, p); err != nil {
		return err
	}
	entries, nodes, live := tr.NumEntries(), tr.NumNodes(), fail.Stats().Live

	fail.Reset(cfg.FailAt)
	err = tr.InsertString(longKey, -1)
	if err := p.expect(errors.Is(err, constant.ErrOutOfMemory), "insert with failing node %d: err=%v", cfg.FailAt, err); err != nil {
		return err
	}
	if err := p.expect(tr.NumEntries() == entries && tr.NumNodes() == nodes && fail.Stats().Live == live,
		"after rollback entries=%d nodes=%d live=%d; want %d %d %d",
		tr.NumEntries(), tr.NumNodes(), fail.Stats().Live, entries, nodes, live); err != nil {
		return err
	}
	changed := -1
	for i, k := range keys {
		if v, ok := tr.LookupString(k); !ok || v != i {
			changed = i
			break
		}
	}
	if err := p.expect(changed < 0, "lookup of key #%d changed after rollback", changed); err != nil {
		return err
	}

	fail.Reset(0)
	if err := tr.InsertString(longKey, -1); err != nil {
		return err
	}
	return p.expect(tr.NumEntries() == entries+1, "entries %d after retry", tr.NumEntries())
}

func scenarioEmptyKey(_ config.HarnessConfig, p *probe) error {
	heap := x_alloc.NewHeap()
	tr := x_trie.New[int](x_trie.WithAllocator(heap))
	if err := tr.InsertString("", 7); err != nil {
		return err
	}
	v, ok := tr.LookupString("")
	if err := p.expect(ok && v == 7 && tr.NumEntries() == 1 && heap.Stats().Allocs == 0,
		"empty key = %d,%t entries=%d allocs=%d", v, ok, tr.NumEntries(), heap.Stats().Allocs); err != nil {
		return err
	}

	if err := tr.InsertString("a", 1); err != nil {
		return err
	}
	if err := p.expect(tr.RemoveString("") && tr.NumEntries() == 1, "remove(\"\") with a child"); err != nil {
		return err
	}
	v, ok = tr.LookupString("a")
	if err := p.expect(ok && v == 1, "lookup(a) = %d,%t", v, ok); err != nil {
		return err
	}
	return p.expect(tr.RemoveString("a") && tr.NumNodes() == 1 && !tr.RemoveString(""),
		"trie not back to bare root: nodes=%d", tr.NumNodes())
}

func scenarioReplace(cfg config.HarnessConfig, p *probe) error {
	keys, err := Keys(min(cfg.Keys, 1000), cfg.KeyMode)
	if err != nil {
		return err
	}
	tr := x_trie.New[int]()
	if err := populate(tr, keys, p); err != nil {
		return err
	}
	entries, nodes := tr.NumEntries(), tr.NumNodes()

	if err := tr.InsertString("999", 1); err != nil {
		return err
	}
	added := tr.NumEntries() - entries
	if err := tr.InsertString("999", 2); err != nil {
		return err
	}
	v, _ := tr.LookupString("999")
	if err := p.expect(v == 2 && tr.NumEntries() == entries+added, "999 = %d entries=%d", v, tr.NumEntries()); err != nil {
		return err
	}
	tr.RemoveString("999")
	if added == 0 {
		// "999" was one of the generated keys; its removal drops one entry.
		return p.expect(tr.NumEntries() == entries-1, "entries %d after remove", tr.NumEntries())
	}
	return p.expect(tr.NumEntries() == entries && tr.NumNodes() == nodes,
		"entries=%d nodes=%d after remove; want %d %d", tr.NumEntries(), tr.NumNodes(), entries, nodes)
}
