// file:trie/pkg/x_alloc/alloc.go
package x_alloc

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rskv-p/trie/constant"
)

var (
	_ Allocator = (*Heap)(nil)
	_ Allocator = (*Limited)(nil)
	_ Allocator = (*FailAfter)(nil)
)

//---------------------
// Allocator Interface
//---------------------

// Allocator grants memory for trie nodes. Alloc may fail; callers must pair
// every successful Alloc with exactly one Free of the same size.
type Allocator interface {
	Alloc(size int) error
	Free(size int)
	Stats() Stats
}

// Stats is a point-in-time snapshot of allocator activity.
type Stats struct {
	Live      int64 // outstanding allocations
	LiveBytes int64 // outstanding bytes
	Allocs    int64 // successful Alloc calls
	Frees     int64 // Free calls
	Failures  int64 // refused Alloc calls
}

func (s Stats) String() string {
	return fmt.Sprintf("live=%d bytes=%d allocs=%d frees=%d failures=%d",
		s.Live, s.LiveBytes, s.Allocs, s.Frees, s.Failures)
}

//---------------------
// Counters (Shared)
//---------------------

type counters struct {
	live      atomic.Int64
	liveBytes atomic.Int64
	allocs    atomic.Int64
	frees     atomic.Int64
	failures  atomic.Int64
}

func (c *counters) onAlloc(size int) {
	c.live.Add(1)
	c.liveBytes.Add(int64(size))
	c.allocs.Add(1)
}

func (c *counters) onFree(size int) {
	c.live.Add(-1)
	c.liveBytes.Add(-int64(size))
	c.frees.Add(1)
}

func (c *counters) onFail() { c.failures.Add(1) }

func (c *counters) snapshot() Stats {
	return Stats{
		Live:      c.live.Load(),
		LiveBytes: c.liveBytes.Load(),
		Allocs:    c.allocs.Load(),
		Frees:     c.frees.Load(),
		Failures:  c.failures.Load(),
	}
}

//---------------------
// Heap
//---------------------

// Heap never refuses an allocation. It only keeps counters.
type Heap struct {
	counters
}

// NewHeap creates an unbounded allocator.
func NewHeap() *Heap { return &Heap{} }

func (h *Heap) Alloc(size int) error {
	h.onAlloc(size)
	return nil
}

func (h *Heap) Free(size int) { h.onFree(size) }

func (h *Heap) Stats() Stats { return h.snapshot() }

//---------------------
// Limited
//---------------------

// Limited refuses any allocation that would push live bytes over its budget.
type Limited struct {
	counters
	mu     sync.Mutex
	budget int64
	used   int64
}

// NewLimited creates an allocator with a fixed byte budget.
func NewLimited(budget int64) *Limited {
	return &Limited{budget: budget}
}

func (l *Limited) Alloc(size int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.used+int64(size) > l.budget {
		l.onFail()
		return fmt.Errorf("alloc %d bytes (used %d of %d): %w", size, l.used, l.budget, constant.ErrOutOfMemory)
	}
	l.used += int64(size)
	l.onAlloc(size)
	return nil
}

func (l *Limited) Free(size int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.used -= int64(size)
	l.onFree(size)
}

// SetBudget changes the budget. Already granted bytes are not reclaimed.
func (l *Limited) SetBudget(budget int64) {
	l.mu.Lock()
	l.budget = budget
	l.mu.Unlock()
}

func (l *Limited) Stats() Stats { return l.snapshot() }

//---------------------
// FailAfter (fault injection)
//---------------------

// FailAfter fails the Nth Alloc call (1-based) counted from creation or the
// last Reset. If sticky, every later call fails too.
type FailAfter struct {
	counters
	mu     sync.Mutex
	n      int64
	calls  int64
	sticky bool
}

// NewFailAfter fails the Nth call and every later one.
func NewFailAfter(n int) *FailAfter {
	return &FailAfter{n: int64(n), sticky: true}
}

// NewFailAt fails exactly the Nth call.
func NewFailAt(n int) *FailAfter {
	return &FailAfter{n: int64(n)}
}

func (f *FailAfter) Alloc(size int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.n > 0 && (f.calls == f.n || (f.sticky && f.calls > f.n)) {
		f.onFail()
		return fmt.Errorf("alloc call %d: %w", f.calls, constant.ErrOutOfMemory)
	}
	f.onAlloc(size)
	return nil
}

func (f *FailAfter) Free(size int) { f.onFree(size) }

// Reset restarts the call count with a new trigger. n <= 0 disables failures.
func (f *FailAfter) Reset(n int) {
	f.mu.Lock()
	f.n, f.calls = int64(n), 0
	f.mu.Unlock()
}

// Calls returns the number of Alloc calls since the last Reset.
func (f *FailAfter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(f.calls)
}

func (f *FailAfter) Stats() Stats { return f.snapshot() }
