// file:trie/pkg/x_trie/locked.go
package x_trie

import (
	"io"
	"sync"
)

// Locked serializes access to a Trie: mutations take the write lock,
// reads take the read lock.
type Locked[T any] struct {
	mu sync.RWMutex
	t  *Trie[T]
}

// NewLocked wraps a fresh trie built with opts.
func NewLocked[T any](opts ...Option) *Locked[T] {
	return &Locked[T]{t: New[T](opts...)}
}

func (l *Locked[T]) Insert(key []byte, value T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Insert(key, value)
}

func (l *Locked[T]) Remove(key []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Remove(key)
}

func (l *Locked[T]) Free() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.t.Free()
}

func (l *Locked[T]) Lookup(key []byte) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Lookup(key)
}

func (l *Locked[T]) Get(key []byte) Value[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.Get(key)
}

func (l *Locked[T]) NumEntries() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t.NumEntries()
}

func (l *Locked[T]) Dump(w io.Writer) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.t.Dump(w)
}
