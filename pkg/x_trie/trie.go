// file:trie/pkg/x_trie/trie.go
package x_trie

import (
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"
	"github.com/rskv-p/trie/pkg/x_alloc"
)

// Trie
//---------------------

// Trie maps byte-string keys, including the empty key, to values of type T.
// Keys that share a prefix share the nodes of that prefix. Every operation
// costs O(len(key)) regardless of the number of entries.
//
// A Trie is not safe for concurrent use; see Locked.
type Trie[T any] struct {
	root     *node[T]
	size     int
	nodes    int // live nodes, root included
	nodeSize int
	alloc    x_alloc.Allocator
	log      zerolog.Logger
}

// New creates an empty trie holding only a valueless root. The root is not
// charged to the allocator, so New never fails.
func New[T any](opts ...Option) *Trie[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.alloc == nil {
		o.alloc = x_alloc.NewHeap()
	}
	return &Trie[T]{
		root:     &node[T]{},
		nodes:    1,
		nodeSize: int(unsafe.Sizeof(node[T]{})),
		alloc:    o.alloc,
		log:      o.log,
	}
}

// NumEntries returns the number of keys holding a value.
func (t *Trie[T]) NumEntries() int {
	if t == nil {
		return 0
	}
	return t.size
}

// NumNodes returns the number of live nodes, root included.
func (t *Trie[T]) NumNodes() int {
	if t == nil {
		return 0
	}
	return t.nodes
}

// NodeSize is the byte count charged to the allocator per node.
func (t *Trie[T]) NodeSize() int { return t.nodeSize }

// Allocator returns the allocator nodes are charged to.
func (t *Trie[T]) Allocator() x_alloc.Allocator { return t.alloc }

//---------------------
// Lookup
//---------------------

// Lookup returns the value stored under key.
func (t *Trie[T]) Lookup(key []byte) (T, bool) {
	if n := t.find(key); n != nil && n.hasValue {
		return n.value, true
	}
	var zero T
	return zero, false
}

// Get is Lookup returning a Value.
func (t *Trie[T]) Get(key []byte) Value[T] {
	if n := t.find(key); n != nil && n.hasValue {
		return Some(n.value)
	}
	return Absent[T]()
}

// Contains reports whether key holds a value.
func (t *Trie[T]) Contains(key []byte) bool {
	n := t.find(key)
	return n != nil && n.hasValue
}

func (t *Trie[T]) LookupString(key string) (T, bool) { return t.Lookup([]byte(key)) }
func (t *Trie[T]) GetString(key string) Value[T]     { return t.Get([]byte(key)) }

func (t *Trie[T]) find(key []byte) *node[T] {
	if t == nil {
		return nil
	}
	n := t.root
	for _, c := range key {
		if n = n.child(c); n == nil {
			return nil
		}
	}
	return n
}

//---------------------
// Insert
//---------------------

// creation records one node linked during a single Insert call.
type creation[T any] struct {
	parent *node[T]
	c      byte
	child  *node[T]
}

// Insert stores value under key, replacing any previous value. When the
// allocator refuses a node, every node linked by this call is unlinked and
// freed in reverse order, the trie is left exactly as before, and the
// allocator error is returned wrapped.
func (t *Trie[T]) Insert(key []byte, value T) error {
	var buf [16]creation[T]
	created := buf[:0]

	n := t.root
	for i, c := range key {
		next := n.child(c)
		if next == nil {
			nn, err := t.newNode()
			if err != nil {
				t.rollback(created)
				t.log.Debug().
					Int("depth", i).
					Int("rolled_back", len(created)).
					Err(err).
					Msg("insert rolled back")
				return fmt.Errorf("insert key of %d bytes at byte %d: %w", len(key), i, err)
			}
			n.link(c, nn)
			created = append(created, creation[T]{parent: n, c: c, child: nn})
			next = nn
		}
		n = next
	}
	if n.set(value) {
		t.size++
	}
	return nil
}

func (t *Trie[T]) InsertString(key string, value T) error { return t.Insert([]byte(key), value) }

func (t *Trie[T]) rollback(created []creation[T]) {
	for i := len(created) - 1; i >= 0; i-- {
		rec := created[i]
		rec.parent.unlink(rec.c)
		t.release(rec.child)
	}
}

func (t *Trie[T]) newNode() (*node[T], error) {
	if err := t.alloc.Alloc(t.nodeSize); err != nil {
		return nil, err
	}
	t.nodes++
	return &node[T]{}, nil
}

// release returns a detached node's charge. The node must already be
// unlinked from its parent.
func (t *Trie[T]) release(n *node[T]) {
	n.clear()
	n.kids = nil
	t.nodes--
	t.alloc.Free(t.nodeSize)
}

//---------------------
// Remove
//---------------------

// Remove deletes key and reports whether it held a value. Nodes left with
// neither a value nor a child are released, walking up toward the root.
func (t *Trie[T]) Remove(key []byte) bool {
	if t == nil {
		return false
	}
	var buf [32]*node[T]
	path := append(buf[:0], t.root)

	n := t.root
	for _, c := range key {
		if n = n.child(c); n == nil {
			return false
		}
		path = append(path, n)
	}
	if !n.hasValue {
		return false
	}
	n.clear()
	t.size--

	// path[i] hangs under path[i-1] at key[i-1].
	for i := len(key); i > 0; i-- {
		cur := path[i]
		if cur.live() {
			break
		}
		path[i-1].unlink(key[i-1])
		t.release(cur)
	}
	return true
}

func (t *Trie[T]) RemoveString(key string) bool { return t.Remove([]byte(key)) }

//---------------------
// Free
//---------------------

// Free releases every node except the root and empties the trie. The trie
// stays usable.
func (t *Trie[T]) Free() {
	if t == nil {
		return
	}
	released := t.nodes - 1
	stack := []*node[T]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.kids != nil {
			n.kids.iter(func(_ byte, cn *node[T]) bool {
				stack = append(stack, cn)
				return true
			})
		}
		if n != t.root {
			t.release(n)
		}
	}
	t.root.clear()
	t.root.kids = nil
	t.size = 0
	t.log.Debug().Int("released", released).Msg("trie freed")
}
