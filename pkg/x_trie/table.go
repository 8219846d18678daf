// file:trie/pkg/x_trie/table.go
package x_trie

//---------------------
// Child Table Interface
//---------------------

// table maps the next key byte to a child node. Implementations grow when
// full and shrink once they fit in the next smaller kind.
type table[T any] interface {
	find(c byte) *node[T]
	add(c byte, n *node[T])
	del(c byte)
	isFull() bool
	grow() table[T]
	shrink() table[T]
	size() int
	iter(f func(c byte, n *node[T]) bool)
	kind() string
}

// newTable returns the smallest table kind.
func newTable[T any]() table[T] { return &table4[T]{} }

//---------------------
// Table4 / Table16 (linear scan)
//---------------------

type table4[T any] struct {
	child [4]*node[T]
	key   [4]byte
	n     uint16
}

func (t *table4[T]) kind() string     { return "T4" }
func (t *table4[T]) size() int        { return int(t.n) }
func (t *table4[T]) isFull() bool     { return t.n >= 4 }
func (t *table4[T]) shrink() table[T] { return nil }

func (t *table4[T]) grow() table[T] {
	nt := &table16[T]{}
	for i := uint16(0); i < t.n; i++ {
		nt.add(t.key[i], t.child[i])
	}
	return nt
}

func (t *table4[T]) add(c byte, n *node[T]) {
	if t.n >= 4 {
		panic("table4 full")
	}
	t.key[t.n] = c
	t.child[t.n] = n
	t.n++
}

func (t *table4[T]) find(c byte) *node[T] {
	for i := uint16(0); i < t.n; i++ {
		if t.key[i] == c {
			return t.child[i]
		}
	}
	return nil
}

func (t *table4[T]) del(c byte) {
	for i, last := uint16(0), t.n-1; i < t.n; i++ {
		if t.key[i] == c {
			if i < last {
				t.key[i] = t.key[last]
				t.child[i] = t.child[last]
			}
			t.key[last] = 0
			t.child[last] = nil
			t.n--
			return
		}
	}
}

func (t *table4[T]) iter(f func(byte, *node[T]) bool) {
	for i := uint16(0); i < t.n; i++ {
		if !f(t.key[i], t.child[i]) {
			return
		}
	}
}

type table16[T any] struct {
	child [16]*node[T]
	key   [16]byte
	n     uint16
}

func (t *table16[T]) kind() string { return "T16" }
func (t *table16[T]) size() int    { return int(t.n) }
func (t *table16[T]) isFull() bool { return t.n >= 16 }

func (t *table16[T]) grow() table[T] {
	nt := &table48[T]{}
	for i := uint16(0); i < t.n; i++ {
		nt.add(t.key[i], t.child[i])
	}
	return nt
}

func (t *table16[T]) shrink() table[T] {
	if t.n > 4 {
		return nil
	}
	nt := &table4[T]{}
	for i := uint16(0); i < t.n; i++ {
		nt.add(t.key[i], t.child[i])
	}
	return nt
}

func (t *table16[T]) add(c byte, n *node[T]) {
	if t.n >= 16 {
		panic("table16 full")
	}
	t.key[t.n] = c
	t.child[t.n] = n
	t.n++
}

func (t *table16[T]) find(c byte) *node[T] {
	for i := uint16(0); i < t.n; i++ {
		if t.key[i] == c {
			return t.child[i]
		}
	}
	return nil
}

func (t *table16[T]) del(c byte) {
	for i, last := uint16(0), t.n-1; i < t.n; i++ {
		if t.key[i] == c {
			if i < last {
				t.key[i] = t.key[last]
				t.child[i] = t.child[last]
			}
			t.key[last] = 0
			t.child[last] = nil
			t.n--
			return
		}
	}
}

func (t *table16[T]) iter(f func(byte, *node[T]) bool) {
	for i := uint16(0); i < t.n; i++ {
		if !f(t.key[i], t.child[i]) {
			return
		}
	}
}

//---------------------
// Table48 (indexed)
//---------------------

// table48 keeps a 1-indexed slot per byte: 0 = no entry.
type table48[T any] struct {
	child [48]*node[T]
	slot  [256]byte
	n     uint16
}

func (t *table48[T]) kind() string { return "T48" }
func (t *table48[T]) size() int    { return int(t.n) }
func (t *table48[T]) isFull() bool { return t.n >= 48 }

func (t *table48[T]) grow() table[T] {
	nt := &table256[T]{}
	t.iter(func(c byte, n *node[T]) bool {
		nt.add(c, n)
		return true
	})
	return nt
}

func (t *table48[T]) shrink() table[T] {
	if t.n > 16 {
		return nil
	}
	nt := &table16[T]{}
	t.iter(func(c byte, n *node[T]) bool {
		nt.add(c, n)
		return true
	})
	return nt
}

func (t *table48[T]) add(c byte, n *node[T]) {
	if t.n >= 48 {
		panic("table48 full")
	}
	t.child[t.n] = n
	t.slot[c] = byte(t.n + 1)
	t.n++
}

func (t *table48[T]) find(c byte) *node[T] {
	i := t.slot[c]
	if i == 0 {
		return nil
	}
	return t.child[i-1]
}

func (t *table48[T]) del(c byte) {
	i := t.slot[c]
	if i == 0 {
		return
	}
	i--
	last := byte(t.n - 1)
	if i < last {
		t.child[i] = t.child[last]
		for ic := 0; ic < len(t.slot); ic++ {
			if t.slot[ic] == last+1 {
				t.slot[ic] = i + 1
				break
			}
		}
	}
	t.child[last] = nil
	t.slot[c] = 0
	t.n--
}

// iter visits children in byte order.
func (t *table48[T]) iter(f func(byte, *node[T]) bool) {
	for c := 0; c < len(t.slot); c++ {
		if i := t.slot[c]; i > 0 && !f(byte(c), t.child[i-1]) {
			return
		}
	}
}

//---------------------
// Table256 (dense)
//---------------------

type table256[T any] struct {
	child [256]*node[T]
	n     uint16
}

func (t *table256[T]) kind() string { return "T256" }
func (t *table256[T]) size() int    { return int(t.n) }
func (t *table256[T]) isFull() bool { return false }

func (t *table256[T]) grow() table[T] {
	panic("grow cannot be called on table256")
}

func (t *table256[T]) shrink() table[T] {
	if t.n > 48 {
		return nil
	}
	nt := &table48[T]{}
	t.iter(func(c byte, n *node[T]) bool {
		nt.add(c, n)
		return true
	})
	return nt
}

func (t *table256[T]) add(c byte, n *node[T]) {
	if t.child[c] == nil {
		t.n++
	}
	t.child[c] = n
}

func (t *table256[T]) find(c byte) *node[T] { return t.child[c] }

func (t *table256[T]) del(c byte) {
	if t.child[c] != nil {
		t.child[c] = nil
		t.n--
	}
}

func (t *table256[T]) iter(f func(byte, *node[T]) bool) {
	for c := 0; c < 256; c++ {
		if t.child[c] != nil && !f(byte(c), t.child[c]) {
			return
		}
	}
}
