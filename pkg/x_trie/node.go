// file:trie/pkg/x_trie/node.go
package x_trie

//---------------------
// Node
//---------------------

// node is one key position. It stays in the graph only while it holds a
// value or has at least one child; the root is the single exception.
type node[T any] struct {
	value    T
	hasValue bool
	kids     table[T] // nil until the first child is linked
}

func (n *node[T]) child(c byte) *node[T] {
	if n.kids == nil {
		return nil
	}
	return n.kids.find(c)
}

// link attaches nn under byte c. The slot must be empty.
func (n *node[T]) link(c byte, nn *node[T]) {
	if n.kids == nil {
		n.kids = newTable[T]()
	} else if n.kids.isFull() {
		n.kids = n.kids.grow()
	}
	n.kids.add(c, nn)
}

// unlink detaches the child under byte c and compacts the table.
func (n *node[T]) unlink(c byte) {
	if n.kids == nil {
		return
	}
	n.kids.del(c)
	if n.kids.size() == 0 {
		n.kids = nil
		return
	}
	if st := n.kids.shrink(); st != nil {
		n.kids = st
	}
}

func (n *node[T]) numChildren() int {
	if n.kids == nil {
		return 0
	}
	return n.kids.size()
}

// live reports whether the node has a reason to stay in the graph.
func (n *node[T]) live() bool { return n.hasValue || n.kids != nil }

func (n *node[T]) set(v T) (added bool) {
	added = !n.hasValue
	n.value, n.hasValue = v, true
	return added
}

func (n *node[T]) clear() {
	var zero T
	n.value, n.hasValue = zero, false
}
