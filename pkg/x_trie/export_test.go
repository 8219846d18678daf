package x_trie

import "fmt"

// Verify checks the structural invariants of t.
func Verify[T any](t *Trie[T]) error { return t.verify() }

// TableKinds returns the table kind per depth along key, "-" for no table.
func TableKinds[T any](t *Trie[T], key string) []string {
	var kinds []string
	n := t.root
	for i := 0; ; i++ {
		if n.kids == nil {
			kinds = append(kinds, "-")
		} else {
			kinds = append(kinds, n.kids.kind())
		}
		if i == len(key) {
			return kinds
		}
		if n = n.child(key[i]); n == nil {
			return kinds
		}
	}
}

func (t *Trie[T]) verify() error {
	var nodes, valued int
	type item struct {
		n     *node[T]
		depth int
	}
	stack := []item{{t.root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := it.n
		nodes++
		if n.hasValue {
			valued++
		}
		if n != t.root && !n.live() {
			return fmt.Errorf("dead node at depth %d", it.depth)
		}
		if n.kids == nil {
			continue
		}
		if n.kids.size() == 0 {
			return fmt.Errorf("empty table at depth %d", it.depth)
		}
		seen := 0
		var err error
		n.kids.iter(func(c byte, cn *node[T]) bool {
			seen++
			if cn == nil {
				err = fmt.Errorf("nil child %q at depth %d", c, it.depth)
				return false
			}
			if n.kids.find(c) != cn {
				err = fmt.Errorf("child %q not found by key at depth %d", c, it.depth)
				return false
			}
			stack = append(stack, item{cn, it.depth + 1})
			return true
		})
		if err != nil {
			return err
		}
		if seen != n.kids.size() {
			return fmt.Errorf("table size %d but %d children at depth %d", n.kids.size(), seen, it.depth)
		}
	}
	if nodes != t.nodes {
		return fmt.Errorf("graph has %d nodes, tracked %d", nodes, t.nodes)
	}
	if valued != t.size {
		return fmt.Errorf("graph has %d values, size is %d", valued, t.size)
	}
	return nil
}
