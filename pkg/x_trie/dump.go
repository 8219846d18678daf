// file:trie/pkg/x_trie/dump.go
package x_trie

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

//---------------------
// Trie Dump (Debug)
//---------------------

// Dump writes an indented view of the node graph, children in byte order.
func (t *Trie[T]) Dump(w io.Writer) {
	if t == nil {
		fmt.Fprintln(w, "EMPTY")
		return
	}
	fmt.Fprintf(w, "TRIE entries=%d nodes=%d\n", t.size, t.nodes)
	t.dump(w, t.root, "", 0)
}

func (t *Trie[T]) dump(w io.Writer, n *node[T], edge string, depth int) {
	line := dumpPre(depth) + edge
	if n.kids != nil {
		line += fmt.Sprintf(" %s(%d)", n.kids.kind(), n.kids.size())
	}
	if n.hasValue {
		line += fmt.Sprintf(" = %+v", n.value)
	}
	fmt.Fprintln(w, line)

	for _, e := range sortedEdges(n) {
		t.dump(w, e.child, fmt.Sprintf("%q", []byte{e.c}), depth+1)
	}
}

type edge[T any] struct {
	c     byte
	child *node[T]
}

func sortedEdges[T any](n *node[T]) []edge[T] {
	if n.kids == nil {
		return nil
	}
	edges := make([]edge[T], 0, n.kids.size())
	n.kids.iter(func(c byte, cn *node[T]) bool {
		edges = append(edges, edge[T]{c, cn})
		return true
	})
	slices.SortFunc(edges, func(a, b edge[T]) int { return int(a.c) - int(b.c) })
	return edges
}

//---------------------
// Indentation Helper
//---------------------

func dumpPre(depth int) string {
	if depth == 0 {
		return "-- ROOT"
	}
	var b strings.Builder
	for i := 1; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString("|__ ")
	return b.String()
}
