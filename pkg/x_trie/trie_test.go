package x_trie_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rskv-p/trie/constant"
	"github.com/rskv-p/trie/pkg/x_alloc"
	"github.com/rskv-p/trie/pkg/x_trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------
// Helpers
// ----------------------------------------------------

func decimalTrie(t *testing.T, n int, opts ...x_trie.Option) *x_trie.Trie[int] {
	t.Helper()
	tr := x_trie.New[int](opts...)
	for i := 0; i < n; i++ {
		require.NoError(t, tr.InsertString(strconv.Itoa(i), i))
		require.Equal(t, i+1, tr.NumEntries())
	}
	return tr
}

func dumpString[T any](tr *x_trie.Trie[T]) string {
	var buf bytes.Buffer
	tr.Dump(&buf)
	return buf.String()
}

// ----------------------------------------------------
// Construction / Free
// ----------------------------------------------------

func TestNew_Empty(t *testing.T) {
	tr := x_trie.New[string]()
	assert.Equal(t, 0, tr.NumEntries())
	assert.Equal(t, 1, tr.NumNodes())
	_, ok := tr.LookupString("")
	assert.False(t, ok)
	assert.NoError(t, x_trie.Verify(tr))
}

func TestFree_ReleasesEverything(t *testing.T) {
	heap := x_alloc.NewHeap()
	tr := x_trie.New[string](x_trie.WithAllocator(heap))

	require.NoError(t, tr.InsertString("hello", "there"))
	require.NoError(t, tr.InsertString("hell", "testing"))
	require.NoError(t, tr.InsertString("testing", "testing"))
	require.NoError(t, tr.InsertString("", "asfasf"))
	assert.Equal(t, int64(tr.NumNodes()-1), heap.Stats().Live)

	tr.Free()
	assert.Zero(t, heap.Stats().Live)
	assert.Zero(t, heap.Stats().LiveBytes)
	assert.Equal(t, 0, tr.NumEntries())
	assert.Equal(t, 1, tr.NumNodes())
	assert.NoError(t, x_trie.Verify(tr))

	// still usable
	require.NoError(t, tr.InsertString("again", "ok"))
	assert.Equal(t, 1, tr.NumEntries())
}

func TestFree_AfterInsertRemove(t *testing.T) {
	heap := x_alloc.NewHeap()
	tr := x_trie.New[string](x_trie.WithAllocator(heap))
	require.NoError(t, tr.InsertString("hello", "there"))
	assert.True(t, tr.RemoveString("hello"))
	assert.Zero(t, heap.Stats().Live)
	tr.Free()
	assert.Zero(t, heap.Stats().Live)
}

func TestNilTrie(t *testing.T) {
	var tr *x_trie.Trie[int]
	assert.Equal(t, 0, tr.NumEntries())
	assert.False(t, tr.Remove([]byte("x")))
	_, ok := tr.Lookup([]byte("x"))
	assert.False(t, ok)
	tr.Free()
}

// ----------------------------------------------------
// Round trip, overwrite, removal
// ----------------------------------------------------

func TestInsertLookup_RoundTrip(t *testing.T) {
	tr := x_trie.New[int]()
	keys := [][]byte{{}, {0}, {0, 0}, {255}, []byte("a"), []byte("ab"), []byte("abc"), {0xff, 0x00, 0x7f}}
	for i, k := range keys {
		require.NoError(t, tr.Insert(k, i))
	}
	for i, k := range keys {
		v, ok := tr.Lookup(k)
		assert.True(t, ok, "key %q", k)
		assert.Equal(t, i, v)
		assert.True(t, tr.Contains(k))
	}
	assert.Equal(t, len(keys), tr.NumEntries())
	assert.NoError(t, x_trie.Verify(tr))
}

func TestInsert_ZeroValueIsStorable(t *testing.T) {
	tr := x_trie.New[int]()
	require.NoError(t, tr.InsertString("zero", 0))
	got := tr.GetString("zero")
	assert.True(t, got.Present)
	assert.Equal(t, 0, got.Value)
	assert.False(t, tr.GetString("zer").Present)
	assert.Equal(t, 7, tr.GetString("missing").OrElse(7))
}

func TestInsert_OverwriteKeepsCount(t *testing.T) {
	tr := decimalTrie(t, 1000)
	nodes := tr.NumNodes()

	require.NoError(t, tr.InsertString("999", -1))
	assert.Equal(t, 1000, tr.NumEntries())
	assert.Equal(t, nodes, tr.NumNodes())
	v, ok := tr.LookupString("999")
	assert.True(t, ok)
	assert.Equal(t, -1, v)
}

func TestRemove_Completeness(t *testing.T) {
	tr := decimalTrie(t, 100)
	assert.True(t, tr.RemoveString("42"))
	_, ok := tr.LookupString("42")
	assert.False(t, ok)
	assert.False(t, tr.RemoveString("42"))
	assert.Equal(t, 99, tr.NumEntries())
	assert.NoError(t, x_trie.Verify(tr))
}

func TestRemove_MissingChangesNothing(t *testing.T) {
	tr := decimalTrie(t, 100)
	before := dumpString(tr)

	assert.False(t, tr.RemoveString("000000000000000"))
	assert.False(t, tr.RemoveString(""))
	assert.False(t, tr.RemoveString("100"))
	assert.False(t, tr.RemoveString("100x"))
	assert.Empty(t, cmp.Diff(before, dumpString(tr)))
	assert.Equal(t, 100, tr.NumEntries())

	// a valueless interior node
	tr2 := x_trie.New[int]()
	require.NoError(t, tr2.InsertString("abc", 1))
	assert.False(t, tr2.RemoveString("ab"))
	assert.Equal(t, 4, tr2.NumNodes())
}

func TestRemove_CascadesToRoot(t *testing.T) {
	heap := x_alloc.NewHeap()
	tr := x_trie.New[string](x_trie.WithAllocator(heap))
	require.NoError(t, tr.InsertString("abcdef", "v"))
	assert.Equal(t, 7, tr.NumNodes())

	assert.True(t, tr.RemoveString("abcdef"))
	assert.Equal(t, 1, tr.NumNodes())
	assert.Zero(t, heap.Stats().Live)
	assert.NoError(t, x_trie.Verify(tr))
}

func TestRemove_StopsAtBranch(t *testing.T) {
	tr := x_trie.New[string]()
	require.NoError(t, tr.InsertString("abcX", "x"))
	require.NoError(t, tr.InsertString("abcYZ", "yz"))
	assert.Equal(t, 7, tr.NumNodes())

	assert.True(t, tr.RemoveString("abcYZ"))
	assert.Equal(t, 5, tr.NumNodes())
	v, ok := tr.LookupString("abcX")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.NoError(t, x_trie.Verify(tr))
}

func TestNoInterference(t *testing.T) {
	tr := decimalTrie(t, 2000)
	require.NoError(t, tr.InsertString("12345678", 1))
	assert.True(t, tr.RemoveString("12345678"))
	assert.True(t, tr.RemoveString("1234"))
	for i := 0; i < 2000; i++ {
		if i == 1234 {
			continue
		}
		v, ok := tr.LookupString(strconv.Itoa(i))
		require.True(t, ok, "key %d", i)
		require.Equal(t, i, v)
	}
	assert.NoError(t, x_trie.Verify(tr))
}

// ----------------------------------------------------
// Empty key and shared prefixes
// ----------------------------------------------------

func TestEmptyKey(t *testing.T) {
	heap := x_alloc.NewHeap()
	tr := x_trie.New[string](x_trie.WithAllocator(heap))

	require.NoError(t, tr.InsertString("", "buf"))
	assert.Equal(t, 1, tr.NumEntries())
	assert.Equal(t, 1, tr.NumNodes())
	assert.Zero(t, heap.Stats().Allocs)

	v, ok := tr.LookupString("")
	assert.True(t, ok)
	assert.Equal(t, "buf", v)

	assert.True(t, tr.RemoveString(""))
	assert.Equal(t, 0, tr.NumEntries())
	_, ok = tr.LookupString("")
	assert.False(t, ok)
	assert.Equal(t, 1, tr.NumNodes())
}

func TestEmptyKey_WithChildren(t *testing.T) {
	tr := x_trie.New[int]()
	require.NoError(t, tr.InsertString("", 1))
	require.NoError(t, tr.InsertString("a", 2))
	assert.True(t, tr.RemoveString(""))
	v, ok := tr.LookupString("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.NoError(t, x_trie.Verify(tr))
}

func TestSharedPrefix_HelloHell(t *testing.T) {
	tr := x_trie.New[string]()
	require.NoError(t, tr.InsertString("hello", "A"))
	require.NoError(t, tr.InsertString("hell", "B"))
	assert.Equal(t, 6, tr.NumNodes())

	v, _ := tr.LookupString("hello")
	assert.Equal(t, "A", v)
	v, _ = tr.LookupString("hell")
	assert.Equal(t, "B", v)

	assert.True(t, tr.RemoveString("hello"))
	v, ok := tr.LookupString("hell")
	assert.True(t, ok)
	assert.Equal(t, "B", v)
	assert.Equal(t, 5, tr.NumNodes())
	assert.NoError(t, x_trie.Verify(tr))
}

// ----------------------------------------------------
// Large workloads
// ----------------------------------------------------

func TestLookup_HundredThousand(t *testing.T) {
	tr := decimalTrie(t, constant.DefaultKeys)
	assert.Equal(t, constant.DefaultKeys, tr.NumEntries())

	_, ok := tr.LookupString("000000000000000")
	assert.False(t, ok)
	_, ok = tr.LookupString("")
	assert.False(t, ok)

	v, ok := tr.LookupString("54321")
	assert.True(t, ok)
	assert.Equal(t, 54321, v)

	for i := 0; i < constant.DefaultKeys; i++ {
		v, ok := tr.LookupString(strconv.Itoa(i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	assert.NoError(t, x_trie.Verify(tr))
}

func TestRemove_HundredThousandInOrder(t *testing.T) {
	heap := x_alloc.NewHeap()
	tr := decimalTrie(t, constant.DefaultKeys, x_trie.WithAllocator(heap))

	assert.False(t, tr.RemoveString("000000000000000"))
	assert.False(t, tr.RemoveString(""))

	entries := tr.NumEntries()
	require.Equal(t, constant.DefaultKeys, entries)
	for i := 0; i < constant.DefaultKeys; i++ {
		require.True(t, tr.RemoveString(strconv.Itoa(i)))
		entries--
		require.Equal(t, entries, tr.NumEntries())
	}
	assert.Equal(t, 0, tr.NumEntries())
	assert.Equal(t, 1, tr.NumNodes())
	assert.Zero(t, heap.Stats().Live)
}

// ----------------------------------------------------
// Child tables
// ----------------------------------------------------

func TestTables_GrowAndShrink(t *testing.T) {
	tr := x_trie.New[int]()
	steps := []struct {
		n    int
		kind string
	}{
		{1, "T4"}, {4, "T4"}, {5, "T16"}, {16, "T16"}, {17, "T48"}, {48, "T48"}, {49, "T256"}, {256, "T256"},
	}
	added := 0
	for _, s := range steps {
		for ; added < s.n; added++ {
			require.NoError(t, tr.Insert([]byte{byte(added)}, added))
		}
		assert.Equal(t, s.kind, x_trie.TableKinds(tr, "")[0], "after %d children", s.n)
	}
	assert.NoError(t, x_trie.Verify(tr))

	for i := 255; i >= 0; i-- {
		require.True(t, tr.Remove([]byte{byte(i)}))
		switch i {
		case 48:
			assert.Equal(t, "T48", x_trie.TableKinds(tr, "")[0])
		case 16:
			assert.Equal(t, "T16", x_trie.TableKinds(tr, "")[0])
		case 4:
			assert.Equal(t, "T4", x_trie.TableKinds(tr, "")[0])
		case 0:
			assert.Equal(t, "-", x_trie.TableKinds(tr, "")[0])
		}
		require.NoError(t, x_trie.Verify(tr))
	}
	assert.Equal(t, 1, tr.NumNodes())
}

func TestTables_RemoveFromMiddle(t *testing.T) {
	tr := x_trie.New[int]()
	for i := 0; i < 256; i++ {
		require.NoError(t, tr.Insert([]byte{'k', byte(i)}, i))
	}
	for i := 0; i < 256; i += 3 {
		require.True(t, tr.Remove([]byte{'k', byte(i)}))
	}
	for i := 0; i < 256; i++ {
		_, ok := tr.Lookup([]byte{'k', byte(i)})
		assert.Equal(t, i%3 != 0, ok, "child %d", i)
	}
	assert.NoError(t, x_trie.Verify(tr))
}

// ----------------------------------------------------
// Dump
// ----------------------------------------------------

func TestDump(t *testing.T) {
	tr := x_trie.New[string]()
	require.NoError(t, tr.InsertString("ab", "x"))
	require.NoError(t, tr.InsertString("", "root"))

	out := dumpString(tr)
	want := "TRIE entries=2 nodes=3\n" +
		"-- ROOT T4(1) = root\n" +
		"|__ \"a\" T4(1)\n" +
		"  |__ \"b\" = x\n"
	assert.Empty(t, cmp.Diff(want, out))
}
