package x_trie_test

import (
	"bytes"
	"strconv"
	"sync"
	"testing"

	"github.com/rskv-p/trie/pkg/x_trie"
	"github.com/stretchr/testify/assert"
)

func TestLocked_ConcurrentWriters(t *testing.T) {
	l := x_trie.NewLocked[int]()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := []byte(strconv.Itoa(w*1000 + i))
				assert.NoError(t, l.Insert(k, i))
				_, _ = l.Lookup(k)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 8*500, l.NumEntries())

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i += 2 {
				assert.True(t, l.Remove([]byte(strconv.Itoa(w*1000+i))))
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 8*250, l.NumEntries())
	assert.True(t, l.Get([]byte("1001")).Present)
	assert.False(t, l.Get([]byte("1000")).Present)

	var buf bytes.Buffer
	l.Dump(&buf)
	assert.Contains(t, buf.String(), "entries=2000")

	l.Free()
	assert.Equal(t, 0, l.NumEntries())
}
