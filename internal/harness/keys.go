// file: trie/internal/harness/keys.go
package harness

import (
	"fmt"
	"strconv"

	"github.com/nats-io/nuid"
	"github.com/rskv-p/trie/constant"
)

// Keys returns n distinct keys. Sequential keys are the decimal forms of
// 0..n-1; random keys are nuid strings.
func Keys(n int, mode string) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: keys(%d)", constant.ErrInvalidConfig, n)
	}
	keys := make([]string, n)
	switch mode {
	case constant.KeyModeSeq, "":
		for i := range keys {
			keys[i] = strconv.Itoa(i)
		}
	case constant.KeyModeRandom:
		gen := nuid.New()
		seen := make(map[string]struct{}, n)
		for i := 0; i < n; {
			k := gen.Next()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys[i] = k
			i++
		}
	default:
		return nil, fmt.Errorf("%w: key_mode(%q)", constant.ErrInvalidConfig, mode)
	}
	return keys, nil
}
