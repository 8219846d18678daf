// file:trie/pkg/x_trie/options.go
package x_trie

import (
	"github.com/rs/zerolog"
	"github.com/rskv-p/trie/pkg/x_alloc"
)

// Option configures a Trie at construction.
type Option func(*options)

type options struct {
	alloc x_alloc.Allocator
	log   zerolog.Logger
}

func defaultOptions() options {
	return options{log: zerolog.Nop()}
}

// WithAllocator sets the allocator charged for every non-root node.
// A nil allocator is ignored.
func WithAllocator(a x_alloc.Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithLogger sets the logger used for rollback and teardown events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}
