// file:trie/pkg/x_trie/value.go
package x_trie

// Value is a lookup result: either Present with a stored value, or absent.
// The zero Value is absent, so no stored T is reserved as a sentinel.
type Value[T any] struct {
	Value   T
	Present bool
}

// Some wraps a present value.
func Some[T any](v T) Value[T] { return Value[T]{Value: v, Present: true} }

// Absent returns the absent result.
func Absent[T any]() Value[T] { return Value[T]{} }

// Get unpacks the result in comma-ok form.
func (v Value[T]) Get() (T, bool) { return v.Value, v.Present }

// OrElse returns the stored value or def when absent.
func (v Value[T]) OrElse(def T) T {
	if v.Present {
		return v.Value
	}
	return def
}
