// file: trie/recover/recover.go
package recover

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rskv-p/trie/pkg/x_log"
)

const (
	tagComponent = "component"
	tagFunction  = "function"
	tagContext   = "context"
	tagLabel     = "label"
	tagStack     = "stack"
)

// ----------------------------------------------------
// Global panic hook (optional)
// ----------------------------------------------------

var OnPanic func(component, function string, recovered any)
var custom *zerolog.Logger

// SetLogger replaces the logger used for panic reports. By default they go
// to the global logger under module "recover".
func SetLogger(l zerolog.Logger) {
	custom = &l
}

func logger() zerolog.Logger {
	if custom != nil {
		return *custom
	}
	return x_log.New("recover")
}

// ----------------------------------------------------
// Panic recovery functions
// ----------------------------------------------------

// RecoverWithContext must be deferred directly. It captures and logs a
// panic with metadata and optional data.
func RecoverWithContext(component, function string, data any) {
	if r := recover(); r != nil {
		RecoverExplicit(component, function, r, data)
	}
}

// RecoverExplicit logs an already recovered panic with metadata and context.
func RecoverExplicit(component, function string, recovered any, data any) {
	if recovered == nil {
		return
	}

	log := logger()
	ev := log.Error().
		Str(tagComponent, component).
		Str(tagFunction, function).
		Str(tagStack, string(debug.Stack()))
	if data != nil {
		ev = ev.Str(tagContext, fmt.Sprintf("%+v", data))
	}
	ev.Msgf("panic: %v", recovered)

	if OnPanic != nil {
		OnPanic(component, function, recovered)
	}
}

// Safe runs fn, recovering and logging any panic under label.
func Safe(label string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log := logger()
			log.Error().Str(tagLabel, label).Str(tagStack, string(debug.Stack())).Msgf("panic: %v", r)
			if OnPanic != nil {
				OnPanic("Safe", label, r)
			}
		}
	}()
	fn()
}

// RecoverFunc runs fn and turns a panic into an error.
func RecoverFunc(label string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			RecoverExplicit("RecoverFunc", label, r, nil)
			err = fmt.Errorf("%s: panic: %v", label, r)
		}
	}()
	return fn()
}

// ----------------------------------------------------
// Universal wrapper
// ----------------------------------------------------

// RecoverableFunc is a context-aware function that may panic.
type RecoverableFunc func(ctx context.Context) error

// WrapRecover wraps a context-aware function with panic protection.
func WrapRecover(component, function string, f RecoverableFunc) RecoverableFunc {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				RecoverExplicit(component, function, r, nil)
				err = fmt.Errorf("panic recovered in %s.%s: %v", component, function, r)
			}
		}()
		return f(ctx)
	}
}
