package fsm

import (
	"errors"
	"fmt"
)

// ErrUnknownOutput is returned when an output key has no registered function.
var ErrUnknownOutput = errors.New("output function not registered")

// Registry A table of named Mealy output functions. Persisted machines store
// only the key of each edge's output; loading resolves the keys through a
// caller-supplied registry, so no executable code ever crosses the
// serialization boundary.
type Registry[S comparable] struct {
	funcs map[string]func(symbol S) any
}

func NewRegistry[S comparable]() *Registry[S] {
	return &Registry[S]{funcs: make(map[string]func(symbol S) any)}
}

// Register Adds fn under name. Empty names and duplicate registrations fail.
func (r *Registry[S]) Register(name string, fn func(symbol S) any) error {
	if name == "" {
		return errors.New("output function name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("output function %q must not be nil", name)
	}
	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("output function %q already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

// Output Returns the registered function bound as a named edge output, or
// ErrUnknownOutput for keys never registered.
func (r *Registry[S]) Output(name string) (*Output[S], error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, name)
	}
	return &Output[S]{Name: name, Fn: fn}, nil
}
