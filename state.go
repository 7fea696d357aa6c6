// Package fsm models nondeterministic and deterministic finite acceptors and
// Moore/Mealy transducers over an arbitrary comparable symbol type, including
// subset-construction determinization and DFA completion.
package fsm

import (
	"errors"
	"fmt"
)

// ErrNoTransition is returned when a deterministic state has no outgoing
// transition for the requested symbol.
var ErrNoTransition = errors.New("no transition for symbol")

type stateOptions struct {
	initial   bool
	accepting bool
}

// StateOption configures flags on a newly created state.
type StateOption func(*stateOptions)

// Initial marks the state as the start state of its graph. At most one state
// per graph should carry this flag; the builder is responsible for that.
func Initial() StateOption {
	return func(o *stateOptions) { o.initial = true }
}

// Accepting marks the state as an accept state.
func Accepting() StateOption {
	return func(o *stateOptions) { o.accepting = true }
}

// NFAState A nondeterministic state: each symbol maps to a set of successor
// states, and the graph may carry epsilon transitions. Two states with the
// same name are treated as the same state by every traversal in this package.
type NFAState[S comparable] struct {
	Name      string
	Initial   bool
	Accepting bool

	transitions map[S]map[*NFAState[S]]struct{}
}

func NewNFAState[S comparable](name string, opts ...StateOption) *NFAState[S] {
	var o stateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &NFAState[S]{
		Name:        name,
		Initial:     o.initial,
		Accepting:   o.accepting,
		transitions: make(map[S]map[*NFAState[S]]struct{}),
	}
}

// AddTransition Add the given targets to the successor set for symbol.
// Repeated calls union into the existing set; nothing is ever replaced.
func (s *NFAState[S]) AddTransition(symbol S, targets ...*NFAState[S]) {
	set, ok := s.transitions[symbol]
	if !ok {
		set = make(map[*NFAState[S]]struct{})
		s.transitions[symbol] = set
	}
	for _, target := range targets {
		set[target] = struct{}{}
	}
}

// Transition Returns the successor set for symbol, in unspecified order.
// Unknown symbols, the epsilon symbol included, yield an empty set and
// never an error.
func (s *NFAState[S]) Transition(symbol S) []*NFAState[S] {
	set := s.transitions[symbol]
	targets := make([]*NFAState[S], 0, len(set))
	for target := range set {
		targets = append(targets, target)
	}
	return targets
}

func (s *NFAState[S]) String() string {
	return decorateState(s.Name, s.Initial, s.Accepting)
}

// DFAState A deterministic state: each symbol maps to exactly one successor.
type DFAState[S comparable] struct {
	Name      string
	Initial   bool
	Accepting bool

	transitions map[S]*DFAState[S]
}

func NewDFAState[S comparable](name string, opts ...StateOption) *DFAState[S] {
	var o stateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &DFAState[S]{
		Name:        name,
		Initial:     o.initial,
		Accepting:   o.accepting,
		transitions: make(map[S]*DFAState[S]),
	}
}

// AddTransition Set the successor for symbol. The last write wins.
func (s *DFAState[S]) AddTransition(symbol S, target *DFAState[S]) {
	s.transitions[symbol] = target
}

// Transition Returns the successor for symbol, or ErrNoTransition when the
// state has no mapping for it.
func (s *DFAState[S]) Transition(symbol S) (*DFAState[S], error) {
	target, ok := s.transitions[symbol]
	if !ok {
		return nil, fmt.Errorf("state %s: %w: %v", s.Name, ErrNoTransition, symbol)
	}
	return target, nil
}

func (s *DFAState[S]) String() string {
	return decorateState(s.Name, s.Initial, s.Accepting)
}

// MooreState A deterministic state carrying an immutable output value; the
// output of a Moore machine step depends only on the destination state.
type MooreState[S comparable] struct {
	Name      string
	Initial   bool
	Accepting bool
	Output    any

	transitions map[S]*MooreState[S]
}

func NewMooreState[S comparable](name string, output any, opts ...StateOption) *MooreState[S] {
	var o stateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &MooreState[S]{
		Name:        name,
		Initial:     o.initial,
		Accepting:   o.accepting,
		Output:      output,
		transitions: make(map[S]*MooreState[S]),
	}
}

// AddTransition Set the successor for symbol. The last write wins.
func (s *MooreState[S]) AddTransition(symbol S, target *MooreState[S]) {
	s.transitions[symbol] = target
}

// Transition Returns the successor for symbol, or ErrNoTransition when the
// state has no mapping for it.
func (s *MooreState[S]) Transition(symbol S) (*MooreState[S], error) {
	target, ok := s.transitions[symbol]
	if !ok {
		return nil, fmt.Errorf("state %s: %w: %v", s.Name, ErrNoTransition, symbol)
	}
	return target, nil
}

func (s *MooreState[S]) String() string {
	return decorateState(s.Name, s.Initial, s.Accepting)
}

// Output A named output function bound to a Mealy edge. The name is the key
// the function is persisted under; see Registry. An Output with an empty
// name still works for in-memory machines but cannot be saved.
type Output[S comparable] struct {
	Name string
	Fn   func(symbol S) any
}

// NewOutput Binds fn under the given registry key.
func NewOutput[S comparable](name string, fn func(symbol S) any) *Output[S] {
	return &Output[S]{Name: name, Fn: fn}
}

type mealyEdge[S comparable] struct {
	target *MealyState[S]
	output *Output[S]
}

// MealyState A deterministic state whose edges may carry an output function;
// the output of a Mealy machine step depends on the transition taken.
type MealyState[S comparable] struct {
	Name      string
	Initial   bool
	Accepting bool

	transitions map[S]mealyEdge[S]
}

func NewMealyState[S comparable](name string, opts ...StateOption) *MealyState[S] {
	var o stateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &MealyState[S]{
		Name:        name,
		Initial:     o.initial,
		Accepting:   o.accepting,
		transitions: make(map[S]mealyEdge[S]),
	}
}

// AddTransition Set the successor and output for symbol. Pass a nil output
// for an edge producing no output. The last write wins.
func (s *MealyState[S]) AddTransition(symbol S, target *MealyState[S], output *Output[S]) {
	s.transitions[symbol] = mealyEdge[S]{target: target, output: output}
}

// Transition Returns the successor for symbol together with the output
// computed by the edge's function, or nil when the edge has none. Unknown
// symbols yield ErrNoTransition.
func (s *MealyState[S]) Transition(symbol S) (*MealyState[S], any, error) {
	edge, ok := s.transitions[symbol]
	if !ok {
		return nil, nil, fmt.Errorf("state %s: %w: %v", s.Name, ErrNoTransition, symbol)
	}
	var out any
	if edge.output != nil && edge.output.Fn != nil {
		out = edge.output.Fn(symbol)
	}
	return edge.target, out, nil
}

func (s *MealyState[S]) String() string {
	return decorateState(s.Name, s.Initial, s.Accepting)
}

func decorateState(name string, initial, accepting bool) string {
	label := name
	if initial {
		label = "> " + label
	}
	if accepting {
		label = label + " *"
	}
	return label
}
