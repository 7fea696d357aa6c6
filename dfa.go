package fsm

import "slices"

// DFA A deterministic finite acceptor over the state graph reachable from
// initial. A DFA need not be complete: a missing transition simply makes
// Forward fail and Accept reject.
type DFA[S comparable] struct {
	initial  *DFAState[S]
	current  *DFAState[S]
	alphabet []S
}

// NewDFA Wraps an already built state graph.
func NewDFA[S comparable](initial *DFAState[S], alphabet []S) *DFA[S] {
	return &DFA[S]{
		initial:  initial,
		current:  initial,
		alphabet: alphabet,
	}
}

// Initial Returns the start state of the wrapped graph.
func (d *DFA[S]) Initial() *DFAState[S] {
	return d.initial
}

// Current Returns the state the cursor points at.
func (d *DFA[S]) Current() *DFAState[S] {
	return d.current
}

// Alphabet Returns a copy of the alphabet.
func (d *DFA[S]) Alphabet() []S {
	return slices.Clone(d.alphabet)
}

// Forward Performs one deterministic step and returns the new current state.
// The cursor does not move when the current state has no transition for
// symbol; the lookup failure is returned as is.
func (d *DFA[S]) Forward(symbol S) (*DFAState[S], error) {
	target, err := d.current.Transition(symbol)
	if err != nil {
		return nil, err
	}
	d.current = target
	return target, nil
}

// Reset Moves the cursor back to the initial state.
func (d *DFA[S]) Reset() {
	d.current = d.initial
}

// Accept Walks seq from the current state and reports whether it ends in an
// accept state. Any symbol without a transition rejects. The cursor is reset
// to the initial state before returning, so consecutive Accept calls are
// independent.
func (d *DFA[S]) Accept(seq []S) bool {
	defer d.Reset()

	for _, symbol := range seq {
		target, err := d.current.Transition(symbol)
		if err != nil {
			return false
		}
		d.current = target
	}
	return d.current.Accepting
}

// States Returns every state reachable from the initial state. Cycles are
// handled by tracking visited state names; the order is unspecified.
func (d *DFA[S]) States() []*DFAState[S] {
	var states []*DFAState[S]
	visited := make(map[string]struct{})

	var visit func(s *DFAState[S])
	visit = func(s *DFAState[S]) {
		if _, ok := visited[s.Name]; ok {
			return
		}
		visited[s.Name] = struct{}{}
		states = append(states, s)
		for _, target := range s.transitions {
			visit(target)
		}
	}
	visit(d.initial)
	return states
}

// IsComplete Reports whether every reachable state has a transition for
// every symbol of the alphabet.
func (d *DFA[S]) IsComplete() bool {
	for _, state := range d.States() {
		for _, symbol := range d.alphabet {
			if _, ok := state.transitions[symbol]; !ok {
				return false
			}
		}
	}
	return true
}

// Walk Returns the depth-first traversal of the state graph as a flat record
// sequence, for debugging and rendering.
func (d *DFA[S]) Walk() []WalkEvent[S] {
	return walkGraph[S](d.initial)
}

func (d *DFA[S]) String() string {
	return renderWalk(d.Walk())
}

// clone Builds a deep, independent copy of the DFA. The cursor of the copy
// points at the copied counterpart of the original cursor.
func (d *DFA[S]) clone() *DFA[S] {
	clones := make(map[string]*DFAState[S])

	var copyState func(s *DFAState[S]) *DFAState[S]
	copyState = func(s *DFAState[S]) *DFAState[S] {
		if c, ok := clones[s.Name]; ok {
			return c
		}
		c := NewDFAState[S](s.Name)
		c.Initial = s.Initial
		c.Accepting = s.Accepting
		clones[s.Name] = c
		for symbol, target := range s.transitions {
			c.transitions[symbol] = copyState(target)
		}
		return c
	}

	out := NewDFA(copyState(d.initial), slices.Clone(d.alphabet))
	if c, ok := clones[d.current.Name]; ok {
		out.current = c
	}
	return out
}
