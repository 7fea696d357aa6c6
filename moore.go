package fsm

import "slices"

// MooreMachine A deterministic transducer whose output is attached to
// states: each step returns the output of the destination state, independent
// of the edge taken.
type MooreMachine[S comparable] struct {
	initial  *MooreState[S]
	current  *MooreState[S]
	alphabet []S
}

// NewMooreMachine Wraps an already built state graph.
func NewMooreMachine[S comparable](initial *MooreState[S], alphabet []S) *MooreMachine[S] {
	return &MooreMachine[S]{
		initial:  initial,
		current:  initial,
		alphabet: alphabet,
	}
}

// Current Returns the state the cursor points at.
func (m *MooreMachine[S]) Current() *MooreState[S] {
	return m.current
}

// Alphabet Returns a copy of the alphabet.
func (m *MooreMachine[S]) Alphabet() []S {
	return slices.Clone(m.alphabet)
}

// Forward Performs one deterministic step and returns the output of the
// destination state. The cursor does not move when the current state has no
// transition for symbol.
func (m *MooreMachine[S]) Forward(symbol S) (any, error) {
	target, err := m.current.Transition(symbol)
	if err != nil {
		return nil, err
	}
	m.current = target
	return target.Output, nil
}

// Reset Moves the cursor back to the initial state.
func (m *MooreMachine[S]) Reset() {
	m.current = m.initial
}

// Walk Returns the depth-first traversal of the state graph as a flat record
// sequence, for debugging and rendering.
func (m *MooreMachine[S]) Walk() []WalkEvent[S] {
	return walkGraph[S](m.initial)
}

func (m *MooreMachine[S]) String() string {
	return renderWalk(m.Walk())
}
