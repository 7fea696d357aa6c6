package fsm

import "slices"

// MealyMachine A deterministic transducer whose output is attached to
// transitions: each step returns the output computed by the edge taken, or
// nil for edges with no output function.
type MealyMachine[S comparable] struct {
	initial  *MealyState[S]
	current  *MealyState[S]
	alphabet []S
}

// NewMealyMachine Wraps an already built state graph.
func NewMealyMachine[S comparable](initial *MealyState[S], alphabet []S) *MealyMachine[S] {
	return &MealyMachine[S]{
		initial:  initial,
		current:  initial,
		alphabet: alphabet,
	}
}

// Current Returns the state the cursor points at.
func (m *MealyMachine[S]) Current() *MealyState[S] {
	return m.current
}

// Alphabet Returns a copy of the alphabet.
func (m *MealyMachine[S]) Alphabet() []S {
	return slices.Clone(m.alphabet)
}

// Forward Performs one deterministic step and returns the output produced by
// the edge taken, or nil when the edge has no output function. The cursor
// does not move when the current state has no transition for symbol.
func (m *MealyMachine[S]) Forward(symbol S) (any, error) {
	target, out, err := m.current.Transition(symbol)
	if err != nil {
		return nil, err
	}
	m.current = target
	return out, nil
}

// Process Drives Forward once per symbol of seq, in order. Every non-nil
// output is handed to observe together with its 1-based input position.
// After the whole sequence has been consumed the cursor is reset to the
// initial state, so outputs must be observed during the walk. A symbol
// without a transition stops the walk and returns the lookup failure with
// the cursor left in place.
func (m *MealyMachine[S]) Process(seq []S, observe func(pos int, output any)) error {
	for pos, symbol := range seq {
		out, err := m.Forward(symbol)
		if err != nil {
			return err
		}
		if out != nil && observe != nil {
			observe(pos+1, out)
		}
	}
	m.Reset()
	return nil
}

// Reset Moves the cursor back to the initial state.
func (m *MealyMachine[S]) Reset() {
	m.current = m.initial
}

// States Returns every state reachable from the initial state. Cycles are
// handled by tracking visited state names; the order is unspecified.
func (m *MealyMachine[S]) States() []*MealyState[S] {
	var states []*MealyState[S]
	visited := make(map[string]struct{})

	var visit func(s *MealyState[S])
	visit = func(s *MealyState[S]) {
		if _, ok := visited[s.Name]; ok {
			return
		}
		visited[s.Name] = struct{}{}
		states = append(states, s)
		for _, edge := range s.transitions {
			visit(edge.target)
		}
	}
	visit(m.initial)
	return states
}

// Walk Returns the depth-first traversal of the state graph as a flat record
// sequence, for debugging and rendering.
func (m *MealyMachine[S]) Walk() []WalkEvent[S] {
	return walkGraph[S](m.initial)
}

func (m *MealyMachine[S]) String() string {
	return renderWalk(m.Walk())
}
