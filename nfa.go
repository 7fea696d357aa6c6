package fsm

import (
	"fmt"
	"slices"
)

// NFA A nondeterministic finite acceptor over the state graph reachable from
// initial. The epsilon symbol marks non-consuming transitions and must not be
// a member of the alphabet.
type NFA[S comparable] struct {
	initial  *NFAState[S]
	current  *NFAState[S]
	alphabet []S
	epsilon  S
}

// NewNFA Wraps an already built state graph. Fails when the epsilon symbol
// is a member of the alphabet.
func NewNFA[S comparable](initial *NFAState[S], alphabet []S, epsilon S) (*NFA[S], error) {
	if slices.Contains(alphabet, epsilon) {
		return nil, fmt.Errorf("epsilon symbol %v must not be in alphabet", epsilon)
	}
	return &NFA[S]{
		initial:  initial,
		current:  initial,
		alphabet: alphabet,
		epsilon:  epsilon,
	}, nil
}

// Initial Returns the start state of the wrapped graph.
func (n *NFA[S]) Initial() *NFAState[S] {
	return n.initial
}

// Alphabet Returns a copy of the alphabet.
func (n *NFA[S]) Alphabet() []S {
	return slices.Clone(n.alphabet)
}

// Epsilon Returns the non-consuming transition symbol.
func (n *NFA[S]) Epsilon() S {
	return n.epsilon
}

// Reset Moves the cursor back to the initial state.
func (n *NFA[S]) Reset() {
	n.current = n.initial
}

// Accept Reports whether the acceptor accepts seq, searching exhaustively
// over consuming moves on the head symbol and non-consuming epsilon moves.
// The empty sequence is accepted iff the epsilon closure of the initial
// state contains an accept state, matching what Determinize builds.
//
// Each input position tracks the states already explored without consuming,
// so cyclic epsilon transitions terminate: within one position every state of
// the epsilon closure is expanded at most once.
func (n *NFA[S]) Accept(seq []S) bool {
	return n.accept(seq, n.initial, make(map[string]struct{}))
}

func (n *NFA[S]) accept(seq []S, node *NFAState[S], explored map[string]struct{}) bool {
	if _, ok := explored[node.Name]; ok {
		return false
	}
	explored[node.Name] = struct{}{}

	if len(seq) == 0 && node.Accepting {
		return true
	}

	if len(seq) > 0 {
		for _, target := range node.Transition(seq[0]) {
			// Consuming a symbol starts a fresh position.
			if n.accept(seq[1:], target, make(map[string]struct{})) {
				return true
			}
		}
	}

	for _, target := range node.Transition(n.epsilon) {
		if n.accept(seq, target, explored) {
			return true
		}
	}
	return false
}

// ToDFA Builds an independent deterministic acceptor for the same language
// via subset construction.
func (n *NFA[S]) ToDFA() *DFA[S] {
	return Determinize(n)
}

// Walk Returns the depth-first traversal of the state graph as a flat record
// sequence, for debugging and rendering.
func (n *NFA[S]) Walk() []WalkEvent[S] {
	return walkGraph[S](n.initial)
}

func (n *NFA[S]) String() string {
	return renderWalk(n.Walk())
}
