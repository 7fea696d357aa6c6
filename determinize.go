package fsm

import (
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Determinize Builds a DFA accepting the same language as the NFA via powerset
// construction. The input is never mutated; the result shares no states with
// it. Worst case the number of DFA states is exponential in the number of NFA
// states, but the worklist is bounded by the finite subset space and always
// terminates. Worklist order only affects construction order, not the result.
//
// Subset states are named by the sorted, "+"-joined names of their members,
// so a subset reached along different paths always collapses to the same DFA
// state. A subset is accepting iff any member is. When no member has a move
// on some symbol the DFA state simply lacks that transition, so the result
// can be incomplete; see Complete.
func Determinize[S comparable](n *NFA[S]) *DFA[S] {
	d := newDeterminizer(n)

	start := d.closure(d.singleton(n.initial))
	dq0 := NewDFAState[S](d.subsetName(start), Initial())
	dq0.Accepting = d.anyAccepting(start)

	built := map[string]*DFAState[S]{dq0.Name: dq0}
	worklist := []subset[S]{{members: start, state: dq0}}

	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, symbol := range n.alphabet {
			q := d.closure(d.move(cur.members, symbol))
			if q.Count() == 0 {
				continue
			}
			name := d.subsetName(q)
			target, ok := built[name]
			if !ok {
				target = NewDFAState[S](name)
				target.Accepting = d.anyAccepting(q)
				built[name] = target
				worklist = append(worklist, subset[S]{members: q, state: target})
			}
			cur.state.AddTransition(symbol, target)
		}
	}

	return NewDFA(dq0, slices.Clone(n.alphabet))
}

// subset A set of NFA states paired with the DFA state built for it, queued
// until its outgoing transitions have been computed.
type subset[S comparable] struct {
	members *bitset.BitSet
	state   *DFAState[S]
}

// determinizer Interns every reachable NFA state into a dense integer arena
// so subsets can be represented as bitsets during construction.
type determinizer[S comparable] struct {
	nfa   *NFA[S]
	arena []*NFAState[S]
	index map[string]uint
}

func newDeterminizer[S comparable](n *NFA[S]) *determinizer[S] {
	d := &determinizer[S]{
		nfa:   n,
		index: make(map[string]uint),
	}
	d.intern(n.initial)
	return d
}

func (d *determinizer[S]) intern(s *NFAState[S]) {
	if _, ok := d.index[s.Name]; ok {
		return
	}
	d.index[s.Name] = uint(len(d.arena))
	d.arena = append(d.arena, s)
	for _, set := range s.transitions {
		for target := range set {
			d.intern(target)
		}
	}
}

func (d *determinizer[S]) singleton(s *NFAState[S]) *bitset.BitSet {
	bits := bitset.New(uint(len(d.arena)))
	bits.Set(d.index[s.Name])
	return bits
}

// closure Extends bits to the smallest superset closed under epsilon moves.
func (d *determinizer[S]) closure(bits *bitset.BitSet) *bitset.BitSet {
	worklist := make([]uint, 0, bits.Count())
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		worklist = append(worklist, i)
	}
	for len(worklist) > 0 {
		i := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, target := range d.arena[i].Transition(d.nfa.epsilon) {
			j := d.index[target.Name]
			if !bits.Test(j) {
				bits.Set(j)
				worklist = append(worklist, j)
			}
		}
	}
	return bits
}

// move Returns the union of symbol successors of every member of bits, with
// no epsilon closure applied.
func (d *determinizer[S]) move(bits *bitset.BitSet, symbol S) *bitset.BitSet {
	out := bitset.New(uint(len(d.arena)))
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		for _, target := range d.arena[i].Transition(symbol) {
			out.Set(d.index[target.Name])
		}
	}
	return out
}

// subsetName Derives the canonical DFA state name for a subset: member names
// sorted lexicographically and joined with "+". Identical subsets always
// produce identical names regardless of discovery order.
func (d *determinizer[S]) subsetName(bits *bitset.BitSet) string {
	names := make([]string, 0, bits.Count())
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		names = append(names, d.arena[i].Name)
	}
	slices.Sort(names)
	return strings.Join(names, "+")
}

func (d *determinizer[S]) anyAccepting(bits *bitset.BitSet) bool {
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		if d.arena[i].Accepting {
			return true
		}
	}
	return false
}
