package fsm

// Complete Returns a complete DFA accepting the same language as d: every
// reachable state of the result has a transition for every alphabet symbol.
// The input is never mutated. When d is already complete the result is a
// plain deep copy; otherwise the copy gains one non-accepting sink state
// that self-loops on the whole alphabet and absorbs every missing
// transition.
func Complete[S comparable](d *DFA[S]) *DFA[S] {
	out := d.clone()
	if out.IsComplete() {
		return out
	}

	states := out.States()
	sink := NewDFAState[S](sinkName(states))
	for _, symbol := range out.alphabet {
		sink.AddTransition(symbol, sink)
	}

	for _, state := range states {
		for _, symbol := range out.alphabet {
			if _, ok := state.transitions[symbol]; !ok {
				state.AddTransition(symbol, sink)
			}
		}
	}
	return out
}

// sinkName Returns "q'", primed further until it collides with no existing
// state name. Names are graph identity, so the sink must not alias a state
// already present.
func sinkName[S comparable](states []*DFAState[S]) string {
	taken := make(map[string]struct{}, len(states))
	for _, s := range states {
		taken[s.Name] = struct{}{}
	}
	name := "q'"
	for {
		if _, ok := taken[name]; !ok {
			return name
		}
		name += "'"
	}
}
