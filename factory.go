package fsm

// MakeEmpty
// Returns a new DFA over the given alphabet with the empty language.
func MakeEmpty[S comparable](alphabet []S) *DFA[S] {
	return NewDFA(NewDFAState[S]("q0", Initial()), alphabet)
}

// MakeEmptyString
// Returns a new DFA over the given alphabet that accepts only the empty
// sequence.
func MakeEmptyString[S comparable](alphabet []S) *DFA[S] {
	return NewDFA(NewDFAState[S]("q0", Initial(), Accepting()), alphabet)
}

// MakeAnyString
// Returns a new complete DFA that accepts every sequence over the given
// alphabet.
func MakeAnyString[S comparable](alphabet []S) *DFA[S] {
	q0 := NewDFAState[S]("q0", Initial(), Accepting())
	for _, symbol := range alphabet {
		q0.AddTransition(symbol, q0)
	}
	return NewDFA(q0, alphabet)
}
