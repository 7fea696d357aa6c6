package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// abaDFA builds the four state DFA accepting exactly ab*a over {a, b}.
func abaDFA(t *testing.T) (*DFA[rune], []*DFAState[rune]) {
	t.Helper()

	q0 := NewDFAState[rune]("q0", Initial())
	q1 := NewDFAState[rune]("q1")
	q2 := NewDFAState[rune]("q2")
	q3 := NewDFAState[rune]("q3", Accepting())

	q0.AddTransition('a', q1)
	q1.AddTransition('b', q2)
	q2.AddTransition('b', q2)
	q2.AddTransition('a', q3)

	return NewDFA(q0, []rune{'a', 'b'}), []*DFAState[rune]{q0, q1, q2, q3}
}

func TestDFAAccept(t *testing.T) {
	t.Run("simple machine", func(t *testing.T) {
		machine, _ := abaDFA(t)

		assert.False(t, machine.Accept([]rune("")))
		assert.False(t, machine.Accept([]rune("aab")))
		assert.True(t, machine.Accept([]rune("aba")))
		assert.False(t, machine.Accept([]rune("aa")))
		assert.False(t, machine.Accept([]rune("abb")))
	})

	t.Run("accept resets the cursor", func(t *testing.T) {
		machine, _ := abaDFA(t)

		assert.True(t, machine.Accept([]rune("aba")))
		assert.Same(t, machine.Initial(), machine.Current())

		// A rejecting walk, unknown symbols included, resets as well.
		assert.False(t, machine.Accept([]rune("ax")))
		assert.Same(t, machine.Initial(), machine.Current())
		assert.True(t, machine.Accept([]rune("aba")))
	})

	t.Run("numeric alphabet", func(t *testing.T) {
		q0 := NewDFAState[int]("q0", Initial(), Accepting())
		q1 := NewDFAState[int]("q1")
		q2 := NewDFAState[int]("q2")
		q3 := NewDFAState[int]("q3")
		q4 := NewDFAState[int]("q4", Accepting())
		q5 := NewDFAState[int]("q5", Accepting())

		q0.AddTransition(1, q1)
		q0.AddTransition(0, q2)
		q1.AddTransition(1, q1)
		q1.AddTransition(0, q2)
		q2.AddTransition(1, q3)
		q2.AddTransition(0, q4)
		q3.AddTransition(1, q3)
		q3.AddTransition(0, q4)
		q4.AddTransition(1, q5)
		q4.AddTransition(0, q2)
		q5.AddTransition(1, q5)
		q5.AddTransition(0, q2)

		machine := NewDFA(q0, []int{0, 1})

		assert.True(t, machine.Accept([]int{}))
		assert.False(t, machine.Accept([]int{0}))
		assert.False(t, machine.Accept([]int{1}))
		assert.False(t, machine.Accept([]int{0, 1}))
		assert.True(t, machine.Accept([]int{0, 0}))
		assert.False(t, machine.Accept([]int{1, 1}))
		assert.False(t, machine.Accept([]int{1, 0, 1}))
		assert.True(t, machine.Accept([]int{1, 0, 1, 0}))
		assert.True(t, machine.Accept([]int{1, 0, 0, 1}))
	})
}

func TestDFAForward(t *testing.T) {
	machine, states := abaDFA(t)

	current, err := machine.Forward('a')
	assert.Nil(t, err)
	assert.Same(t, states[1], current)
	assert.Same(t, states[1], machine.Current())

	// The lookup failure propagates and the cursor stays put.
	_, err = machine.Forward('x')
	assert.ErrorIs(t, err, ErrNoTransition)
	assert.Same(t, states[1], machine.Current())

	machine.Reset()
	assert.Same(t, states[0], machine.Current())
}

func TestDFAResetIdempotent(t *testing.T) {
	machine, states := abaDFA(t)
	_, err := machine.Forward('a')
	assert.Nil(t, err)

	machine.Reset()
	machine.Reset()
	assert.Same(t, states[0], machine.Current())
}

func TestDFAStates(t *testing.T) {
	t.Run("all reachable states once", func(t *testing.T) {
		machine, states := abaDFA(t)
		assert.ElementsMatch(t, states, machine.States())
	})

	t.Run("cycles do not loop", func(t *testing.T) {
		p := NewDFAState[rune]("p", Initial())
		q := NewDFAState[rune]("q")
		p.AddTransition('a', q)
		q.AddTransition('a', p)

		machine := NewDFA(p, []rune{'a'})
		assert.ElementsMatch(t, []*DFAState[rune]{p, q}, machine.States())
	})

	t.Run("unreachable states excluded", func(t *testing.T) {
		p := NewDFAState[rune]("p", Initial())
		orphan := NewDFAState[rune]("orphan")
		orphan.AddTransition('a', p)

		machine := NewDFA(p, []rune{'a'})
		assert.ElementsMatch(t, []*DFAState[rune]{p}, machine.States())
	})
}

func TestDFAIsComplete(t *testing.T) {
	t.Run("missing transitions", func(t *testing.T) {
		machine, _ := abaDFA(t)
		assert.False(t, machine.IsComplete())
	})

	t.Run("total machine", func(t *testing.T) {
		p := NewDFAState[rune]("p", Initial())
		q := NewDFAState[rune]("q", Accepting())
		p.AddTransition('a', q)
		p.AddTransition('b', p)
		q.AddTransition('a', q)
		q.AddTransition('b', p)

		machine := NewDFA(p, []rune{'a', 'b'})
		assert.True(t, machine.IsComplete())
	})
}
