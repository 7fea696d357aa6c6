package fsm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplete(t *testing.T) {
	t.Run("adds sink for missing transitions", func(t *testing.T) {
		machine, _ := abaDFA(t)
		assert.False(t, machine.IsComplete())

		completed := Complete(machine)
		assert.True(t, completed.IsComplete())
		assert.Len(t, completed.States(), 5)

		// Same language.
		for _, sample := range []string{"", "a", "aa", "aba", "abba", "abab", "bbb"} {
			assert.Equal(t, machine.Accept([]rune(sample)), completed.Accept([]rune(sample)), sample)
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		machine, states := abaDFA(t)
		_ = Complete(machine)

		assert.False(t, machine.IsComplete())
		assert.ElementsMatch(t, states, machine.States())
	})

	t.Run("already complete returns independent copy", func(t *testing.T) {
		machine := MakeAnyString([]rune{'a', 'b'})
		completed := Complete(machine)

		assert.True(t, completed.IsComplete())
		assert.Len(t, completed.States(), len(machine.States()))
		assert.NotSame(t, machine.Initial(), completed.Initial())

		// Mutating the copy must not leak into the original.
		completed.Initial().Accepting = false
		assert.True(t, machine.Accept([]rune("")))
	})

	t.Run("idempotent", func(t *testing.T) {
		machine, _ := abaDFA(t)
		once := Complete(machine)
		twice := Complete(once)

		assert.True(t, twice.IsComplete())
		assert.Len(t, twice.States(), len(once.States()))
		for _, sample := range []string{"", "aba", "abba", "ba", "xx"} {
			assert.Equal(t, once.Accept([]rune(sample)), twice.Accept([]rune(sample)), sample)
		}
	})

	t.Run("sink name avoids collisions", func(t *testing.T) {
		p := NewDFAState[rune]("p", Initial())
		q := NewDFAState[rune]("q'", Accepting())
		p.AddTransition('a', q)

		machine := NewDFA(p, []rune{'a', 'b'})
		completed := Complete(machine)

		names := make(map[string]struct{})
		for _, s := range completed.States() {
			_, dup := names[s.Name]
			assert.False(t, dup, s.Name)
			names[s.Name] = struct{}{}
		}
		assert.Contains(t, names, "q''")
		assert.True(t, completed.IsComplete())
	})
}

func TestCompletePreservesLanguage(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		dfa := Determinize(randomNFA(r))
		completed := Complete(dfa)

		assert.True(t, completed.IsComplete())
		for j := 0; j < 20; j++ {
			seq := randomInput(r)
			assert.Equal(t, dfa.Accept(seq), completed.Accept(seq), "machine %d, input %q", i, string(seq))
		}
	}
}

func TestFactories(t *testing.T) {
	alphabet := []rune{'a', 'b'}

	t.Run("empty language", func(t *testing.T) {
		machine := MakeEmpty(alphabet)
		assert.False(t, machine.Accept([]rune("")))
		assert.False(t, machine.Accept([]rune("ab")))
	})

	t.Run("empty string only", func(t *testing.T) {
		machine := MakeEmptyString(alphabet)
		assert.True(t, machine.Accept([]rune("")))
		assert.False(t, machine.Accept([]rune("a")))
	})

	t.Run("any string", func(t *testing.T) {
		machine := MakeAnyString(alphabet)
		assert.True(t, machine.IsComplete())
		assert.True(t, machine.Accept([]rune("")))
		assert.True(t, machine.Accept([]rune("abba")))
	})
}
