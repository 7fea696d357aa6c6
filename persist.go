package fsm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrUnnamedOutput is returned by Save when an edge carries an ad-hoc output
// function with no registry key; such machines work in memory but cannot be
// persisted.
var ErrUnnamedOutput = errors.New("edge output function has no registry key")

// mealySnapshot The persisted form of a Mealy machine: the reachable state
// set, the transition list, the alphabet and the name of the cursor state.
// Edge outputs are stored as registry keys only, never as code.
type mealySnapshot[S comparable] struct {
	States      []stateRecord         `json:"states"`
	Transitions []transitionRecord[S] `json:"transitions"`
	Alphabet    []S                   `json:"alphabet"`
	Current     string                `json:"current"`
}

type stateRecord struct {
	Name      string `json:"name"`
	Initial   bool   `json:"initial"`
	Accepting bool   `json:"accepting"`
}

type transitionRecord[S comparable] struct {
	From   string `json:"from"`
	Symbol S      `json:"symbol"`
	To     string `json:"to"`
	Output string `json:"output,omitempty"`
}

// Save Writes the machine and its cursor position as JSON. States and
// transitions are sorted before marshalling so identical machines produce
// identical bytes. Fails with ErrUnnamedOutput when any edge has an output
// function created outside a registry.
func (m *MealyMachine[S]) Save(w io.Writer) error {
	states := m.States()
	sort.Slice(states, func(i, j int) bool { return states[i].Name < states[j].Name })

	snap := mealySnapshot[S]{
		States:      make([]stateRecord, 0, len(states)),
		Transitions: make([]transitionRecord[S], 0),
		Alphabet:    m.Alphabet(),
		Current:     m.current.Name,
	}

	for _, state := range states {
		snap.States = append(snap.States, stateRecord{
			Name:      state.Name,
			Initial:   state.Initial,
			Accepting: state.Accepting,
		})
		for symbol, edge := range state.transitions {
			record := transitionRecord[S]{
				From:   state.Name,
				Symbol: symbol,
				To:     edge.target.Name,
			}
			if edge.output != nil && edge.output.Fn != nil {
				if edge.output.Name == "" {
					return fmt.Errorf("%w: transition %s -> %s on %v",
						ErrUnnamedOutput, state.Name, edge.target.Name, symbol)
				}
				record.Output = edge.output.Name
			}
			snap.Transitions = append(snap.Transitions, record)
		}
	}

	sort.Slice(snap.Transitions, func(i, j int) bool {
		a, b := snap.Transitions[i], snap.Transitions[j]
		if a.From != b.From {
			return a.From < b.From
		}
		sa, sb := fmt.Sprint(a.Symbol), fmt.Sprint(b.Symbol)
		if sa != sb {
			return sa < sb
		}
		return a.To < b.To
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode mealy machine: %w", err)
	}
	return nil
}

// LoadMealyMachine Rebuilds a machine saved by Save: states first, then
// transitions, then the cursor by name lookup. Edge output keys are resolved
// through reg; an unknown key, a transition referencing an unknown state, a
// missing initial state or a missing cursor state all fail the load, with no
// partial reconstruction.
func LoadMealyMachine[S comparable](r io.Reader, reg *Registry[S]) (*MealyMachine[S], error) {
	var snap mealySnapshot[S]
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode mealy machine: %w", err)
	}

	states := make(map[string]*MealyState[S], len(snap.States))
	var initial *MealyState[S]
	for _, record := range snap.States {
		if _, ok := states[record.Name]; ok {
			return nil, fmt.Errorf("duplicate state name %q", record.Name)
		}
		state := NewMealyState[S](record.Name)
		state.Initial = record.Initial
		state.Accepting = record.Accepting
		states[record.Name] = state
		if record.Initial {
			if initial != nil {
				return nil, fmt.Errorf("multiple initial states: %q and %q", initial.Name, record.Name)
			}
			initial = state
		}
	}
	if initial == nil {
		return nil, errors.New("no initial state")
	}

	for _, record := range snap.Transitions {
		from, ok := states[record.From]
		if !ok {
			return nil, fmt.Errorf("transition source %q not among states", record.From)
		}
		to, ok := states[record.To]
		if !ok {
			return nil, fmt.Errorf("transition target %q not among states", record.To)
		}
		var output *Output[S]
		if record.Output != "" {
			if reg == nil {
				return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, record.Output)
			}
			var err error
			output, err = reg.Output(record.Output)
			if err != nil {
				return nil, err
			}
		}
		from.AddTransition(record.Symbol, to, output)
	}

	current, ok := states[snap.Current]
	if !ok {
		return nil, fmt.Errorf("cursor state %q not among states", snap.Current)
	}

	machine := NewMealyMachine(initial, snap.Alphabet)
	machine.current = current
	return machine, nil
}
