package fsm

import (
	"fmt"
	"sort"
	"strings"
)

// WalkKind discriminates traversal records.
type WalkKind int

const (
	// WalkState records the first visit of a state.
	WalkState WalkKind = iota
	// WalkEdge records an outgoing transition of the enclosing state.
	WalkEdge
)

// WalkEvent One record of a depth-first graph traversal. State records carry
// Name and Depth; edge records additionally carry Symbol, Target and, for
// Mealy edges with an output function, the rendered output as Label.
type WalkEvent[S comparable] struct {
	Kind   WalkKind
	Name   string
	Target string
	Symbol S
	Label  string
	Depth  int
}

// walkNode The traversal view shared by all four state variants.
type walkNode[S comparable] interface {
	name() string
	edges() []walkEdge[S]
}

type walkEdge[S comparable] struct {
	symbol S
	target walkNode[S]
	label  string
}

// walkGraph Emits the depth-first traversal of the graph rooted at node as a
// flat record sequence. Visited states are tracked by name, so cyclic graphs
// terminate and every state is expanded once. Edges are emitted in sorted
// symbol order for deterministic output.
func walkGraph[S comparable](node walkNode[S]) []WalkEvent[S] {
	var events []WalkEvent[S]
	visited := make(map[string]struct{})

	var visit func(n walkNode[S], depth int)
	visit = func(n walkNode[S], depth int) {
		if _, ok := visited[n.name()]; ok {
			return
		}
		visited[n.name()] = struct{}{}
		events = append(events, WalkEvent[S]{Kind: WalkState, Name: n.name(), Depth: depth})
		for _, e := range n.edges() {
			events = append(events, WalkEvent[S]{
				Kind:   WalkEdge,
				Name:   n.name(),
				Target: e.target.name(),
				Symbol: e.symbol,
				Label:  e.label,
				Depth:  depth,
			})
			visit(e.target, depth+1)
		}
	}
	visit(node, 0)
	return events
}

// renderWalk Renders traversal records as the indented textual dump used by
// the String methods: one line per state, one "symbol -> target" line per
// edge.
func renderWalk[S comparable](events []WalkEvent[S]) string {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		indent := strings.Repeat("       ", ev.Depth)
		switch ev.Kind {
		case WalkState:
			lines = append(lines, indent+ev.Name)
		case WalkEdge:
			line := fmt.Sprintf("%s  %s -> %s", indent, formatSymbol(ev.Symbol), ev.Target)
			if ev.Label != "" {
				line += fmt.Sprintf(" [%s]", ev.Label)
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// formatSymbol Renders a symbol for humans. Runes print as characters, not
// code points; everything else falls back to its default formatting.
func formatSymbol[S comparable](symbol S) string {
	if r, ok := any(symbol).(rune); ok {
		return string(r)
	}
	return fmt.Sprint(symbol)
}

func sortEdges[S comparable](edges []walkEdge[S]) []walkEdge[S] {
	sort.Slice(edges, func(i, j int) bool {
		si, sj := formatSymbol(edges[i].symbol), formatSymbol(edges[j].symbol)
		if si != sj {
			return si < sj
		}
		return edges[i].target.name() < edges[j].target.name()
	})
	return edges
}

func (s *NFAState[S]) name() string { return s.Name }

func (s *NFAState[S]) edges() []walkEdge[S] {
	var out []walkEdge[S]
	for symbol, set := range s.transitions {
		for target := range set {
			out = append(out, walkEdge[S]{symbol: symbol, target: target})
		}
	}
	return sortEdges(out)
}

func (s *DFAState[S]) name() string { return s.Name }

func (s *DFAState[S]) edges() []walkEdge[S] {
	var out []walkEdge[S]
	for symbol, target := range s.transitions {
		out = append(out, walkEdge[S]{symbol: symbol, target: target})
	}
	return sortEdges(out)
}

func (s *MooreState[S]) name() string { return s.Name }

func (s *MooreState[S]) edges() []walkEdge[S] {
	var out []walkEdge[S]
	for symbol, target := range s.transitions {
		out = append(out, walkEdge[S]{symbol: symbol, target: target})
	}
	return sortEdges(out)
}

func (s *MealyState[S]) name() string { return s.Name }

func (s *MealyState[S]) edges() []walkEdge[S] {
	var out []walkEdge[S]
	for symbol, edge := range s.transitions {
		e := walkEdge[S]{symbol: symbol, target: edge.target}
		if edge.output != nil && edge.output.Fn != nil {
			e.label = fmt.Sprint(edge.output.Fn(symbol))
		}
		out = append(out, e)
	}
	return sortEdges(out)
}
