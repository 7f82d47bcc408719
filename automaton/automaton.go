package automaton

import (
	"fmt"
	"strings"

	"github.com/rsonpath-go/rsonpath/query"
)

// transition pairs a label with the state it leads to.
type transition struct {
	label query.Label
	state State
}

// TransitionTable is one DFA state's outgoing edges: zero or more labelled
// transitions plus a single fallback taken by every label not listed.
type TransitionTable struct {
	labelled []transition
	fallback State
	attrs    StateAttributes
}

// Labelled returns the table's labelled transitions in no particular order.
func (t TransitionTable) Labelled() []struct {
	Label query.Label
	State State
} {
	out := make([]struct {
		Label query.Label
		State State
	}, len(t.labelled))
	for i, tr := range t.labelled {
		out[i].Label = tr.label
		out[i].State = tr.state
	}
	return out
}

// Fallback returns the state reached by any label not explicitly listed.
func (t TransitionTable) Fallback() State { return t.fallback }

// Attributes returns the precomputed StateAttributes of this state.
func (t TransitionTable) Attributes() StateAttributes { return t.attrs }

// TransitionFor returns the state reached by label, consulting the labelled
// transitions first and falling back to Fallback.
func (t TransitionTable) TransitionFor(label query.Label) State {
	for _, tr := range t.labelled {
		if tr.label.Equal(label) {
			return tr.state
		}
	}
	return t.fallback
}

// Equal reports whether two tables have the same fallback and the same set
// of labelled transitions (order-independent), matching the original
// design's definition of transition-table equality used by the minimizer.
func (t TransitionTable) Equal(other TransitionTable) bool {
	if t.fallback != other.fallback || len(t.labelled) != len(other.labelled) {
		return false
	}
	for _, a := range t.labelled {
		found := false
		for _, b := range other.labelled {
			if a.label.Equal(b.label) && a.state == b.state {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Automaton is a minimal deterministic automaton compiled from a
// query.JSONPathQuery: dense state ids addressable by Transitions, with
// RejectingState the unique no-match sink and InitialState where execution
// begins.
type Automaton struct {
	states []TransitionTable
}

// Transitions returns the transition table for state s.
func (a *Automaton) Transitions(s State) TransitionTable { return a.states[s] }

// NumStates returns the number of states, including the rejecting sink.
func (a *Automaton) NumStates() int { return len(a.states) }

// IsEmptyQuery reports whether this automaton represents the trivial query
// "$", which has exactly the rejecting sink and the (accepting) initial
// state.
func (a *Automaton) IsEmptyQuery() bool { return len(a.states) == 2 }

// String renders the automaton as a Graphviz dot digraph, matching the
// --compile CLI flag's dump format.
func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, "digraph {")
	for i, t := range a.states {
		if t.attrs.IsAccepting() {
			fmt.Fprintf(&b, "node [shape = doublecircle]; %d\n", i)
		}
	}
	fmt.Fprintln(&b, "node [shape = circle];")
	for i, t := range a.states {
		for _, tr := range t.labelled {
			fmt.Fprintf(&b, "  %d -> %d [label=%q]\n", i, tr.state, tr.label.String())
		}
		fmt.Fprintf(&b, "  %d -> %d [label=\"*\"]\n", i, t.fallback)
	}
	fmt.Fprint(&b, "}")
	return b.String()
}
