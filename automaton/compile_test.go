package automaton

import (
	"testing"

	"github.com/rsonpath-go/rsonpath/query"
)

func mustParse(t *testing.T, raw string) *query.JSONPathQuery {
	t.Helper()
	q, err := query.Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	return q
}

func TestCompileTrivialQuery(t *testing.T) {
	q := mustParse(t, "$")
	a, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.IsEmptyQuery() {
		t.Error("expected $ to compile to the trivial two-state automaton")
	}
	if a.NumStates() != 2 {
		t.Fatalf("NumStates() = %d, want 2", a.NumStates())
	}
	if !a.Transitions(InitialState).Attributes().IsAccepting() {
		t.Error("the initial state of $ must be accepting")
	}
	if !a.Transitions(RejectingState).Attributes().IsRejecting() {
		t.Error("state 0 must be rejecting")
	}
}

func TestCompileSingleChildName(t *testing.T) {
	q := mustParse(t, "$.a")
	a, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.IsEmptyQuery() {
		t.Fatal("expected more than the trivial automaton")
	}

	initial := a.Transitions(InitialState)
	if initial.Attributes().IsAccepting() {
		t.Error("initial state of $.a should not be accepting before matching \"a\"")
	}
	if !initial.Attributes().IsUnitary() {
		t.Error("initial state of $.a should be unitary: single labelled transition, rejecting fallback")
	}
	if initial.Fallback() != RejectingState {
		t.Errorf("fallback = %v, want RejectingState", initial.Fallback())
	}

	target := initial.TransitionFor(query.NameLabel("a"))
	if target == RejectingState {
		t.Fatal("transitioning on \"a\" must not reject")
	}
	if !a.Transitions(target).Attributes().IsAccepting() {
		t.Error("the state reached by matching \"a\" must be accepting")
	}
	if !initial.Attributes().HasTransitionToAccepting() {
		t.Error("initial state should report a transition to an accepting state")
	}

	other := initial.TransitionFor(query.NameLabel("b"))
	if other != RejectingState {
		t.Errorf("transitioning on an unrelated label = %v, want RejectingState", other)
	}
}

func TestCompileDescendantNeverRejectsOnMiss(t *testing.T) {
	q := mustParse(t, "$..a")
	a, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	initial := a.Transitions(InitialState)

	// A descendant search never dies on an unrelated label: it must keep
	// searching deeper, so its fallback cannot be the rejecting sink.
	if initial.Fallback() == RejectingState {
		t.Error("descendant selector's fallback must not be the rejecting sink")
	}
	if initial.Attributes().IsUnitary() {
		t.Error("a descendant-only initial state should not be unitary: it cannot skip on miss")
	}

	matched := initial.TransitionFor(query.NameLabel("a"))
	if !a.Transitions(matched).Attributes().IsAccepting() {
		t.Error("matching \"a\" must lead to an accepting state")
	}

	// Nested occurrences of "a" inside an already-matched "a" must match
	// again: the matched state's own "a" transition must stay accepting.
	again := a.Transitions(matched).TransitionFor(query.NameLabel("a"))
	if !a.Transitions(again).Attributes().IsAccepting() {
		t.Error("a nested \"a\" under a matched \"a\" must still match")
	}
}

func TestCompileWildcardMatchesFallback(t *testing.T) {
	q := mustParse(t, "$.*")
	a, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	initial := a.Transitions(InitialState)
	if len(initial.Labelled()) != 0 {
		t.Errorf("a pure wildcard selector should have no labelled transitions, got %v", initial.Labelled())
	}
	if !a.Transitions(initial.Fallback()).Attributes().IsAccepting() {
		t.Error("the wildcard's fallback transition must lead to an accepting state")
	}
}

func TestCompileIndexSelector(t *testing.T) {
	q := mustParse(t, "$[2]")
	a, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx, _ := query.NewNonNegativeArrayIndex(2)
	initial := a.Transitions(InitialState)
	target := initial.TransitionFor(query.IndexLabel(idx))
	if !a.Transitions(target).Attributes().IsAccepting() {
		t.Error("matching index 2 must lead to an accepting state")
	}
	other, _ := query.NewNonNegativeArrayIndex(3)
	if initial.TransitionFor(query.IndexLabel(other)) != RejectingState {
		t.Error("a non-matching index should reject for a child index selector")
	}
}

func TestCompileMultiSegmentChain(t *testing.T) {
	q := mustParse(t, "$..a..b.c..d")
	a, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.NumStates() < 2 {
		t.Fatal("expected a non-trivial automaton")
	}
	// Walk the labelled chain a -> b -> c -> d and confirm the final state
	// accepts.
	s := InitialState
	for _, name := range []string{"a", "b", "c", "d"} {
		s = a.Transitions(s).TransitionFor(query.NameLabel(name))
		if s == RejectingState {
			t.Fatalf("transitioning on %q unexpectedly rejected", name)
		}
	}
	if !a.Transitions(s).Attributes().IsAccepting() {
		t.Error("after matching a, b, c, d in sequence the automaton should accept")
	}
}

func TestCompileQuotedMemberNameSelector(t *testing.T) {
	q := mustParse(t, `$['\"x']`)
	a, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	initial := a.Transitions(InitialState)

	matchEmbedded := initial.TransitionFor(query.NameLabel(`"x`))
	if !a.Transitions(matchEmbedded).Attributes().IsAccepting() {
		t.Error(`expected the member named "x (embedded quote) to match`)
	}

	noMatch := initial.TransitionFor(query.NameLabel("x"))
	if noMatch != RejectingState {
		t.Error(`the plain member "x" must not match $['\"x']`)
	}
}

func TestAutomatonStringProducesDot(t *testing.T) {
	q := mustParse(t, "$.a")
	a, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := a.String()
	if s == "" {
		t.Fatal("expected a non-empty dot rendering")
	}
	if s[:8] != "digraph " {
		t.Errorf("expected dot output to start with \"digraph \", got %q", s[:8])
	}
}
