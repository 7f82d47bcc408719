package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rsonpath-go/rsonpath/query"
)

const stateCapacity = 256

// rawState is one subset-construction DFA state before minimisation: the
// NFA subset it represents, whether that subset contains the final
// selector-chain position, and its resolved transitions (by raw index).
type rawState struct {
	subset    nfaSet
	accepting bool
	labelled  map[query.Label]int
	fallback  int
}

// Compile builds the minimal deterministic automaton for q.
//
// Construction follows the design directly: one NFA state per selector
// prefix length (0..len(selectors), the last being the fully-matched/
// accepting position), with a descendant selector contributing a self-loop
// on its own NFA state for every label (matched or not) while a child
// selector only ever advances forward on a match. A DFA state is a subset
// of NFA states reachable by some input so far (subset construction,
// capacity 256); the reachable subsets are then merged by Nerode
// equivalence (Hopcroft-style partition refinement) into the returned
// Automaton.
func Compile(q *query.JSONPathQuery) (*Automaton, error) {
	selectors := q.Selectors()
	n := len(selectors)

	index := map[nfaSet]int{}
	var raw []rawState

	var empty nfaSet
	index[empty] = 0
	raw = append(raw, rawState{subset: empty, labelled: map[query.Label]int{}, fallback: 0})

	var initial nfaSet
	initial.add(0)
	index[initial] = 1
	raw = append(raw, rawState{subset: initial, accepting: initial.has(n), labelled: map[query.Label]int{}})

	intern := func(subset nfaSet) (int, bool, error) {
		if idx, ok := index[subset]; ok {
			return idx, false, nil
		}
		if len(raw) >= stateCapacity {
			return 0, false, &CompileError{Query: q.String(), Cause: ErrQueryTooComplex}
		}
		idx := len(raw)
		index[subset] = idx
		raw = append(raw, rawState{subset: subset, accepting: subset.has(n), labelled: map[query.Label]int{}})
		return idx, true, nil
	}

	queue := []int{1}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		x := raw[cur].subset

		labelSet := map[query.Label]bool{}
		for _, i := range x.members() {
			if i >= n {
				continue
			}
			sel := selectors[i]
			if sel.Kind == query.Wildcard {
				continue
			}
			if lbl, ok := sel.Label(); ok {
				labelSet[lbl] = true
			}
		}

		for lbl := range labelSet {
			succ := successorSubset(selectors, x, func(sel query.Selector) bool {
				if sel.Kind == query.Wildcard {
					return true
				}
				l, ok := sel.Label()
				return ok && l.Equal(lbl)
			})
			idx, fresh, err := intern(succ)
			if err != nil {
				return nil, err
			}
			raw[cur].labelled[lbl] = idx
			if fresh {
				queue = append(queue, idx)
			}
		}

		fallbackSucc := successorSubset(selectors, x, func(sel query.Selector) bool {
			return sel.Kind == query.Wildcard
		})
		idx, fresh, err := intern(fallbackSucc)
		if err != nil {
			return nil, err
		}
		raw[cur].fallback = idx
		if fresh {
			queue = append(queue, idx)
		}
	}

	return minimize(raw, 1)
}

// successorSubset computes the NFA subset reached from x given a predicate
// telling, for each selector, whether the label being consumed matches it.
// A descendant selector always contributes its own index back into the
// result (the self-loop that keeps its deeper search alive); any selector
// the predicate matches additionally contributes the next index.
func successorSubset(selectors []query.Selector, x nfaSet, matches func(query.Selector) bool) nfaSet {
	var next nfaSet
	n := len(selectors)
	for _, i := range x.members() {
		if i >= n {
			continue
		}
		sel := selectors[i]
		if sel.Descendant {
			next.add(i)
		}
		if matches(sel) {
			next.add(i + 1)
		}
	}
	return next
}

// minimize merges Nerode-equivalent raw states via partition refinement,
// then renumbers blocks so the reject sink is State 0 and the block
// containing rawInitial is State 1.
func minimize(raw []rawState, rawInitial int) (*Automaton, error) {
	n := len(raw)

	allLabels := map[query.Label]bool{}
	for _, st := range raw {
		for l := range st.labelled {
			allLabels[l] = true
		}
	}
	labels := make([]query.Label, 0, len(allLabels))
	for l := range allLabels {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].String() < labels[j].String() })

	transitionFor := func(st rawState, lbl query.Label) int {
		if idx, ok := st.labelled[lbl]; ok {
			return idx
		}
		return st.fallback
	}

	block := make([]int, n)
	for i, st := range raw {
		if st.accepting {
			block[i] = 1
		}
	}

	for {
		newBlockOf := map[string]int{}
		newBlock := make([]int, n)
		nextID := 0
		for i := 0; i < n; i++ {
			var b strings.Builder
			fmt.Fprintf(&b, "%d|%d|", block[i], block[raw[i].fallback])
			for _, lbl := range labels {
				fmt.Fprintf(&b, "%d,", block[transitionFor(raw[i], lbl)])
			}
			key := b.String()
			id, ok := newBlockOf[key]
			if !ok {
				id = nextID
				newBlockOf[key] = id
				nextID++
			}
			newBlock[i] = id
		}
		changed := false
		for i := range block {
			if block[i] != newBlock[i] {
				changed = true
				break
			}
		}
		block = newBlock
		if !changed {
			break
		}
	}

	finalID := map[int]int{}
	finalID[block[0]] = 0
	if _, ok := finalID[block[rawInitial]]; !ok {
		finalID[block[rawInitial]] = 1
	}
	next := 2
	for i := 0; i < n; i++ {
		if _, ok := finalID[block[i]]; !ok {
			finalID[block[i]] = next
			next++
		}
	}
	numStates := next
	states := make([]TransitionTable, numStates)
	representative := make([]int, numStates)
	assigned := make([]bool, numStates)
	for i := 0; i < n; i++ {
		f := finalID[block[i]]
		if !assigned[f] {
			representative[f] = i
			assigned[f] = true
		}
	}

	for f := 0; f < numStates; f++ {
		st := raw[representative[f]]
		labelled := make([]transition, 0, len(st.labelled))
		for lbl, target := range st.labelled {
			labelled = append(labelled, transition{label: lbl, state: State(finalID[block[target]])})
		}
		sort.Slice(labelled, func(i, j int) bool { return labelled[i].label.String() < labelled[j].label.String() })
		states[f] = TransitionTable{
			labelled: labelled,
			fallback: State(finalID[block[st.fallback]]),
		}
	}

	for f := 0; f < numStates; f++ {
		var attrs StateAttributes
		if f == 0 {
			attrs |= Rejecting
		}
		if raw[representative[f]].accepting {
			attrs |= Accepting
		}
		t := states[f]
		if len(t.labelled) == 1 && t.fallback == RejectingState {
			attrs |= Unitary
		}
		states[f].attrs = attrs
	}
	for f := 0; f < numStates; f++ {
		t := &states[f]
		if states[t.fallback].attrs.IsAccepting() {
			t.attrs |= TransitionsToAccepting
		}
		for _, tr := range t.labelled {
			if states[tr.state].attrs.IsAccepting() {
				t.attrs |= TransitionsToAccepting
			}
		}
	}

	return &Automaton{states: states}, nil
}
