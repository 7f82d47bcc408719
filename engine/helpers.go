package engine

import (
	rsonpath "github.com/rsonpath-go/rsonpath"
	"github.com/rsonpath-go/rsonpath/automaton"
	"github.com/rsonpath-go/rsonpath/query"
	"github.com/rsonpath-go/rsonpath/result"
)

// escapeJSONName re-encodes a Label's decoded member name back into the
// quoted JSON form Input.IsMemberMatch compares raw bytes against: a Label
// carries the logical name, but the bytes on the wire may still carry
// escapes (e.g. the name `"x` is written `\"x` between its delimiting
// quotes).
func escapeJSONName(name string) []byte {
	out := make([]byte, 0, len(name)+2)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '\\' || c == '"' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return out
}

// resolveMemberNameBounds walks backward from a Colon event to find the
// byte span (opening quote to just past the closing quote) of the member
// name it terminates, skipping over candidate quotes that turn out to be
// themselves escaped.
func resolveMemberNameBounds(in rsonpath.Input, colonIdx int) (from, to int, ok bool) {
	cq, b, found := in.SeekNonWhitespaceBackward(colonIdx - 1)
	if !found || b != '"' {
		return 0, 0, false
	}
	cursor := cq
	for {
		oq := in.SeekBackward(cursor-1, '"')
		if oq < 0 {
			return 0, 0, false
		}
		escaped := oq > 0 && in.SeekBackward(oq-1, '\\') == oq-1
		if !escaped {
			return oq, cq + 1, true
		}
		cursor = oq
	}
}

// nameTransition resolves the state reached by the member name spanning
// [nameFrom, nameTo) in state's transition table, re-escaping each
// candidate Name label to compare against the raw input bytes.
func nameTransition(a *automaton.Automaton, in rsonpath.Input, state automaton.State, nameFrom, nameTo int) automaton.State {
	table := a.Transitions(state)
	for _, tr := range table.Labelled() {
		if tr.Label.IsIndex() {
			continue
		}
		name, _ := tr.Label.Name()
		if in.IsMemberMatch(nameFrom, nameTo, escapeJSONName(name)) {
			return tr.State
		}
	}
	return table.Fallback()
}

// indexTransition resolves the state reached by array index idx in
// state's transition table.
func indexTransition(a *automaton.Automaton, state automaton.State, idx query.NonNegativeArrayIndex) automaton.State {
	return a.Transitions(state).TransitionFor(query.IndexLabel(idx))
}

// recordPendingAtomic reports an atomic match for the value described by
// pend, if one is actually present before boundaryIdx. An empty container,
// or one with nothing but whitespace before its closing bracket or the
// next comma, reports nothing: there is no atomic value there to match.
func recordPendingAtomic(a *automaton.Automaton, in rsonpath.Input, rec result.Recorder, pend pending, boundaryIdx int, depth result.Depth) {
	if !pend.valid || !a.Transitions(pend.state).Attributes().IsAccepting() {
		return
	}
	startIdx, _, found := in.SeekNonWhitespaceForward(pend.from)
	if !found || startIdx >= boundaryIdx {
		return
	}
	rec.RecordMatch(startIdx, depth, result.Atomic)
}

// qualifiesForHeadSkip reports whether state has exactly one labelled
// (name) transition and a fallback that loops back to itself: the shape a
// pure descendant name search settles into once every other possibility
// has been ruled out, and the trigger condition for the head-skip
// optimisation (see DESIGN.md for how this differs from the Unitary
// attribute, which requires a rejecting rather than a self-looping
// fallback).
func qualifiesForHeadSkip(a *automaton.Automaton, state automaton.State) (query.Label, bool) {
	table := a.Transitions(state)
	labelled := table.Labelled()
	if len(labelled) != 1 || labelled[0].Label.IsIndex() || table.Fallback() != state {
		return query.Label{}, false
	}
	return labelled[0].Label, true
}

// skipSubtree walks past exactly one balanced container (the Opening event
// that was just consumed from sc) using block-granular depth counting
// instead of structural classification, and returns a StructuralClassifier
// resumed right after the container's matching closing bracket.
func skipSubtree(sc *rsonpath.StructuralClassifier) (*rsonpath.StructuralClassifier, error) {
	resumeState := sc.Stop()
	dc := rsonpath.ResumeDepthClassification(resumeState)

	block, ok, err := dc.Next()
	if err != nil {
		return nil, err
	}
	depth := 1

outer:
	for ok {
		block.AddDepth(depth)
		if block.EstimateLowestPossibleDepth() <= 0 {
			for block.AdvanceToNextDepthDecrease() {
				if block.GetDepth() == 0 {
					break outer
				}
			}
		}
		depth = block.DepthAtEnd()
		block, ok, err = dc.Next()
		if err != nil {
			return nil, err
		}
	}

	return rsonpath.ResumeStructuralClassifier(dc.Stop(block)), nil
}
