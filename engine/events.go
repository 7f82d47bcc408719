package engine

import (
	rsonpath "github.com/rsonpath-go/rsonpath"
	"github.com/rsonpath-go/rsonpath/automaton"
	"github.com/rsonpath-go/rsonpath/result"
)

// handleOpening processes an Opening event given the pending state
// computed for the value it opens. It either enters the value (returning
// the frame to push, entered=true) or skips it whole: either because
// pend.state is the rejecting sink (nothing under it could ever match), or
// because pend.state is a head-skip candidate whose required name does not
// recur anywhere later in the input (so it certainly cannot recur inside
// this subtree either).
func (c *core) handleOpening(ev rsonpath.Structural, parentDepth result.Depth, pend *pending) (frame, bool, error) {
	s := pend.state

	if s == automaton.RejectingState {
		c.log.WithField("idx", ev.Idx).Debug("engine: skipping non-matching subtree")
		newSC, err := skipSubtree(c.sc)
		if err != nil {
			return frame{}, false, err
		}
		c.sc = newSC
		*pend = pending{}
		return frame{}, false, nil
	}

	if lbl, ok := qualifiesForHeadSkip(c.auto, s); ok {
		name, _ := lbl.Name()
		if rsonpath.FindMemberNameOccurrence(c.input, ev.Idx+1, escapeJSONName(name)) < 0 {
			c.log.WithField("name", name).Debug("engine: head-skip found no further occurrence, skipping subtree")
			newSC, err := skipSubtree(c.sc)
			if err != nil {
				return frame{}, false, err
			}
			c.sc = newSC
			*pend = pending{}
			return frame{}, false, nil
		}
	}

	newDepth := parentDepth + 1
	if c.auto.Transitions(s).Attributes().IsAccepting() {
		c.rec.RecordMatch(ev.Idx, parentDepth, result.Complex)
	}

	_, b, _ := c.input.SeekNonWhitespaceForward(ev.Idx)
	isList := b == '['
	f := frame{state: s, depth: newDepth, isList: isList}

	if isList {
		c.listDepth++
		if c.listDepth == 1 {
			c.sc.TurnCommasOn(ev.Idx)
		}
		childState := indexTransition(c.auto, s, f.nextIndex)
		*pend = pending{valid: true, state: childState, from: ev.Idx + 1}
	} else {
		*pend = pending{}
	}
	return f, true, nil
}

// handleColon resolves the member name a Colon event terminates and sets
// pend to the state governing its value. If the previous member's value is
// still pending (commas are not being reported), it is closed first at the
// comma preceding this member name.
func (c *core) handleColon(ev rsonpath.Structural, top frame, pend *pending) error {
	from, to, ok := resolveMemberNameBounds(c.input, ev.Idx)
	if !ok {
		return rsonpath.ErrInternal
	}
	if pend.valid {
		if commaIdx, b, found := c.input.SeekNonWhitespaceBackward(from - 1); found && b == ',' {
			recordPendingAtomic(c.auto, c.input, c.rec, *pend, commaIdx, top.depth)
			c.rec.RecordValueTerminator(commaIdx, top.depth)
		}
	}
	newState := nameTransition(c.auto, c.input, top.state, from, to)
	*pend = pending{valid: true, state: newState, from: ev.Idx + 1}
	return nil
}

// handleComma closes any pending atomic value and, for a list frame,
// advances to the next element's transition.
func (c *core) handleComma(ev rsonpath.Structural, top *frame, pend *pending) {
	recordPendingAtomic(c.auto, c.input, c.rec, *pend, ev.Idx, top.depth)
	c.rec.RecordValueTerminator(ev.Idx, top.depth)

	if top.isList {
		top.nextIndex = top.nextIndex.Increment()
		childState := indexTransition(c.auto, top.state, top.nextIndex)
		*pend = pending{valid: true, state: childState, from: ev.Idx + 1}
	} else {
		*pend = pending{}
	}
}

// handleClosing closes any pending atomic value and the container itself,
// returning the depth after popping it.
func (c *core) handleClosing(ev rsonpath.Structural, top frame, pend *pending) result.Depth {
	newDepth := top.depth - 1
	recordPendingAtomic(c.auto, c.input, c.rec, *pend, ev.Idx, top.depth)
	c.rec.RecordValueTerminator(ev.Idx, newDepth)

	if top.isList {
		c.listDepth--
		if c.listDepth == 0 {
			c.sc.TurnCommasOff()
		}
	}
	*pend = pending{}
	return newDepth
}
