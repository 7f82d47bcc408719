package engine

import (
	rsonpath "github.com/rsonpath-go/rsonpath"
	"github.com/rsonpath-go/rsonpath/automaton"
	"github.com/rsonpath-go/rsonpath/result"
)

// runRecursive drives the automaton over c's input using the Go call
// stack to track open containers, instead of the explicit slice
// runIterative keeps. Existing purely as a second, independently-shaped
// implementation to cross-check the iterative engine's results against.
func (c *core) runRecursive() error {
	pend := pending{valid: true, state: automaton.InitialState, from: 0}
	if err := c.loopRecursive(&pend, nil); err != nil {
		return err
	}
	return c.flushAll()
}

// loopRecursive processes the structural events belonging to one nesting
// level: the document's top level when top is nil, or one container's
// direct children when top is non-nil. It recurses into itself for each
// nested Opening it enters, and returns once its own Closing (or, at the
// top level, the end of input) is reached.
func (c *core) loopRecursive(pend *pending, top *frame) error {
	for {
		ev, ok, err := c.sc.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := c.flushTo(ev.Idx); err != nil {
			return err
		}

		switch ev.Kind {
		case rsonpath.Opening:
			var parentDepth result.Depth
			if top != nil {
				parentDepth = top.depth
			}
			f, entered, err := c.handleOpening(ev, parentDepth, pend)
			if err != nil {
				return err
			}
			if entered {
				childPend := *pend
				if err := c.loopRecursive(&childPend, &f); err != nil {
					return err
				}
				*pend = pending{}
			}
		case rsonpath.Colon:
			if top == nil {
				return rsonpath.ErrInternal
			}
			if err := c.handleColon(ev, *top, pend); err != nil {
				return err
			}
		case rsonpath.Comma:
			if top == nil {
				return rsonpath.ErrInternal
			}
			c.handleComma(ev, top, pend)
		case rsonpath.Closing:
			if top == nil {
				return rsonpath.ErrInternal
			}
			c.handleClosing(ev, *top, pend)
			return nil
		}
	}
}
