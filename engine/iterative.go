package engine

import (
	rsonpath "github.com/rsonpath-go/rsonpath"
	"github.com/rsonpath-go/rsonpath/automaton"
	"github.com/rsonpath-go/rsonpath/result"
)

// runIterative drives the automaton over c's input using an explicit stack
// of open containers.
func (c *core) runIterative() error {
	var stack []frame
	depth := result.Depth(0)
	pend := pending{valid: true, state: automaton.InitialState, from: 0}

	for {
		ev, ok, err := c.sc.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := c.flushTo(ev.Idx); err != nil {
			return err
		}

		switch ev.Kind {
		case rsonpath.Opening:
			f, entered, err := c.handleOpening(ev, depth, &pend)
			if err != nil {
				return err
			}
			if entered {
				stack = append(stack, f)
				depth = f.depth
			}
		case rsonpath.Colon:
			if len(stack) == 0 {
				return rsonpath.ErrInternal
			}
			if err := c.handleColon(ev, stack[len(stack)-1], &pend); err != nil {
				return err
			}
		case rsonpath.Comma:
			if len(stack) == 0 {
				return rsonpath.ErrInternal
			}
			c.handleComma(ev, &stack[len(stack)-1], &pend)
		case rsonpath.Closing:
			if len(stack) == 0 {
				return rsonpath.ErrInternal
			}
			top := stack[len(stack)-1]
			depth = c.handleClosing(ev, top, &pend)
			stack = stack[:len(stack)-1]
		}
	}

	return c.flushAll()
}
