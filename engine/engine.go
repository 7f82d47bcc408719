// Package engine drives a compiled automaton over a classified input
// stream, reporting matches to a result.Recorder. Two implementations are
// provided: RunIterative, which tracks open containers on an explicit
// stack, and RunRecursive, which uses the Go call stack instead; the CLI's
// verify-both mode runs both over the same input and compares results.
package engine

import (
	"io"

	"github.com/sirupsen/logrus"

	rsonpath "github.com/rsonpath-go/rsonpath"
	"github.com/rsonpath-go/rsonpath/automaton"
	"github.com/rsonpath-go/rsonpath/query"
	"github.com/rsonpath-go/rsonpath/result"
)

// Config collects the collaborators one engine run needs.
type Config struct {
	Automaton *automaton.Automaton
	Input     rsonpath.Input
	Recorder  result.Recorder
	// Logger receives --verbose tracing; nil is treated as a discard logger,
	// so the hot path never pays for logging when it is disabled.
	Logger logrus.FieldLogger
}

// pending describes the automaton state that will govern the next value
// the engine opens or resolves, computed by whichever event (root, Colon,
// or a list's index transition) last preceded it.
type pending struct {
	valid bool
	state automaton.State
	from  int // search-from offset for the value's first non-whitespace byte
}

// frame is one open container: the state governing its children, the depth
// its own content sits at, and (for arrays) the running element index.
type frame struct {
	state     automaton.State
	depth     result.Depth
	isList    bool
	nextIndex query.NonNegativeArrayIndex
}

// core holds the state shared by both engine styles: the compiled
// automaton, the input being scanned, the recorder being fed, the live
// structural classifier (replaced wholesale whenever a skip occurs), and
// the separate raw block cursor that feeds RecordBlockEnd independently of
// however much structural work was actually skipped.
type core struct {
	auto  *automaton.Automaton
	input rsonpath.Input
	rec   result.Recorder
	log   logrus.FieldLogger

	sc     *rsonpath.StructuralClassifier
	blocks rsonpath.BlockIterator

	delivered int
	listDepth int
}

func newCore(cfg Config) *core {
	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	quotes := rsonpath.NewQuoteClassifier(cfg.Input.IterBlocks())
	return &core{
		auto:   cfg.Automaton,
		input:  cfg.Input,
		rec:    cfg.Recorder,
		log:    log,
		sc:     rsonpath.NewStructuralClassifier(quotes),
		blocks: cfg.Input.IterBlocks(),
	}
}

// RunIterative executes cfg's query, tracking open containers on an
// explicit stack.
func RunIterative(cfg Config) error {
	return newCore(cfg).runIterative()
}

// RunRecursive executes cfg's query, tracking open containers on the Go
// call stack. Kept for cross-verification against RunIterative.
func RunRecursive(cfg Config) error {
	return newCore(cfg).runRecursive()
}

// flushTo delivers every block that has fully ended before pos to the
// recorder, independently of how the engine reached pos (normal events or
// a skip).
func (c *core) flushTo(pos int) error {
	for c.delivered+rsonpath.BlockSize <= pos {
		block, ok, err := c.blocks.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		c.rec.RecordBlockEnd(block)
		c.delivered += rsonpath.BlockSize
	}
	return nil
}

// flushAll delivers every remaining block once the classifier is exhausted.
func (c *core) flushAll() error {
	for {
		block, ok, err := c.blocks.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		c.rec.RecordBlockEnd(block)
		c.delivered += rsonpath.BlockSize
	}
}
