// Package result defines the engine's observer contract — Recorder — and
// the three standard recorders the CLI can select between: Count, Index,
// and Nodes.
package result

import "fmt"

// MatchedNodeType classifies the JSON value a Recorder.RecordMatch call is
// reporting.
type MatchedNodeType int

const (
	// Atomic is a JSON string, number, boolean, or null.
	Atomic MatchedNodeType = iota
	// Complex is a JSON object or array.
	Complex
)

func (t MatchedNodeType) String() string {
	if t == Complex {
		return "complex"
	}
	return "atomic"
}

// Depth counts unmatched opening brackets at a point in the input, as
// tracked by the engine driving a Recorder.
type Depth int64

func (d Depth) String() string { return fmt.Sprintf("%d", int64(d)) }

// InputRecorder is notified as each input block finishes processing. A
// Recorder may assume no match or terminator with an index at or before a
// block already reported here will ever be reported.
type InputRecorder interface {
	RecordBlockEnd(block []byte)
}

// Recorder observes match and value-terminator events from the engine.
// idx is always the first byte of the thing being reported: the first
// character of a matched value for RecordMatch, the terminating structural
// character for RecordValueTerminator.
type Recorder interface {
	InputRecorder
	RecordMatch(idx int, depth Depth, ty MatchedNodeType)
	RecordValueTerminator(idx int, depth Depth)
}
