package automaton

import "fmt"

// State is a dense identifier of one automaton state. 0 is always the
// rejecting sink; 1 is always the initial state.
type State uint8

// RejectingState is the unique state with no accepting run from it.
const RejectingState State = 0

// InitialState is where query execution begins.
const InitialState State = 1

func (s State) String() string { return fmt.Sprintf("DFA(%d)", uint8(s)) }

// StateAttributes is a bitset of precomputed facts about a state, so the
// engine's hot loop never has to re-derive them by walking a state's
// transition table.
type StateAttributes uint8

const (
	// Accepting marks a state reachable by a complete query match.
	Accepting StateAttributes = 1 << iota
	// Rejecting marks the unique state with no accepting run reachable
	// from it; only RejectingState ever carries this attribute.
	Rejecting
	// Unitary marks a state with exactly one labelled transition and a
	// rejecting fallback: a name/index search that can never be
	// satisfied by any other label. Distinct from the engine's
	// head-skip trigger, which looks for a self-looping fallback
	// instead (see engine.qualifiesForHeadSkip); a Unitary state's
	// fallback is never a self-loop, since only a live descendant
	// selector reproduces itself into its own successor subset.
	Unitary
	// TransitionsToAccepting marks a state with at least one transition
	// (labelled or fallback) leading to an Accepting state.
	TransitionsToAccepting
)

// IsAccepting reports whether Accepting is set.
func (a StateAttributes) IsAccepting() bool { return a&Accepting != 0 }

// IsRejecting reports whether Rejecting is set.
func (a StateAttributes) IsRejecting() bool { return a&Rejecting != 0 }

// IsUnitary reports whether Unitary is set.
func (a StateAttributes) IsUnitary() bool { return a&Unitary != 0 }

// HasTransitionToAccepting reports whether TransitionsToAccepting is set.
func (a StateAttributes) HasTransitionToAccepting() bool { return a&TransitionsToAccepting != 0 }
