package result

// CountRecorder is the cheapest Recorder: it only tallies how many matches
// were reported, never retaining a match's bytes or even its offset.
type CountRecorder struct {
	count uint64
}

// NewCountRecorder returns a fresh CountRecorder.
func NewCountRecorder() *CountRecorder { return &CountRecorder{} }

// RecordBlockEnd implements InputRecorder. CountRecorder needs no per-block
// bookkeeping.
func (r *CountRecorder) RecordBlockEnd(block []byte) {}

// RecordMatch implements Recorder.
func (r *CountRecorder) RecordMatch(idx int, depth Depth, ty MatchedNodeType) {
	r.count++
}

// RecordValueTerminator implements Recorder. Counting does not need to
// track where a matched value ends.
func (r *CountRecorder) RecordValueTerminator(idx int, depth Depth) {}

// Finish returns the number of matches recorded.
func (r *CountRecorder) Finish() uint64 { return r.count }
