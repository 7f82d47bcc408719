package result

// IndexRecorder records the start offset of every match, in the order the
// engine reports them (which is always strictly ascending, per the
// classifier pipeline's ordering guarantee).
type IndexRecorder struct {
	indices []int
}

// NewIndexRecorder returns a fresh IndexRecorder.
func NewIndexRecorder() *IndexRecorder { return &IndexRecorder{} }

// RecordBlockEnd implements InputRecorder. IndexRecorder needs no per-block
// bookkeeping: it only ever stores offsets already known at RecordMatch
// time.
func (r *IndexRecorder) RecordBlockEnd(block []byte) {}

// RecordMatch implements Recorder.
func (r *IndexRecorder) RecordMatch(idx int, depth Depth, ty MatchedNodeType) {
	r.indices = append(r.indices, idx)
}

// RecordValueTerminator implements Recorder.
func (r *IndexRecorder) RecordValueTerminator(idx int, depth Depth) {}

// Finish returns the recorded match offsets.
func (r *IndexRecorder) Finish() []int { return r.indices }
