package result

// NodesRecorder is the heaviest recorder: it copies the bytes of every
// matched value into its own buffer, reassembling spans that straddle
// multiple input blocks. A match opens a partial node on RecordMatch and
// closes it on the RecordValueTerminator whose depth first falls to or
// below the depth the node was opened at; RecordBlockEnd is what actually
// copies bytes, since a node may still be open when its block ends.
type NodesRecorder struct {
	idx      int
	stack    []*partialNode
	ready    []*preparedNode
	finished [][]byte
}

type partialNode struct {
	startIdx   int
	startDepth Depth
	buf        []byte
	ty         MatchedNodeType
}

type preparedNode struct {
	startIdx int
	endIdx   int
	buf      []byte
	ty       MatchedNodeType
}

// NewNodesRecorder returns a fresh NodesRecorder.
func NewNodesRecorder() *NodesRecorder { return &NodesRecorder{} }

// RecordMatch implements Recorder: it opens a partial node, to be closed by
// a later RecordValueTerminator.
func (r *NodesRecorder) RecordMatch(idx int, depth Depth, ty MatchedNodeType) {
	r.stack = append(r.stack, &partialNode{startIdx: idx, startDepth: depth, ty: ty})
}

// RecordValueTerminator implements Recorder: it closes every open node
// whose start depth is at or above depth, since a structural character at
// this depth or shallower marks the end of all of them.
func (r *NodesRecorder) RecordValueTerminator(idx int, depth Depth) {
	for len(r.stack) > 0 {
		top := r.stack[len(r.stack)-1]
		if top.startDepth < depth {
			break
		}
		r.stack = r.stack[:len(r.stack)-1]
		r.ready = append(r.ready, &preparedNode{startIdx: top.startIdx, endIdx: idx + 1, buf: top.buf, ty: top.ty})
	}
}

// RecordBlockEnd implements InputRecorder: it copies block's bytes into
// every node whose span overlaps it, finalizing (and trimming, for atomic
// values) any node whose span ends within this block.
func (r *NodesRecorder) RecordBlockEnd(block []byte) {
	for _, node := range r.ready {
		appendFinalSlice(&node.buf, block, r.idx, node.startIdx, node.endIdx)
		r.finished = append(r.finished, finalizeNode(node))
	}
	r.ready = r.ready[:0]

	for _, node := range r.stack {
		appendSlice(&node.buf, block, r.idx, node.startIdx)
	}

	r.idx += len(block)
}

// Finish returns the byte spans of every matched value, in match order.
func (r *NodesRecorder) Finish() [][]byte { return r.finished }

// appendSlice extends dest with the portion of src (a block starting at
// absolute offset srcStart) at or after readStart, for a node still open at
// block end.
func appendSlice(dest *[]byte, src []byte, srcStart, readStart int) {
	if readStart >= srcStart+len(src) {
		return
	}
	if readStart > srcStart {
		*dest = append(*dest, src[readStart-srcStart:]...)
		return
	}
	*dest = append(*dest, src...)
}

// appendFinalSlice extends dest with src[readStart:readEnd] (clamped to
// this block), for a node whose closing terminator falls within src.
func appendFinalSlice(dest *[]byte, src []byte, srcStart, readStart, readEnd int) {
	inBlockStart := 0
	if readStart > srcStart {
		inBlockStart = readStart - srcStart
	}
	inBlockEnd := readEnd - srcStart
	*dest = append(*dest, src[inBlockStart:inBlockEnd]...)
}

// finalizeNode trims an Atomic node's buffer: RecordValueTerminator's span
// includes the terminating structural character and any whitespace before
// it, neither of which is part of the matched value.
func finalizeNode(n *preparedNode) []byte {
	buf := n.buf
	if n.ty != Atomic || len(buf) < 2 {
		return buf
	}
	i := len(buf) - 2
	for i > 0 && isTrimmableWhitespace(buf[i]) {
		i--
	}
	return buf[:i+1]
}

func isTrimmableWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
