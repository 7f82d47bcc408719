package rsonpath

import "math/bits"

// bracketMask returns a bitmask with bit i set iff block[i] == a || block[i] == b.
func bracketMask(block []byte, a, b byte) uint64 {
	var mask uint64
	for i, c := range block {
		if c == a || c == b {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// lowBits returns a mask of bits 0..=i inclusive. i == -1 yields the empty
// mask (nothing processed yet).
func lowBits(i int) uint64 {
	if i < 0 {
		return 0
	}
	if i >= 63 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(i+1)) - 1
}

// DepthBlock decorates one block of input with the bitmasks of its opening
// and closing bracket positions (quote-masked) and a cursor that can be
// advanced one closing bracket at a time, so the engine can skip a balanced
// subtree without inspecting every intervening byte.
//
// Depth here is tracked relative to the start of the block; AddDepth lets
// the engine fold in the absolute depth carried over from prior blocks
// without recomputing from the beginning of input.
//
// A single DepthBlock tracks both container kinds ('{'/'}' and '['/']')
// together, since valid JSON nests them interchangeably and the engine's
// skip protocol only cares about the aggregate nesting level, never which
// bracket shape produced it.
//
// colonMask and commaMask are carried alongside the bracket masks purely so
// that, once the skip terminates mid-block, the remaining portion of this
// same block can be handed back to a StructuralClassifier without having to
// re-scan the raw bytes or retain them here.
type DepthBlock struct {
	base        int // absolute offset of this block's first byte
	openingMask uint64
	closingMask uint64
	colonMask   uint64
	commaMask   uint64
	length      int
	cursor      int // index (within the block) of the last position folded into depth; -1 initially
	depth       int // running depth, relative to the block's start
}

// NewDepthBlock builds a DepthBlock over one quote-classified block.
func NewDepthBlock(qb QuoteClassifiedBlock, base int) *DepthBlock {
	openClose, colon, comma := structuralMasks(qb.Block)
	openM := openClose & bracketMask(qb.Block, '{', '[')
	closeM := openClose & bracketMask(qb.Block, '}', ']')
	return &DepthBlock{
		base:        base,
		openingMask: openM &^ qb.WithinQuotesMask,
		closingMask: closeM &^ qb.WithinQuotesMask,
		colonMask:   colon &^ qb.WithinQuotesMask,
		commaMask:   comma &^ qb.WithinQuotesMask,
		length:      len(qb.Block),
		cursor:      -1,
	}
}

// newDepthBlockFromStructural builds a DepthBlock directly from a
// structural block's already-quote-masked per-kind bitmasks, used when
// taking over a partially consumed block from a StructuralClassifier at the
// start of the skip protocol. b.lastIdx is the index of the last byte
// already accounted for by the caller (-1 if none); bits at or before it
// are excluded from further counting.
func newDepthBlockFromStructural(b *resumeStructuralBlockState) *DepthBlock {
	already := lowBits(b.lastIdx)
	return &DepthBlock{
		base:        b.base,
		openingMask: b.openMask &^ already,
		closingMask: b.closeMask &^ already,
		colonMask:   b.colonMask &^ already,
		commaMask:   b.commaMask &^ already,
		length:      b.length,
		cursor:      b.lastIdx,
	}
}

// Len returns the length of the decorated block.
func (d *DepthBlock) Len() int { return d.length }

// GetDepth returns the running depth (relative to block start) at the
// cursor's current position.
func (d *DepthBlock) GetDepth() int { return d.depth }

// EstimateLowestPossibleDepth returns a lower bound on the depth this block
// could still reach between the cursor and the end of the block: the
// current depth minus the count of all remaining closing brackets. If this
// bound is not <= the target the engine is waiting for, the whole remainder
// of the block can be skipped without inspecting individual brackets.
func (d *DepthBlock) EstimateLowestPossibleDepth() int {
	remainder := d.closingMask &^ lowBits(d.cursor)
	return d.depth - bits.OnesCount64(remainder)
}

// AdvanceToNextDepthDecrease moves the cursor to the next closing-bracket
// position after the current one, folding in every opening and closing
// bracket between the old and new cursor positions, and reports whether
// such a position existed.
func (d *DepthBlock) AdvanceToNextDepthDecrease() bool {
	remainder := d.closingMask &^ lowBits(d.cursor)
	if remainder == 0 {
		return false
	}
	next := bits.TrailingZeros64(remainder)
	span := lowBits(next) &^ lowBits(d.cursor)
	opens := bits.OnesCount64(d.openingMask & span)
	closes := bits.OnesCount64(d.closingMask & span)
	d.depth += opens - closes
	d.cursor = next
	return true
}

// DepthAtEnd consumes the rest of the block and returns the depth (relative
// to block start) reached at its final byte.
func (d *DepthBlock) DepthAtEnd() int {
	span := lowBits(d.length-1) &^ lowBits(d.cursor)
	opens := bits.OnesCount64(d.openingMask & span)
	closes := bits.OnesCount64(d.closingMask & span)
	d.cursor = d.length - 1
	d.depth += opens - closes
	return d.depth
}

// AddDepth folds an externally carried depth offset (typically the absolute
// depth accumulated before this block) into the running depth.
func (d *DepthBlock) AddDepth(delta int) { d.depth += delta }

// asResumeStructuralBlock packages the unconsumed tail of this block (after
// the cursor) for handback to a StructuralClassifier once a skip completes
// mid-block.
func (d *DepthBlock) asResumeStructuralBlock() *resumeStructuralBlockState {
	if d.cursor >= d.length-1 {
		return nil
	}
	return &resumeStructuralBlockState{
		openMask:  d.openingMask,
		closeMask: d.closingMask,
		colonMask: d.colonMask,
		commaMask: d.commaMask,
		base:      d.base,
		lastIdx:   d.cursor,
		length:    d.length,
	}
}

// DepthClassifier produces a stream of DepthBlocks over a quote-classified
// block iterator. It is used by the engine's skip protocol: the structural
// classifier is paused and its state handed to a DepthClassifier to walk
// past a subtree the engine does not need to inspect byte by byte.
type DepthClassifier struct {
	quotes  *QuoteClassifier
	pending *DepthBlock // a carried-over partial block from a structural handoff, consumed on first Next
}

// NewDepthClassifier begins depth classification from the current position
// of a (possibly resumed) quote classifier.
func NewDepthClassifier(quotes *QuoteClassifier) *DepthClassifier {
	return &DepthClassifier{quotes: quotes}
}

// ResumeDepthClassification begins the skip protocol: it consumes a
// ResumeStructuralState produced by StructuralClassifier.Stop and returns a
// DepthClassifier positioned exactly where structural classification left
// off, including the remainder of any block that was only partially
// consumed when the structural classifier was stopped.
func ResumeDepthClassification(state ResumeStructuralState) *DepthClassifier {
	c := &DepthClassifier{quotes: ResumeQuoteClassifier(state.quoteState)}
	if b := state.block; b != nil {
		c.pending = newDepthBlockFromStructural(b)
	}
	return c
}

// Next returns the next DepthBlock, or ok=false at end of input.
func (c *DepthClassifier) Next() (*DepthBlock, bool, error) {
	if c.pending != nil {
		block := c.pending
		c.pending = nil
		return block, true, nil
	}
	base := c.quotes.Offset()
	qb, ok, err := c.quotes.Next()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return NewDepthBlock(qb, base), true, nil
}

// Offset returns the total byte offset from the start of input that the
// next freshly-fetched block (i.e. ignoring any pending carried-over
// partial block) will start at.
func (c *DepthClassifier) Offset() int { return c.quotes.Offset() }

// Stop suspends depth classification once current's cursor has reached the
// target depth, handing both block-iterator ownership and (if current
// stopped mid-block) the unconsumed tail of that block to a
// StructuralClassifier so it can resume exactly at the skip's end.
func (c *DepthClassifier) Stop(current *DepthBlock) ResumeStructuralState {
	var blockState *resumeStructuralBlockState
	if current != nil {
		blockState = current.asResumeStructuralBlock()
	}
	return ResumeStructuralState{quoteState: c.quotes.Stop(), block: blockState}
}
