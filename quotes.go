package rsonpath

import "math/bits"

// QuoteClassifiedBlock is a block of input decorated with a bitmask of the
// bytes that lie strictly inside an unescaped JSON string. Bit i of
// WithinQuotesMask is set iff the i-th byte of Block is inside a string.
//
// Exactly one of the two delimiting quotes of a string is ever marked: the
// opening quote is included, the closing quote is not. Every consumer of
// this type must respect that boundary convention and must not rely on the
// asymmetry itself for correctness beyond "both ends count as inside a
// string" safety decisions.
type QuoteClassifiedBlock struct {
	Block            []byte
	WithinQuotesMask uint64
}

// Len returns the length of the classified block (always BlockSize, except
// possibly for synthetic call sites in tests).
func (b QuoteClassifiedBlock) Len() int { return len(b.Block) }

// prefixXor computes, for each bit i of mask, the XOR of bits 0..=i. This is
// the portable, branch-free substitute for the "carry-less multiply by an
// all-ones constant" trick mentioned in the design: on a platform with a
// CLMUL instruction the same result is one instruction; here it is six
// shift-xor steps, doubling the run length each time.
func prefixXor(mask uint64) uint64 {
	mask ^= mask << 1
	mask ^= mask << 2
	mask ^= mask << 4
	mask ^= mask << 8
	mask ^= mask << 16
	mask ^= mask << 32
	return mask
}

const evenBits uint64 = 0x5555555555555555
const oddBits uint64 = ^evenBits

// findOddBackslashSequences computes, from a bitmask of backslash
// positions, the mask of bytes that are escaped by an odd-length run of
// backslashes ending immediately before them (i.e. the run has odd parity,
// so the byte right after it is escaped). prevEndsOddBackslash carries a
// single bit across block boundaries: whether the previous block ended in
// the middle of an odd-length backslash run.
//
// This is the standard "find odd-length backslash runs" technique
// referenced by the design: split run-start positions into even/odd-indexed
// subsets, add each back into the backslash mask to propagate a carry past
// the end of every run, then recombine the parities. Grounded on
// find_odd_backslash_sequences_amd64.go / its test fixtures in the teacher
// repository, reimplemented here without assembly.
func findOddBackslashSequences(slashes uint64, prevEndsOddBackslash *uint64) uint64 {
	startEdges := slashes &^ (slashes << 1)

	evenStartMask := evenBits ^ *prevEndsOddBackslash
	evenStarts := startEdges & evenStartMask
	oddStarts := startEdges &^ evenStartMask

	evenCarries := slashes + evenStarts

	oddCarries, carry := bits.Add64(slashes, oddStarts, 0)
	oddCarries |= *prevEndsOddBackslash
	*prevEndsOddBackslash = carry

	evenCarryEnds := evenCarries &^ slashes
	oddCarryEnds := oddCarries &^ slashes
	evenStartOddEnd := evenCarryEnds & oddBits
	oddStartEvenEnd := oddCarryEnds & evenBits

	return evenStartOddEnd | oddStartEvenEnd
}

// byteEquals returns a bitmask with bit i set iff block[i] == c.
func byteEquals(block []byte, c byte) uint64 {
	var mask uint64
	for i, b := range block {
		if b == c {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// quoteBlockState is the carry threaded between consecutive blocks of a
// single QuoteClassifier run.
type quoteBlockState struct {
	prevEndsOddBackslash uint64 // 0 or 1
	prevInsideQuote      uint64 // 0 or all-ones
}

// classify computes the quote-classification of a single BlockSize-byte
// block, given and updating the running carry state.
func (s *quoteBlockState) classify(block []byte) QuoteClassifiedBlock {
	slashes := byteEquals(block, '\\')
	quotes := byteEquals(block, '"')

	escaped := findOddBackslashSequences(slashes, &s.prevEndsOddBackslash)

	nonescapedQuotes := quotes &^ escaped
	withinQuotes := prefixXor(nonescapedQuotes)
	withinQuotes ^= s.prevInsideQuote

	// Broadcast the top bit (the "are we still inside a string at the end
	// of this block" flag) across all 64 bits of the carry for next time.
	s.prevInsideQuote = uint64(int64(withinQuotes) >> 63)

	return QuoteClassifiedBlock{Block: block, WithinQuotesMask: withinQuotes}
}

// QuoteClassifier produces a stream of QuoteClassifiedBlocks over an Input's
// block iterator. It fails only if the underlying block iterator fails.
type QuoteClassifier struct {
	iter  BlockIterator
	state quoteBlockState
}

// NewQuoteClassifier starts classification of quoted sequences from the
// beginning of iter.
func NewQuoteClassifier(iter BlockIterator) *QuoteClassifier {
	return &QuoteClassifier{iter: iter}
}

// Next returns the next classified block, or ok=false at end of input.
func (q *QuoteClassifier) Next() (block QuoteClassifiedBlock, ok bool, err error) {
	raw, ok, err := q.iter.Next()
	if err != nil {
		return QuoteClassifiedBlock{}, false, err
	}
	if !ok {
		return QuoteClassifiedBlock{}, false, nil
	}
	return q.state.classify(raw), true, nil
}

// Offset returns the total byte offset from the beginning of input that the
// next call to Next will read from.
func (q *QuoteClassifier) Offset() int { return q.iter.Offset() }

// FlipQuotesBit inverts the "inside-a-string" carry between blocks. This is
// used by the engine after a forward skip that may have jumped over an odd
// number of unescaped quotes, desynchronizing the classifier's notion of
// whether it is inside a string.
func (q *QuoteClassifier) FlipQuotesBit() {
	q.state.prevInsideQuote = ^q.state.prevInsideQuote
}

// Stop suspends classification, handing block-iterator ownership to the
// returned state so a sibling classifier can resume at exactly this point.
func (q *QuoteClassifier) Stop() ResumeQuoteState {
	return ResumeQuoteState{iter: q.iter, state: q.state}
}

// ResumeQuoteState is a one-shot transfer object produced by
// QuoteClassifier.Stop and consumed by ResumeQuoteClassifier. Using it more
// than once is a programming error: the underlying BlockIterator has been
// handed off and reusing it would duplicate or lose blocks.
type ResumeQuoteState struct {
	iter  BlockIterator
	state quoteBlockState
}

// ResumeQuoteClassifier resumes quote classification from a previously
// stopped state.
func ResumeQuoteClassifier(state ResumeQuoteState) *QuoteClassifier {
	return &QuoteClassifier{iter: state.iter, state: state.state}
}
