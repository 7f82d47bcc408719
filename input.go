package rsonpath

// Input is the collaborator contract for a conceptually padded byte
// sequence: it must support block-by-block iteration plus the seeking
// primitives the engine needs to resolve member names and skip whitespace
// without re-scanning the whole document.
//
// Parsing JSONPath, file/mmap loading strategy, and buffering policy are
// all out of scope for the classifier core; Input is the seam across which
// those concerns are injected. BytesInput (input_bytes.go), BufferedInput
// (input_buffered.go) and MmapInput (input_mmap.go) are the implementations
// provided; the latter two wrap a BytesInput.
type Input interface {
	// IterBlocks returns a fresh BlockIterator over this input, producing
	// exactly BlockSize-byte blocks with zero-filled trailing padding.
	IterBlocks() BlockIterator

	// SeekBackward searches backward from (and including) from for the
	// first occurrence of needle. Returns -1 if none is found.
	SeekBackward(from int, needle byte) int

	// SeekForward searches forward from from for the first occurrence of
	// any byte in needles. Returns the offset and the byte found, or
	// (-1, 0) if none of the needles occur before the end of input.
	SeekForward(from int, needles ...byte) (int, byte)

	// SeekNonWhitespaceForward returns the offset and value of the first
	// byte at or after from that is not ASCII whitespace.
	SeekNonWhitespaceForward(from int) (int, byte, bool)

	// SeekNonWhitespaceBackward returns the offset and value of the first
	// byte at or before from (searching backward) that is not ASCII
	// whitespace.
	SeekNonWhitespaceBackward(from int) (int, byte, bool)

	// IsMemberMatch reports whether input[from:to) is exactly the quoted
	// byte representation of name, '"' + name + '"' (from is the index of
	// the opening quote, to the index just past the closing quote), and
	// additionally verifies that the byte preceding from is not a
	// backslash (i.e. the opening quote is not itself escaped).
	IsMemberMatch(from, to int, name []byte) bool

	// Len returns the logical (unpadded) length of the input in bytes.
	Len() int

	// LeadingPaddingLen and TrailingPaddingLen report how many synthetic
	// padding bytes were added at the start/end of the input, respectively,
	// to satisfy block-alignment guarantees.
	LeadingPaddingLen() int
	TrailingPaddingLen() int
}

// BlockIterator yields fixed BlockSize-byte blocks of an Input. Implementors
// must guarantee every returned block is exactly BlockSize bytes, with
// trailing zero padding past the logical end of input.
type BlockIterator interface {
	// Next returns the next block, or ok=false when the input is exhausted.
	// err is non-nil only when the underlying source failed to produce
	// data (wraps ErrInput).
	Next() (block []byte, ok bool, err error)

	// Offset returns the total byte offset from the start of input that
	// the next call to Next will read from.
	Offset() int

	// Skip advances the iterator by count full blocks without reading them.
	Skip(count int)
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
