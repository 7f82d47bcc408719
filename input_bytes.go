package rsonpath

import "bytes"

// BytesInput wraps an in-memory byte slice, padding it to a multiple of
// MaxBlockSize once at construction time so that block iteration never has
// to special-case a short final block. This is the fastest Input to use
// when the whole document is already resident in memory; it is the
// counterpart of the original design's BorrowedBytes/OwnedBytes types.
type BytesInput struct {
	// padded is the original document followed by zero-fill up to a
	// multiple of MaxBlockSize.
	padded []byte
	// logicalLen is the length of the real document, excluding padding.
	logicalLen int
}

// NewBytesInput copies b into a padded buffer suitable for block iteration.
// The input is copied because callers frequently reuse or mutate their
// source buffer; use NewBytesInputNoCopy to avoid the copy when the caller
// guarantees b will not be reused and has spare capacity for padding.
func NewBytesInput(b []byte) *BytesInput {
	padded := make([]byte, len(b), alignedCap(len(b)))
	copy(padded, b)
	padded = padded[:cap(padded)]
	return &BytesInput{padded: padded, logicalLen: len(b)}
}

// NewBytesInputNoCopy wraps b directly, padding in place when b has spare
// capacity and copying only if it does not.
func NewBytesInputNoCopy(b []byte) *BytesInput {
	logicalLen := len(b)
	target := alignedCap(logicalLen)
	if cap(b) >= target {
		b = b[:target]
		for i := logicalLen; i < target; i++ {
			b[i] = 0
		}
		return &BytesInput{padded: b, logicalLen: logicalLen}
	}
	return NewBytesInput(b)
}

func alignedCap(n int) int {
	if n%MaxBlockSize == 0 {
		return n
	}
	return n + (MaxBlockSize - n%MaxBlockSize)
}

// Len implements Input.
func (in *BytesInput) Len() int { return in.logicalLen }

// LeadingPaddingLen implements Input. BytesInput never adds leading padding.
func (in *BytesInput) LeadingPaddingLen() int { return 0 }

// TrailingPaddingLen implements Input.
func (in *BytesInput) TrailingPaddingLen() int { return len(in.padded) - in.logicalLen }

// IterBlocks implements Input.
func (in *BytesInput) IterBlocks() BlockIterator {
	return &bytesBlockIterator{data: in.padded}
}

type bytesBlockIterator struct {
	data []byte
	idx  int
}

func (it *bytesBlockIterator) Next() ([]byte, bool, error) {
	if it.idx >= len(it.data) {
		return nil, false, nil
	}
	block := it.data[it.idx : it.idx+BlockSize]
	it.idx += BlockSize
	return block, true, nil
}

func (it *bytesBlockIterator) Offset() int { return it.idx }

func (it *bytesBlockIterator) Skip(count int) {
	it.idx += count * BlockSize
}

// SeekBackward implements Input.
func (in *BytesInput) SeekBackward(from int, needle byte) int {
	if from >= in.logicalLen {
		from = in.logicalLen - 1
	}
	for i := from; i >= 0; i-- {
		if in.padded[i] == needle {
			return i
		}
	}
	return -1
}

// SeekForward implements Input.
func (in *BytesInput) SeekForward(from int, needles ...byte) (int, byte) {
	for i := from; i < in.logicalLen; i++ {
		c := in.padded[i]
		for _, n := range needles {
			if c == n {
				return i, c
			}
		}
	}
	return -1, 0
}

// SeekNonWhitespaceForward implements Input.
func (in *BytesInput) SeekNonWhitespaceForward(from int) (int, byte, bool) {
	for i := from; i < in.logicalLen; i++ {
		c := in.padded[i]
		if !isASCIIWhitespace(c) {
			return i, c, true
		}
	}
	return 0, 0, false
}

// SeekNonWhitespaceBackward implements Input.
func (in *BytesInput) SeekNonWhitespaceBackward(from int) (int, byte, bool) {
	if from >= in.logicalLen {
		from = in.logicalLen - 1
	}
	for i := from; i >= 0; i-- {
		c := in.padded[i]
		if !isASCIIWhitespace(c) {
			return i, c, true
		}
	}
	return 0, 0, false
}

// IsMemberMatch implements Input. from and to bound the full quoted literal
// (both delimiting quotes included); the byte immediately before from is
// checked to ensure the opening quote itself is not escaped.
func (in *BytesInput) IsMemberMatch(from, to int, name []byte) bool {
	if from < 0 || to > in.logicalLen || to-from != len(name)+2 {
		return false
	}
	if from > 0 && in.padded[from-1] == '\\' {
		return false
	}
	if in.padded[from] != '"' || in.padded[to-1] != '"' {
		return false
	}
	return bytes.Equal(in.padded[from+1:to-1], name)
}

// Bytes returns the logical (unpadded) document bytes.
func (in *BytesInput) Bytes() []byte {
	return in.padded[:in.logicalLen]
}
