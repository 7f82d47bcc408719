package query

import "fmt"

// ArrayIndexULimit is the upper inclusive bound on array index selectors:
// the largest integer an IETF-conforming JSON document can represent
// exactly (2^53 - 1).
const ArrayIndexULimit uint64 = (1 << 53) - 1

// NonNegativeArrayIndex is a validated array index selector, bounded to
// [0, ArrayIndexULimit].
type NonNegativeArrayIndex struct {
	value uint64
}

// NewNonNegativeArrayIndex validates value against ArrayIndexULimit,
// returning ErrArrayIndexOutOfRange if it is exceeded.
func NewNonNegativeArrayIndex(value uint64) (NonNegativeArrayIndex, error) {
	if value > ArrayIndexULimit {
		return NonNegativeArrayIndex{}, &ArrayIndexError{Value: value}
	}
	return NonNegativeArrayIndex{value: value}, nil
}

// Value returns the underlying index.
func (i NonNegativeArrayIndex) Value() uint64 { return i.value }

// Increment returns the next index. The result is always representable:
// incrementing ArrayIndexULimit overflows into a value rejected by
// NewNonNegativeArrayIndex, which callers that increment a running counter
// (the engine's array-index tracker) must check for.
func (i NonNegativeArrayIndex) Increment() NonNegativeArrayIndex {
	return NonNegativeArrayIndex{value: i.value + 1}
}

func (i NonNegativeArrayIndex) String() string {
	return fmt.Sprintf("%d", i.value)
}
