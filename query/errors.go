package query

import (
	"errors"
	"fmt"
)

// ErrArrayIndexOutOfRange marks an array index selector that exceeds
// ArrayIndexULimit.
var ErrArrayIndexOutOfRange = errors.New("query: array index exceeds the safe integer range")

// ArrayIndexError carries the offending value for ErrArrayIndexOutOfRange.
type ArrayIndexError struct {
	Value uint64
}

func (e *ArrayIndexError) Error() string {
	return fmt.Sprintf("query: array index %d exceeds the upper limit %d", e.Value, ArrayIndexULimit)
}

func (e *ArrayIndexError) Is(target error) bool {
	return target == ErrArrayIndexOutOfRange
}

// ParseError marks a malformed JSONPath query string. From and To bound the
// offending token as a byte range into the original query string, so a
// caller (the CLI) can underline exactly the span that failed to parse.
type ParseError struct {
	Query    string
	From, To int
	Msg      string
}

func (e *ParseError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("query: %s (at byte %d)", e.Msg, e.From)
	}
	return fmt.Sprintf("query: %s (bytes %d..%d)", e.Msg, e.From, e.To)
}
