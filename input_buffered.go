package rsonpath

import "io"

// BufferedInput reads an entire io.Reader into memory once, then behaves
// exactly like a BytesInput. It is the counterpart of the original design's
// Read-based input: the classifier pipeline has no notion of incremental
// reads, so anything that isn't already a flat byte slice (a file read
// without mmap, or stdin) is funneled through here first.
type BufferedInput struct {
	*BytesInput
}

// NewBufferedInput drains r fully and wraps the result.
func NewBufferedInput(r io.Reader) (*BufferedInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapInputError(err)
	}
	return &BufferedInput{BytesInput: NewBytesInputNoCopy(data)}, nil
}
