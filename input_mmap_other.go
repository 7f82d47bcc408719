//go:build !unix

package rsonpath

import "os"

// MmapInput on non-unix platforms falls back to a plain read of the whole
// file; there is no portable mmap syscall surface to reach for here.
type MmapInput struct {
	*BytesInput
}

// OpenMmapInput reads path fully into memory.
func OpenMmapInput(path string) (*MmapInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapInputError(err)
	}
	return &MmapInput{BytesInput: NewBytesInput(data)}, nil
}

// Close is a no-op on this backend.
func (m *MmapInput) Close() error { return nil }
