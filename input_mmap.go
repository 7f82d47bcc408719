//go:build unix

package rsonpath

import (
	"os"
	"syscall"
)

// MmapInput maps a file into memory and exposes it as an Input, matching the
// original design's MmapInput. The mapped bytes are copied once into a
// zero-padded BytesInput buffer on the Go heap; the mapping itself is kept
// until Close.
//
// No pack dependency offers a ready-made mmap wrapper for JSON-shaped data,
// so this one calls directly into syscall, same as the stdlib's own
// approach in comparable tools; see DESIGN.md.
type MmapInput struct {
	*BytesInput
	raw []byte
}

// OpenMmapInput maps path into memory for reading.
func OpenMmapInput(path string) (*MmapInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapInputError(err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, wrapInputError(err)
	}
	size := int(fi.Size())
	if size == 0 {
		return &MmapInput{BytesInput: NewBytesInput(nil)}, nil
	}

	raw, err := syscall.Mmap(int(f.Fd()), 0, size, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, wrapInputError(err)
	}

	return &MmapInput{
		BytesInput: NewBytesInput(raw),
		raw:        raw,
	}, nil
}

// Close unmaps the underlying file.
func (m *MmapInput) Close() error {
	if m.raw == nil {
		return nil
	}
	err := syscall.Munmap(m.raw)
	m.raw = nil
	return err
}
