package rsonpath

// BlockSize is the width, in bytes, of a single block processed by the
// classifier pipeline. The original design allows N in {32, 64, 128}
// depending on the SIMD backend (SSE2/AVX2/AVX512 register widths); this
// portable implementation fixes N at 64 and carries state across blocks
// as a single uint64 bitmask per block, matching the teacher's own AVX2
// block width (see stage1_find_marks.go, which hardcodes 64-byte chunks).
const BlockSize = 64

// MaxBlockSize is the widest block size any backend could request. Input
// padding is always performed up to a multiple of this value so that a
// future wider backend never reads uninitialized memory.
const MaxBlockSize = 128

// padTo returns b padded with zero bytes until its length is a multiple of
// multiple. If b is already aligned, it is returned unchanged (no copy).
func padTo(b []byte, multiple int) []byte {
	rem := len(b) % multiple
	if rem == 0 {
		return b
	}
	padded := make([]byte, len(b)+(multiple-rem))
	copy(padded, b)
	return padded
}
