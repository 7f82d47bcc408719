package rsonpath

// FindMemberNameOccurrence searches the input forward from from for the
// next occurrence of a quoted member name (the bytes '"', name, '"'
// inclusive), rejecting any candidate whose opening quote is itself
// escaped. It returns the offset of the opening quote, or -1 if no further
// occurrence exists.
//
// This backs the engine's head-skip check (4.4): the engine only uses a -1
// result, to skip the current subtree when the required member name does not
// occur anywhere later in the input. It does not jump ahead to a found
// occurrence; structural classification continues from the current position.
func FindMemberNameOccurrence(in Input, from int, name []byte) int {
	candidate := from
	for {
		idx, _ := in.SeekForward(candidate, '"')
		if idx < 0 {
			return -1
		}
		end := idx + 1 + len(name) + 1
		if in.IsMemberMatch(idx, end, name) {
			return idx
		}
		candidate = idx + 1
	}
}
