package rsonpath

import "testing"

// The input and expected mask for this test is the worked example from the
// original rsonpath design (classification/quotes.rs's doctest), re-derived
// here byte-by-byte rather than copied, since it is the authoritative
// source for this exact scenario.
func TestQuoteClassifierWorkedExample(t *testing.T) {
	json := `{"x": "string", "y": {"z": "\"escaped\""}}`
	in := NewBytesInput([]byte(json))
	qc := NewQuoteClassifier(in.IterBlocks())

	block, ok, err := qc.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a block")
	}

	const want = uint64(0x7ff8c31fc6)
	if block.WithinQuotesMask != want {
		t.Errorf("got mask 0x%x, want 0x%x", block.WithinQuotesMask, want)
	}
}

func TestQuoteClassifierOpeningQuoteMarkedClosingNot(t *testing.T) {
	in := NewBytesInput([]byte(`  ""` + string(make([]byte, 60))))
	qc := NewQuoteClassifier(in.IterBlocks())
	block, _, _ := qc.Next()

	if block.WithinQuotesMask != 0x4 {
		t.Errorf("got mask 0x%x, want 0x4", block.WithinQuotesMask)
	}
}

func TestQuoteClassifierCarryAcrossBlocks(t *testing.T) {
	// A string that opens in the first block and never closes within it:
	// the in-string carry must propagate so the second block starts
	// entirely "inside quotes".
	first := []byte(`"` + string(repeatByte('a', 63)))
	second := []byte(string(repeatByte('b', 63)) + `"`)
	doc := append(append([]byte{}, first...), second...)

	in := NewBytesInput(doc)
	qc := NewQuoteClassifier(in.IterBlocks())

	b1, ok, err := qc.Next()
	if err != nil || !ok {
		t.Fatalf("unexpected first block result: %v %v", ok, err)
	}
	if b1.WithinQuotesMask != ^uint64(0) {
		t.Errorf("first block mask = 0x%x, want all-ones", b1.WithinQuotesMask)
	}

	b2, ok, err := qc.Next()
	if err != nil || !ok {
		t.Fatalf("unexpected second block result: %v %v", ok, err)
	}
	// All bytes up to (but excluding) the closing quote at index 63 of the
	// second block should read as inside the string.
	want := ^uint64(0) >> 1
	if b2.WithinQuotesMask != want {
		t.Errorf("second block mask = 0x%x, want 0x%x", b2.WithinQuotesMask, want)
	}
}

func TestQuoteClassifierEscapedQuoteDoesNotClose(t *testing.T) {
	// `"a\"b"` - the escaped quote must not be treated as a delimiter.
	json := `"a\"b"` + string(make([]byte, 58))
	in := NewBytesInput([]byte(json))
	qc := NewQuoteClassifier(in.IterBlocks())
	block, _, _ := qc.Next()

	// Bytes 0..4 inclusive are inside the string (opening quote at 0
	// through the 'b' at 4); byte 5 (closing quote) is not.
	for i := 0; i <= 4; i++ {
		if block.WithinQuotesMask&(1<<uint(i)) == 0 {
			t.Errorf("expected bit %d set", i)
		}
	}
	if block.WithinQuotesMask&(1<<5) != 0 {
		t.Error("expected bit 5 (closing quote) unset")
	}
}

func TestQuoteClassifierFlipQuotesBit(t *testing.T) {
	in := NewBytesInput([]byte(string(make([]byte, 64))))
	qc := NewQuoteClassifier(in.IterBlocks())
	qc.FlipQuotesBit()
	if qc.state.prevInsideQuote != ^uint64(0) {
		t.Error("expected carry to be flipped to all-ones")
	}
	qc.FlipQuotesBit()
	if qc.state.prevInsideQuote != 0 {
		t.Error("expected carry to be flipped back to zero")
	}
}

func TestQuoteClassifierStopResume(t *testing.T) {
	json := `{"a": [42, 36, { "b": { "c": 1, "d": 2 } }]}`
	padded := make([]byte, 128)
	copy(padded, json)

	in := NewBytesInput(padded)
	qc := NewQuoteClassifier(in.IterBlocks())

	b1, _, _ := qc.Next()
	state := qc.Stop()

	resumed := ResumeQuoteClassifier(state)
	b2, ok, err := resumed.Next()
	if err != nil || !ok {
		t.Fatalf("unexpected resume result: %v %v", ok, err)
	}
	_ = b1
	_ = b2
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
