package rsonpath

import "testing"

func depthBlockOver(t *testing.T, json string) *DepthBlock {
	t.Helper()
	padded := make([]byte, 64)
	copy(padded, json)
	in := NewBytesInput(padded)
	qc := NewQuoteClassifier(in.IterBlocks())
	qb, ok, err := qc.Next()
	if err != nil || !ok {
		t.Fatalf("unexpected: %v %v", ok, err)
	}
	return NewDepthBlock(qb, 0)
}

func TestDepthBlockFlatDocument(t *testing.T) {
	// `[1, 2, 3]` - one opening, one closing, nothing nested.
	d := depthBlockOver(t, `[1, 2, 3]`)

	if got := d.EstimateLowestPossibleDepth(); got != -1 {
		t.Errorf("estimate before any advance = %d, want -1 (one closing bracket pending)", got)
	}
	if !d.AdvanceToNextDepthDecrease() {
		t.Fatal("expected a depth decrease (the closing bracket)")
	}
	if got := d.GetDepth(); got != 0 {
		t.Errorf("depth after closing bracket = %d, want 0", got)
	}
	if d.AdvanceToNextDepthDecrease() {
		t.Error("did not expect a second depth decrease")
	}
}

func TestDepthBlockNested(t *testing.T) {
	// `{"a": [1, [2, 3]]}` - balanced, so depth returns to 0 at the end.
	d := depthBlockOver(t, `{"a": [1, [2, 3]]}`)
	if got := d.DepthAtEnd(); got != 0 {
		t.Errorf("depth at end = %d, want 0 (balanced document)", got)
	}
}

func TestDepthBlockWithinQuotesExcluded(t *testing.T) {
	// A string value containing literal brackets must not affect depth.
	d := depthBlockOver(t, `{"a": "[{}]"}`)
	if got := d.DepthAtEnd(); got != 0 {
		t.Errorf("depth at end = %d, want 0: brackets inside the string must not count", got)
	}
}

func TestDepthBlockAddDepth(t *testing.T) {
	d := depthBlockOver(t, `]`)
	d.AddDepth(5)
	if got := d.GetDepth(); got != 5 {
		t.Errorf("GetDepth before advance = %d, want 5 (carried-over depth)", got)
	}
	d.AdvanceToNextDepthDecrease()
	if got := d.GetDepth(); got != 4 {
		t.Errorf("GetDepth after one closing bracket = %d, want 4", got)
	}
}

// TestDepthClassifierSkipProtocol exercises the handoff from a
// StructuralClassifier mid-block to a DepthClassifier and back, the same
// sequence the engine performs to skip a balanced subtree.
func TestDepthClassifierSkipProtocol(t *testing.T) {
	json := `{"a": [42, 36, { "b": { "c": 1, "d": 2 } }]}`
	padded := make([]byte, 128)
	copy(padded, json)

	in := NewBytesInput(padded)
	qc := NewQuoteClassifier(in.IterBlocks())
	s := NewStructuralClassifier(qc)
	s.TurnCommasOn(0)

	// Consume up through the Opening at index 6 (the '[' starting the
	// array), then enter skip mode to walk past the whole array value.
	var last Structural
	for i := 0; i < 3; i++ {
		ev, ok, err := s.Next()
		if err != nil || !ok {
			t.Fatalf("unexpected: %v %v", ok, err)
		}
		last = ev
	}
	if last != (Structural{Opening, 6}) {
		t.Fatalf("got %+v, want Opening(6)", last)
	}

	structState := s.Stop()
	dc := ResumeDepthClassification(structState)

	depth := 1 // one unmatched '[' already seen by the engine
	var db *DepthBlock
	for {
		var ok bool
		var err error
		db, ok, err = dc.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("ran out of input before depth reached zero")
		}
		db.AddDepth(depth)
		if db.EstimateLowestPossibleDepth() > 0 {
			depth = db.DepthAtEnd()
			continue
		}
		for db.GetDepth() > 0 {
			if !db.AdvanceToNextDepthDecrease() {
				break
			}
		}
		if db.GetDepth() <= 0 {
			break
		}
		depth = db.GetDepth()
	}

	resumeState := dc.Stop(db)
	resumed := ResumeStructuralClassifier(resumeState)
	ev, ok, err := resumed.Next()
	if err != nil || !ok {
		t.Fatalf("unexpected resume result: %v %v", ok, err)
	}
	if ev.Kind != Closing {
		t.Errorf("first event after skip = %+v, want the Closing that ends the outer object", ev)
	}
}
