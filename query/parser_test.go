package query

import "testing"

func TestParseTrivialQuery(t *testing.T) {
	q, err := Parse("$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.IsTrivial() {
		t.Error("expected $ to be trivial")
	}
	if len(q.Selectors()) != 0 {
		t.Errorf("len(Selectors()) = %d, want 0", len(q.Selectors()))
	}
}

func TestParseSingleChildName(t *testing.T) {
	q, err := Parse("$.a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sels := q.Selectors()
	if len(sels) != 1 {
		t.Fatalf("len(Selectors()) = %d, want 1", len(sels))
	}
	if sels[0].Kind != Name || sels[0].Descendant || sels[0].Name() != "a" {
		t.Errorf("got %+v, want child name selector \"a\"", sels[0])
	}
}

func TestParseDescendantChain(t *testing.T) {
	q, err := Parse("$..a..b.c..d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sels := q.Selectors()
	want := []struct {
		name       string
		descendant bool
	}{
		{"a", true},
		{"b", true},
		{"c", false},
		{"d", true},
	}
	if len(sels) != len(want) {
		t.Fatalf("len(Selectors()) = %d, want %d", len(sels), len(want))
	}
	for i, w := range want {
		if sels[i].Kind != Name || sels[i].Name() != w.name || sels[i].Descendant != w.descendant {
			t.Errorf("selector %d = %+v, want name=%q descendant=%v", i, sels[i], w.name, w.descendant)
		}
	}
}

func TestParseDescendantPersonPhoneNumber(t *testing.T) {
	q, err := Parse("$..person..phoneNumber..number")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sels := q.Selectors()
	wantNames := []string{"person", "phoneNumber", "number"}
	if len(sels) != len(wantNames) {
		t.Fatalf("len(Selectors()) = %d, want %d", len(sels), len(wantNames))
	}
	for i, name := range wantNames {
		if !sels[i].Descendant || sels[i].Name() != name {
			t.Errorf("selector %d = %+v, want descendant name %q", i, sels[i], name)
		}
	}
}

func TestParseArrayIndex(t *testing.T) {
	q, err := Parse("$[2]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sels := q.Selectors()
	if len(sels) != 1 || sels[0].Kind != Index || sels[0].Index().Value() != 2 {
		t.Errorf("got %+v, want child index selector 2", sels)
	}
}

func TestParseArrayIndexOutOfRange(t *testing.T) {
	_, err := Parse("$[18014398509481984]") // 2^54, one bit above the limit
	if err == nil {
		t.Fatal("expected a parse error for an out-of-range index")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.From != 2 {
		t.Errorf("ParseError.From = %d, want 2", pe.From)
	}
}

func TestParseWildcard(t *testing.T) {
	for _, raw := range []string{"$.*", "$[*]", "$..*"} {
		q, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", raw, err)
		}
		sels := q.Selectors()
		if len(sels) != 1 || sels[0].Kind != Wildcard {
			t.Errorf("Parse(%q) = %+v, want a single wildcard selector", raw, sels)
		}
	}
	q, err := Parse("$..*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Selectors()[0].Descendant {
		t.Error("$..* selector should be marked Descendant")
	}
}

func TestParseBracketQuotedName(t *testing.T) {
	for _, raw := range []string{`$['a']`, `$["a"]`} {
		q, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", raw, err)
		}
		sels := q.Selectors()
		if len(sels) != 1 || sels[0].Kind != Name || sels[0].Name() != "a" {
			t.Errorf("Parse(%q) = %+v, want child name selector \"a\"", raw, sels)
		}
	}
}

// TestParseQuotedMemberNameWithEmbeddedQuote covers $['\"x'], whose escaped
// quote names a member literally called `"x` (a double quote followed by
// x), distinct from the plain member "x".
func TestParseQuotedMemberNameWithEmbeddedQuote(t *testing.T) {
	raw := `$['\"x']`
	q, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sels := q.Selectors()
	if len(sels) != 1 || sels[0].Kind != Name {
		t.Fatalf("got %+v, want a single name selector", sels)
	}
	if got := sels[0].Name(); got != `"x` {
		t.Errorf("Name() = %q, want %q", got, `"x`)
	}
}

func TestParseRejectsMissingRoot(t *testing.T) {
	if _, err := Parse("a.b"); err == nil {
		t.Error("expected an error for a query missing the leading '$'")
	}
}

func TestParseRejectsUnterminatedBracket(t *testing.T) {
	if _, err := Parse("$[1"); err == nil {
		t.Error("expected an error for an unterminated bracket")
	}
}

func TestParseRejectsEmptyQuery(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("expected an error for an empty query")
	}
}

func TestParseErrorMessageFormat(t *testing.T) {
	_, err := Parse("x")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}
