package query

// SelectorKind discriminates the three selector shapes the parser and
// automaton builder recognise. Filters, slices, and unions are not part of
// this grammar.
type SelectorKind int

const (
	// Name selects a single object member by its exact name.
	Name SelectorKind = iota
	// Index selects a single array element by its position.
	Index
	// Wildcard selects every child of an object or array.
	Wildcard
)

func (k SelectorKind) String() string {
	switch k {
	case Name:
		return "name"
	case Index:
		return "index"
	case Wildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Selector is one segment of a parsed JSONPath query: either a direct child
// selector (".a", "[2]", "[*]") or a descendant selector ("..a", "..*"),
// distinguished by Descendant.
type Selector struct {
	Kind       SelectorKind
	Descendant bool

	name  string
	index NonNegativeArrayIndex
}

// NameSelector builds a Name selector.
func NameSelector(name string, descendant bool) Selector {
	return Selector{Kind: Name, Descendant: descendant, name: name}
}

// IndexSelector builds an Index selector.
func IndexSelector(idx NonNegativeArrayIndex, descendant bool) Selector {
	return Selector{Kind: Index, Descendant: descendant, index: idx}
}

// WildcardSelector builds a Wildcard selector.
func WildcardSelector(descendant bool) Selector {
	return Selector{Kind: Wildcard, Descendant: descendant}
}

// Name returns the member name of a Name selector; undefined for other
// kinds.
func (s Selector) Name() string { return s.name }

// Index returns the array index of an Index selector; undefined for other
// kinds.
func (s Selector) Index() NonNegativeArrayIndex { return s.index }

// Label returns the automaton Label this selector matches against, and
// false if the selector is a Wildcard (wildcards have no label: they match
// the fallback transition of every state, never a labelled one).
func (s Selector) Label() (Label, bool) {
	switch s.Kind {
	case Name:
		return NameLabel(s.name), true
	case Index:
		return IndexLabel(s.index), true
	default:
		return Label{}, false
	}
}

// JSONPathQuery is a parsed query: the root "$" followed by a chain of
// selectors, each either a direct child or a descendant search. This
// grammar subset (no unions, slices, or filter expressions) is what the
// automaton compiler understands.
type JSONPathQuery struct {
	selectors []Selector
	raw       string
}

// Selectors returns the query's selector chain in the order they must be
// matched, root-to-leaf.
func (q *JSONPathQuery) Selectors() []Selector { return q.selectors }

// IsTrivial reports whether this query is the empty root query "$", which
// matches only the document's top-level value.
func (q *JSONPathQuery) IsTrivial() bool { return len(q.selectors) == 0 }

// String returns the original query text the JSONPathQuery was parsed from.
func (q *JSONPathQuery) String() string { return q.raw }
