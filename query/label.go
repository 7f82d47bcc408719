// Package query holds the JSONPath query representation consumed by the
// automaton compiler: a parsed selector chain plus the Label type the
// automaton's transition tables are keyed on.
package query

import "fmt"

// Label is what an automaton transition matches against: either a member
// name (its unescaped string content), or a non-negative array index. Exactly
// one of the two is meaningful for a given Label; IsIndex reports which.
type Label struct {
	name    string
	index   NonNegativeArrayIndex
	isIndex bool
}

// NameLabel builds a Label matching the member name name (unescaped, i.e.
// the logical string content, not its quoted JSON representation).
func NameLabel(name string) Label {
	return Label{name: name}
}

// IndexLabel builds a Label matching array index idx.
func IndexLabel(idx NonNegativeArrayIndex) Label {
	return Label{index: idx, isIndex: true}
}

// IsIndex reports whether this Label matches an array index rather than a
// member name.
func (l Label) IsIndex() bool { return l.isIndex }

// Name returns the member name this Label matches and true, or ("", false)
// if this Label is an index label.
func (l Label) Name() (string, bool) {
	if l.isIndex {
		return "", false
	}
	return l.name, true
}

// Index returns the array index this Label matches and true, or the zero
// index and false if this Label is a name label.
func (l Label) Index() (NonNegativeArrayIndex, bool) {
	if !l.isIndex {
		return NonNegativeArrayIndex{}, false
	}
	return l.index, true
}

// Equal reports whether two labels match the same name or the same index.
func (l Label) Equal(other Label) bool {
	if l.isIndex != other.isIndex {
		return false
	}
	if l.isIndex {
		return l.index == other.index
	}
	return l.name == other.name
}

func (l Label) String() string {
	if l.isIndex {
		return fmt.Sprintf("[%s]", l.index)
	}
	return fmt.Sprintf("%q", l.name)
}
