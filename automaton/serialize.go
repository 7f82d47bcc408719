package automaton

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/rsonpath-go/rsonpath/query"
)

// serializeFormatVersion guards against loading a cache file written by an
// incompatible build; bump it whenever the encoding below changes shape.
const serializeFormatVersion uint8 = 1

const (
	labelKindName  uint8 = 0
	labelKindIndex uint8 = 1
)

// MarshalBinary encodes a as a flat, versioned byte stream: a state count
// followed by each state's labelled transitions, fallback and attributes,
// in Transitions(State) order. Used by internal/automatoncache to stamp a
// reusable on-disk artifact for a compiled query.
func (a *Automaton) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(serializeFormatVersion)
	writeUvarint(&buf, uint64(len(a.states)))

	for _, t := range a.states {
		writeUvarint(&buf, uint64(len(t.labelled)))
		for _, tr := range t.labelled {
			if idx, ok := tr.label.Index(); ok {
				buf.WriteByte(labelKindIndex)
				writeUvarint(&buf, idx.Value())
			} else {
				name, _ := tr.label.Name()
				buf.WriteByte(labelKindName)
				writeUvarint(&buf, uint64(len(name)))
				buf.WriteString(name)
			}
			buf.WriteByte(byte(tr.state))
		}
		buf.WriteByte(byte(t.fallback))
		buf.WriteByte(byte(t.attrs))
	}

	return buf.Bytes(), nil
}

// UnmarshalAutomaton reverses MarshalBinary, rebuilding an *Automaton ready
// for Transitions lookups without re-running Compile.
func UnmarshalAutomaton(data []byte) (*Automaton, error) {
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("automaton: read version: %w", err)
	}
	if version != serializeFormatVersion {
		return nil, fmt.Errorf("automaton: unsupported cache format version %d", version)
	}

	numStates, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("automaton: read state count: %w", err)
	}

	states := make([]TransitionTable, numStates)
	for i := range states {
		numLabelled, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("automaton: read transition count: %w", err)
		}
		labelled := make([]transition, numLabelled)
		for j := range labelled {
			kind, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("automaton: read label kind: %w", err)
			}
			switch kind {
			case labelKindIndex:
				v, err := binary.ReadUvarint(r)
				if err != nil {
					return nil, fmt.Errorf("automaton: read index label: %w", err)
				}
				idx, err := query.NewNonNegativeArrayIndex(v)
				if err != nil {
					return nil, fmt.Errorf("automaton: invalid index label: %w", err)
				}
				labelled[j].label = query.IndexLabel(idx)
			case labelKindName:
				n, err := binary.ReadUvarint(r)
				if err != nil {
					return nil, fmt.Errorf("automaton: read name length: %w", err)
				}
				name := make([]byte, n)
				if _, err := r.Read(name); err != nil {
					return nil, fmt.Errorf("automaton: read name label: %w", err)
				}
				labelled[j].label = query.NameLabel(string(name))
			default:
				return nil, fmt.Errorf("automaton: unknown label kind %d", kind)
			}
			st, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("automaton: read transition target: %w", err)
			}
			labelled[j].state = State(st)
		}

		fallback, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("automaton: read fallback: %w", err)
		}
		attrs, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("automaton: read attributes: %w", err)
		}
		states[i] = TransitionTable{labelled: labelled, fallback: State(fallback), attrs: StateAttributes(attrs)}
	}

	return &Automaton{states: states}, nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}
