// Package automatoncache gives the CLI a cheap on-disk recompilation cache
// for a compiled query.JSONPathQuery automaton: the DFA is small, but
// re-running Compile on every invocation of a hot query is wasted work a
// cache file trivially avoids. The CLI loads and stores entries on every
// invocation, not only under --compile.
//
// The cache is keyed on the query's raw source text, never on input data or
// results, so it carries no information about anything the CLI classified
// or matched: it does not compromise the "on-disk: none persisted" promise
// made for input/results elsewhere.
package automatoncache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/rsonpath-go/rsonpath/automaton"
)

// fileExt identifies cache entry files. An entry written by an incompatible
// automaton.MarshalBinary version is rejected by the format version byte
// that automaton.UnmarshalAutomaton checks, not by this extension.
const fileExt = ".dfa.zst"

// Key derives the cache filename for rawQuery: a hex SHA-256 digest, so
// arbitrary query text (including path separators or unusual bytes) is
// always a safe filename component.
func Key(rawQuery string) string {
	sum := sha256.Sum256([]byte(rawQuery))
	return hex.EncodeToString(sum[:]) + fileExt
}

// Load reads and decompresses the cache entry for rawQuery from dir. A
// missing entry is reported as (nil, false, nil), not an error.
func Load(dir, rawQuery string) (*automaton.Automaton, bool, error) {
	path := filepath.Join(dir, Key(rawQuery))
	compressed, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("automatoncache: read %s: %w", path, err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, false, fmt.Errorf("automatoncache: new zstd reader: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("automatoncache: decompress %s: %w", path, err)
	}

	a, err := automaton.UnmarshalAutomaton(raw)
	if err != nil {
		return nil, false, fmt.Errorf("automatoncache: unmarshal %s: %w", path, err)
	}
	return a, true, nil
}

// Store compresses and writes a's serialized form as the cache entry for
// rawQuery, creating dir if necessary.
func Store(dir, rawQuery string, a *automaton.Automaton) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("automatoncache: mkdir %s: %w", dir, err)
	}

	raw, err := a.MarshalBinary()
	if err != nil {
		return fmt.Errorf("automatoncache: marshal: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return fmt.Errorf("automatoncache: new zstd writer: %w", err)
	}
	compressed := enc.EncodeAll(raw, nil)
	enc.Close()

	path := filepath.Join(dir, Key(rawQuery))
	tmp, err := os.CreateTemp(dir, "tmp-*"+fileExt)
	if err != nil {
		return fmt.Errorf("automatoncache: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		return fmt.Errorf("automatoncache: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("automatoncache: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("automatoncache: rename into %s: %w", path, err)
	}
	return nil
}

// DefaultDir returns the directory the CLI uses when --cache-dir does not
// override it: a "rsonpath" subdirectory of the host's user cache
// directory, matching the original CLI's XDG-cache-backed default.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("automatoncache: resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "rsonpath"), nil
}
