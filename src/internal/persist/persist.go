// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/helper/gc"
	"github.com/google/go-cmp/cmp"
)

// FileName is the name every document is written under inside its directory.
const FileName = "did.json"

// Canonicalizer reduces a decoded JSON document to the form used for
// change detection. Implementations must not mutate their input.
type Canonicalizer interface {
	// Version identifies the rule set, so a change in rules is visible in
	// logs and reports.
	Version() string
	Canonicalize(doc any) any
}

// V1 ignores the created and proofValue members of a top-level proof.
type V1 struct{}

// Version implements [Canonicalizer].
func (V1) Version() string { return "v1" }

// Canonicalize implements [Canonicalizer].
func (V1) Canonicalize(doc any) any {
	m, ok := doc.(map[string]any)
	if !ok {
		return doc
	}
	proof, ok := m["proof"].(map[string]any)
	if !ok {
		return doc
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	stripped := make(map[string]any, len(proof))
	for k, v := range proof {
		if k == "created" || k == "proofValue" {
			continue
		}
		stripped[k] = v
	}
	out["proof"] = stripped
	return out
}

// Stats counts what a [Writer] did.
type Stats struct {
	Written   int64
	Unchanged int64
}

// Writer persists documents only when they changed.
//
// Writer is safe for concurrent use, although a run writes sequentially.
type Writer struct {
	canon     Canonicalizer
	written   atomic.Int64
	unchanged atomic.Int64
}

// Option configures a [Writer].
type Option func(*Writer)

// WithCanonicalizer replaces the default [V1] rules.
func WithCanonicalizer(c Canonicalizer) Option {
	return func(w *Writer) { w.canon = c }
}

// NewWriter returns a Writer using [V1] unless configured otherwise.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{canon: V1{}}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Canonicalizer returns the rules in use.
func (w *Writer) Canonicalizer() Canonicalizer { return w.canon }

// Stats returns the counters so far.
func (w *Writer) Stats() Stats {
	return Stats{Written: w.written.Load(), Unchanged: w.unchanged.Load()}
}

// Persist writes doc to path as two-space indented JSON unless the file
// already holds a document that is equal after canonicalization. A missing
// file, or one that is not valid JSON, counts as different.
//
// Parameters:
//   - path: Destination file, parent directories are created
//   - doc: Any value that encodes to a JSON object
//
// Returns:
//   - bool: true if the file was written
//   - error: Encoding or I/O failure
func (w *Writer) Persist(path string, doc any) (bool, error) {
	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return false, fmt.Errorf("persist: encode %s: %w", path, err)
	}

	same, err := w.sameAsExisting(path, buf.Bytes())
	if err != nil {
		return false, err
	}
	if same {
		w.unchanged.Add(1)
		return false, nil
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return false, err
	}
	w.written.Add(1)
	return true, nil
}

func (w *Writer) sameAsExisting(path string, encoded []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("persist: read %s: %w", path, err)
	}

	var current, next any
	if err := json.Unmarshal(existing, &current); err != nil {
		return false, nil
	}
	if err := json.Unmarshal(encoded, &next); err != nil {
		return false, fmt.Errorf("persist: decode %s: %w", path, err)
	}

	return cmp.Equal(w.canon.Canonicalize(current), w.canon.Canonicalize(next)), nil
}

// writeAtomic replaces path through a temporary file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("persist: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist: rename %s: %w", path, err)
	}
	return nil
}

// Persist is [Writer.Persist] with the default rules and no counters.
func Persist(path string, doc any) (bool, error) {
	return NewWriter().Persist(path, doc)
}
