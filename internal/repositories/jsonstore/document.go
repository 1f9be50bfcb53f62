// Package jsonstore persists each collection as one human-readable JSON
// document. Stores load on construction, keep exclusive in-memory ownership
// for the process lifetime, and rewrite the full file on every mutation.
// Single-process access is assumed; there is no locking.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// loadDocument reads the document at path. A missing or corrupt file degrades
// to the zero value (an empty collection) and never fails the caller.
func loadDocument[T any](path string, logger zerolog.Logger) T {
	var doc T
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Str("path", path).Msg("unreadable document, starting empty")
		}
		return doc
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("corrupt document, starting empty")
		var zero T
		return zero
	}
	return doc
}

// writeDocument atomically rewrites the document at path: the content is
// written to a temp file in the same directory and renamed over the target.
func writeDocument(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document %s: %w", path, err)
	}
	return nil
}
