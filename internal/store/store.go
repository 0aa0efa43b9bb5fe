// Package store persists the three prom9 collections (profiles, contexts,
// task history) as JSON array files.
//
// Loading is deliberately permissive: a missing file or malformed JSON
// degrades to an empty collection instead of failing. That is the lenient
// bootstrap policy for first runs and hand-edited files, not error
// swallowing. Writes are strict and atomic.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Paths names the three collection files. It is built once from the config
// at startup and handed to New; no package-level path globals.
type Paths struct {
	Profiles string
	Contexts string
	History  string
}

// Store reads and writes the persisted collections. A single interactive
// user is assumed: there is no file locking, and callers keep at most one
// write in flight per collection.
type Store struct {
	paths Paths
	log   *zap.Logger
}

// New returns a store over the given paths. A nil logger disables logging.
func New(paths Paths, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{paths: paths, log: log}
}

// readJSON decodes the file at path into out, leaving out untouched when the
// file is missing or unparseable.
func (s *Store) readJSON(path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug("collection unreadable, using empty", zap.String("path", path), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Debug("collection malformed, using empty", zap.String("path", path), zap.Error(err))
	}
}

// writeJSON writes payload as indented UTF-8 JSON. Non-ASCII characters are
// kept literal (no \uXXXX escaping of HTML-significant runes either). The
// write goes to a temp file in the destination directory and is renamed
// into place so a crash never leaves a partial collection.
func (s *Store) writeJSON(path string, payload any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
