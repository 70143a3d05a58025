// Package store performs all filesystem mutation during generation.
//
// A Store records every directory and file it successfully creates in an
// ordered ledger. On failure the pipeline calls Rollback, which replays the
// ledger in reverse creation order so children are always removed before
// their parents. On success Commit discards the ledger and the created tree
// becomes permanent.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stackforge/stackforge/internal/pathguard"
)

// EntryKind distinguishes ledger entries.
type EntryKind string

const (
	KindFile EntryKind = "file"
	KindDir  EntryKind = "dir"
)

// Entry is one recorded filesystem creation. Path is absolute.
type Entry struct {
	Kind EntryKind
	Path string
}

// DirCreateError wraps an OS-level failure while creating a directory.
type DirCreateError struct {
	Path string
	Err  error
}

func (e *DirCreateError) Error() string {
	return fmt.Sprintf("creating directory %s: %v", e.Path, e.Err)
}

func (e *DirCreateError) Unwrap() error { return e.Err }

// FileWriteError wraps an OS-level failure while writing a file.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("writing file %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// RollbackError reports ledger entries that could not be removed.
// Rollback never fails fast: every entry is attempted, and the survivors
// are enumerated so the user can clean them up manually.
type RollbackError struct {
	Survivors []Entry
	Errs      []error
}

func (e *RollbackError) Error() string {
	paths := make([]string, len(e.Survivors))
	for i, s := range e.Survivors {
		paths[i] = s.Path
	}
	return fmt.Sprintf("rollback left %d entries on disk: %s",
		len(e.Survivors), strings.Join(paths, ", "))
}

// Store creates directories and files under a fixed root, journaling every
// successful creation. It is the only component allowed to mutate the
// filesystem during a generation run, and the sole owner of the ledger.
//
// A Store drives exactly one run: after Commit or Rollback it should be
// discarded.
type Store struct {
	root      string
	ledger    []Entry
	committed bool
}

// New creates a store rooted at root. The root itself must already exist;
// everything the store creates lives beneath it.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the directory the store is confined to.
func (s *Store) Root() string { return s.root }

// CreateDir creates the directory at the root-relative path rel, along with
// any missing ancestors. Existing directories are a no-op, not an error.
// Each directory actually created gets its own ledger entry, parent first,
// so reverse replay never deletes a parent before its children.
func (s *Store) CreateDir(rel string) error {
	cleaned, err := pathguard.Normalize(rel)
	if err != nil {
		return err
	}

	cur := s.root
	for _, seg := range strings.Split(cleaned, string(filepath.Separator)) {
		cur = filepath.Join(cur, seg)

		info, statErr := os.Stat(cur)
		if statErr == nil {
			if !info.IsDir() {
				return &DirCreateError{Path: cur, Err: fmt.Errorf("path exists and is not a directory")}
			}
			continue
		}
		if !os.IsNotExist(statErr) {
			return &DirCreateError{Path: cur, Err: statErr}
		}

		if mkErr := os.Mkdir(cur, 0o755); mkErr != nil {
			if os.IsExist(mkErr) {
				continue
			}
			return &DirCreateError{Path: cur, Err: mkErr}
		}
		s.ledger = append(s.ledger, Entry{Kind: KindDir, Path: cur})
	}
	return nil
}

// WriteFile writes content to the root-relative path rel, creating missing
// parent directories first and overwriting any existing file. The file
// entry is appended to the ledger only after the write succeeds; a failed
// write leaves no file entry behind.
func (s *Store) WriteFile(rel string, content []byte, mode os.FileMode) error {
	cleaned, err := pathguard.Normalize(rel)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cleaned); dir != "." {
		if err := s.CreateDir(dir); err != nil {
			return err
		}
	}

	abs := filepath.Join(s.root, cleaned)
	if err := os.WriteFile(abs, content, mode); err != nil {
		return &FileWriteError{Path: abs, Err: err}
	}

	s.ledger = append(s.ledger, Entry{Kind: KindFile, Path: abs})
	return nil
}

// Ledger returns a copy of the recorded entries in creation order.
func (s *Store) Ledger() []Entry {
	out := make([]Entry, len(s.ledger))
	copy(out, s.ledger)
	return out
}

// Commit discards the ledger, making everything created so far permanent.
// A Rollback after Commit is a no-op.
func (s *Store) Commit() {
	s.committed = true
	s.ledger = nil
}

// Rollback removes every ledger entry in reverse creation order.
//
// Files that are already absent count as removed. Directories are removed
// only when empty: content the store did not create is never force-deleted.
// Every entry is attempted even when earlier removals fail; the survivors
// are aggregated into the returned RollbackError. Returns nil when the
// sweep removed everything.
func (s *Store) Rollback() *RollbackError {
	if s.committed {
		return nil
	}

	var rb RollbackError
	for i := len(s.ledger) - 1; i >= 0; i-- {
		entry := s.ledger[i]
		if err := os.Remove(entry.Path); err != nil && !os.IsNotExist(err) {
			rb.Survivors = append(rb.Survivors, entry)
			rb.Errs = append(rb.Errs, err)
		}
	}
	s.ledger = nil

	if len(rb.Survivors) > 0 {
		return &rb
	}
	return nil
}
