// Package state implements the file-backed key-value store: a single JSON
// document on disk holding the persisted storefront state (cart, session).
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"
)

// FileStore persists keys in one JSON file. It provides atomic writes
// (write-tmp-then-rename), automatic backups, and file locking (flock for
// cross-process, mutex for in-process).
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
	doc    *document // loaded lazily, nil until first access
}

// document is the on-disk layout.
type document struct {
	Version   string                     `json:"version"`
	Entries   map[string]json.RawMessage `json:"entries"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// NewFileStore creates a FileStore for the given file path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Get returns the raw value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, false, err
	}
	value, ok := s.doc.Entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores value under key and writes the document to disk atomically.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Entries[key] = json.RawMessage(value)
	return s.save()
}

// Delete removes key and writes the document to disk. Deleting an absent
// key is a no-op that still succeeds.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Entries[key]; !ok {
		return nil
	}
	delete(s.doc.Entries, key)
	return s.save()
}

// Close is a no-op; the store holds no open handles between operations.
func (s *FileStore) Close() error {
	return nil
}

// ensureLoaded reads the document from disk on first access. A missing
// file starts an empty document. A file that fails to parse also starts an
// empty document: persisted storefront state is disposable and must never
// block startup. The unreadable file survives as the .bak taken by the
// next save. Callers hold s.mu.
func (s *FileStore) ensureLoaded() error {
	if s.doc != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("state file not found, starting empty", "path", s.path)
			s.doc = emptyDocument()
			return nil
		}
		return fmt.Errorf("read state file: %w", err)
	}

	// Warn if the existing file has permissions more open than 0600.
	// Skip on Windows where Unix file permission bits are not supported.
	if runtime.GOOS != "windows" {
		if info, statErr := os.Stat(s.path); statErr == nil {
			mode := info.Mode().Perm()
			if mode&0077 != 0 { // group or other has access
				s.logger.Warn("state file has too-open permissions, should be 0600",
					"path", s.path, "current_mode", fmt.Sprintf("%04o", mode))
			}
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("state file is corrupt, starting empty", "path", s.path, "error", err)
		s.doc = emptyDocument()
		return nil
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]json.RawMessage)
	}
	s.doc = &doc
	return nil
}

// save writes the document to disk.
//
// The write sequence is:
//  1. Acquire flock on path+".lock" (in-process mutex already held)
//  2. Copy current file to path+".bak" (ignored if no current file)
//  3. Marshal document as indented JSON
//  4. Write to path+".tmp" with 0600 permissions
//  5. Fsync the temp file
//  6. Rename path+".tmp" -> path
//  7. Release flock
func (s *FileStore) save() error {
	now := time.Now().UTC()
	if s.doc.CreatedAt.IsZero() {
		s.doc.CreatedAt = now
	}
	s.doc.UpdatedAt = now

	// Acquire cross-process file lock.
	lockPath := s.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = lockFile.Close() }()

	if err := flockLock(lockFile.Fd()); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer flockUnlock(lockFile.Fd()) //nolint:errcheck

	// Create backup of current file (ignore error if file doesn't exist).
	if currentData, readErr := os.ReadFile(s.path); readErr == nil {
		bakPath := s.path + ".bak"
		if writeErr := os.WriteFile(bakPath, currentData, 0600); writeErr != nil {
			s.logger.Warn("failed to create backup", "error", writeErr)
		}
	}

	// Marshal as indented JSON with trailing newline.
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	data = append(data, '\n')

	// Atomic write: tmp -> fsync -> rename.
	if err := s.writeAtomic(data); err != nil {
		return err
	}

	// Explicitly ensure 0600 permissions after rename as a safety net.
	if err := os.Chmod(s.path, 0600); err != nil {
		s.logger.Warn("failed to set permissions on state file", "error", err)
	}

	s.logger.Debug("state saved", "path", s.path)
	return nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it
// over the target path. On any error the temp file is cleaned up.
func (s *FileStore) writeAtomic(data []byte) error {
	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	// cleanup closes and removes the temp file on error.
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to state: %w", err)
	}
	return nil
}

func emptyDocument() *document {
	return &document{
		Version: "1",
		Entries: make(map[string]json.RawMessage),
	}
}

// Exists returns true if the state file exists on disk.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the configured file path.
func (s *FileStore) Path() string {
	return s.path
}
