package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/JonMunkholm/pinstore/internal/core"
)

// DefaultMaxFileBytes caps the encoded size of the records file.
const DefaultMaxFileBytes = 10 * 1024 * 1024

// FileStore persists records as a pretty-printed JSON array in a single file.
//
// Every Append re-reads the file, appends, trims to the cap and replaces the
// file via a temp file and rename, all under one mutex. All reloads from disk
// so external edits (or a truncated file) are picked up.
type FileStore struct {
	mu           sync.RWMutex
	path         string
	maxRecords   int
	maxFileBytes int
}

// FileOptions configures a FileStore.
type FileOptions struct {
	MaxRecords   int
	MaxFileBytes int
}

// NewFileStore opens the store at path, creating the parent directory and an
// empty "[]" file when they are missing.
func NewFileStore(path string, opts FileOptions) (*FileStore, error) {
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = core.DefaultMaxRecords
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = DefaultMaxFileBytes
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &core.PersistenceError{Op: "init", Err: err}
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, &core.PersistenceError{Op: "init", Err: err}
		}
		slog.Info("initialized records file", "path", path)
	} else if err != nil {
		return nil, &core.PersistenceError{Op: "init", Err: err}
	}

	return &FileStore{
		path:         path,
		maxRecords:   opts.MaxRecords,
		maxFileBytes: opts.MaxFileBytes,
	}, nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Append(ctx context.Context, rec core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return &core.PersistenceError{Op: "append", Err: err}
	}

	records = core.KeepTail(append(records, rec), s.maxRecords)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &core.PersistenceError{Op: "append", Err: err}
	}
	if len(data) > s.maxFileBytes {
		return &core.PersistenceError{
			Op:  "append",
			Err: fmt.Errorf("%w: %d bytes exceeds %d", core.ErrDataTooLarge, len(data), s.maxFileBytes),
		}
	}

	// Last point at which the caller can abandon the write.
	if err := ctx.Err(); err != nil {
		return &core.PersistenceError{Op: "append", Err: err}
	}

	if err := s.replace(data); err != nil {
		return &core.PersistenceError{Op: "append", Err: err}
	}
	return nil
}

func (s *FileStore) All(ctx context.Context) ([]core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.load()
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Err: err}
	}
	if records == nil {
		records = []core.Record{}
	}
	return records, nil
}

func (s *FileStore) Mode() string  { return ModeFile }
func (s *FileStore) Durable() bool { return true }

// load reads the backing file. A missing or blank file is an empty store.
func (s *FileStore) load() ([]core.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []core.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return records, nil
}

// replace writes data to a temp file in the same directory and renames it
// over the backing file so readers never observe a partial write.
func (s *FileStore) replace(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
