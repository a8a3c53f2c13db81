package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/log"
)

// CorruptSuffix is appended to a snapshot file that could not be decoded.
const CorruptSuffix = ".corrupt"

// FileStore keeps the snapshot in a JSON Lines file.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file is an empty snapshot. A file that
// does not decode is moved aside to path+CorruptSuffix so later saves cannot
// overwrite it, and the decode error is returned.
func (s *FileStore) Load(ctx context.Context) (core.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.InfoContext(ctx, "No snapshot file, starting empty", log.FieldPath, s.path)
		return core.Snapshot{}, nil
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	snap, err := DecodeSnapshot(bytes.NewReader(data))
	if err != nil {
		backup := s.path + CorruptSuffix
		if rerr := os.Rename(s.path, backup); rerr != nil {
			return core.Snapshot{}, fmt.Errorf("decode snapshot: %w (backup failed: %v)", err, rerr)
		}
		slog.WarnContext(ctx, "Snapshot file moved aside",
			log.FieldComponent, log.ComponentStorage,
			log.FieldOperation, log.OpLoad,
			log.FieldPath, s.path,
			"backup", backup,
			log.FieldError, err)
		return core.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldPath, s.path,
		"expenses", len(snap.Expenses),
		"incomes", len(snap.Incomes),
		"budgets", len(snap.Budgets))
	return snap, nil
}

// Save replaces the file with snap. Identical content is not rewritten;
// otherwise the new content goes to a temporary file that is renamed over
// the old one.
func (s *FileStore) Save(ctx context.Context, snap core.Snapshot) error {
	data, err := MarshalSnapshot(snap)
	if err != nil {
		return err
	}

	current, err := os.ReadFile(s.path)
	if err == nil && bytes.Equal(current, data) {
		return nil
	}
	// An empty state needs no file, e.g. right after a corrupt one was moved aside.
	if errors.Is(err, os.ErrNotExist) && len(data) == 0 {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot saved",
		log.FieldOperation, log.OpSave,
		log.FieldPath, s.path,
		"bytes", len(data))
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
