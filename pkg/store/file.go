package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/observability"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// FileStore persists each event's document as a JSON file in a base
// directory. Intended for CLI use.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store. If baseDir is empty, documents
// live under ~/.config/seating/events/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "seating", "events")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory documents are stored in.
func (s *FileStore) Dir() string { return s.baseDir }

func (s *FileStore) path(eventID string) string {
	return filepath.Join(s.baseDir, eventID+".json")
}

// Load reads the event's document file.
func (s *FileStore) Load(ctx context.Context, eventID string) (seating.Document, error) {
	start := time.Now()
	doc, err := s.load(eventID)
	observability.Store().OnLoad(ctx, "file", eventID, time.Since(start), err)
	return doc, err
}

func (s *FileStore) load(eventID string) (seating.Document, error) {
	if err := errors.ValidateEventID(eventID); err != nil {
		return seating.Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(eventID))
	if os.IsNotExist(err) {
		return seating.Document{}, ErrNotFound
	}
	if err != nil {
		return seating.Document{}, fmt.Errorf("read document file: %w", err)
	}

	var doc seating.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return seating.Document{}, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// Save writes the document atomically: to a temp file first, then renamed
// into place, so a crash mid-write never leaves a truncated document.
func (s *FileStore) Save(ctx context.Context, eventID string, doc seating.Document) error {
	start := time.Now()
	err := s.save(eventID, doc)
	observability.Store().OnSave(ctx, "file", eventID, time.Since(start), err)
	return err
}

func (s *FileStore) save(eventID string, doc seating.Document) error {
	if err := errors.ValidateEventID(eventID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	path := s.path(eventID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace document file: %w", err)
	}
	return nil
}

// Delete removes the event's document file.
func (s *FileStore) Delete(ctx context.Context, eventID string) error {
	if err := errors.ValidateEventID(eventID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(eventID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete document file: %w", err)
	}
	return nil
}

// List returns the event ids with a document file.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Close does nothing.
func (s *FileStore) Close() error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
