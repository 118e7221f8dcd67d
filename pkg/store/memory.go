package store

import (
	"context"
	"sync"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// MemoryStore keeps documents in an in-process map. Useful for tests and
// single-run sessions with no persistence requirement.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]seating.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]seating.Document)}
}

// Load returns the document for the event, or ErrNotFound.
func (s *MemoryStore) Load(ctx context.Context, eventID string) (seating.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[eventID]
	if !ok {
		return seating.Document{}, ErrNotFound
	}
	// Detach so callers cannot mutate stored state through shared slices.
	return doc.Clone(), nil
}

// Save persists the document for the event.
func (s *MemoryStore) Save(ctx context.Context, eventID string, doc seating.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[eventID] = doc.Clone()
	return nil
}

// Delete removes the event's document.
func (s *MemoryStore) Delete(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, eventID)
	return nil
}

// List returns the known event ids.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	return ids, nil
}

// Close does nothing.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
