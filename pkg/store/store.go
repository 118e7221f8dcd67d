// Package store is the persistence gateway for seating documents.
//
// A [Store] loads and saves whole documents keyed by event id. Documents are
// always persisted atomically as one value, never partially; the engine's
// debounced autosave hands the gateway a settled document and moves on, so
// every backend is a thin blob store with no knowledge of actions or
// history.
//
// # Backends
//
//   - memory: in-process map, for tests and ephemeral sessions
//   - file: one JSON file per event under a base directory, for CLI use
//   - mongo: one BSON document per event in a collection
//   - redis: one JSON value per event key
//
// All backends return [ErrNotFound] for unknown event ids and are safe for
// concurrent use.
package store

import (
	"context"
	"errors"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// ErrNotFound is returned when no document exists for an event id.
var ErrNotFound = errors.New("not found")

// Store persists seating documents keyed by event id.
type Store interface {
	// Load returns the document for the event, or ErrNotFound.
	Load(ctx context.Context, eventID string) (seating.Document, error)

	// Save persists the document for the event, replacing any prior value.
	Save(ctx context.Context, eventID string, doc seating.Document) error

	// Delete removes the event's document. Deleting a missing event is not
	// an error.
	Delete(ctx context.Context, eventID string) error

	// List returns the known event ids, in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}
