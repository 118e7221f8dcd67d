// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about document edits, engine runs, autosave, and
// persistence gateway operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditorHooks(&myEditorHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Editor().OnActionApplied(ctx, action.Name(), changed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from the seating editor.
type EditorHooks interface {
	// OnActionApplied records a dispatched action and whether it changed
	// the document.
	OnActionApplied(ctx context.Context, action string, changed bool)

	// OnUndo records an undo request; stepped reports whether a step was
	// actually taken.
	OnUndo(ctx context.Context, stepped bool)

	// OnRedo records a redo request; stepped reports whether a step was
	// actually taken.
	OnRedo(ctx context.Context, stepped bool)

	// OnArrange records an arrangement run; proposed reports whether the
	// engine suggested a floor resize.
	OnArrange(ctx context.Context, tableCount int, proposed bool, duration time.Duration)

	// OnAutoSeat records an auto-seat run with the number of guests placed
	// and left unseated.
	OnAutoSeat(ctx context.Context, placed, leftover int, duration time.Duration)
}

// =============================================================================
// Save Hooks
// =============================================================================

// SaveHooks receives events from the debounced autosave path.
type SaveHooks interface {
	// OnSaveScheduled records a (re)scheduled save after a document change.
	OnSaveScheduled(ctx context.Context, version uint64)

	// OnSaveComplete records a settled save attempt. Superseded saves are
	// never attempted and never reported.
	OnSaveComplete(ctx context.Context, version uint64, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from persistence gateway operations.
type StoreHooks interface {
	// OnLoad records a document load from a storage backend.
	OnLoad(ctx context.Context, backend, eventID string, duration time.Duration, err error)

	// OnSave records a document save to a storage backend.
	OnSave(ctx context.Context, backend, eventID string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnActionApplied(context.Context, string, bool)       {}
func (NoopEditorHooks) OnUndo(context.Context, bool)                        {}
func (NoopEditorHooks) OnRedo(context.Context, bool)                        {}
func (NoopEditorHooks) OnArrange(context.Context, int, bool, time.Duration) {}
func (NoopEditorHooks) OnAutoSeat(context.Context, int, int, time.Duration) {}

// NoopSaveHooks is a no-op implementation of SaveHooks.
type NoopSaveHooks struct{}

func (NoopSaveHooks) OnSaveScheduled(context.Context, uint64)                      {}
func (NoopSaveHooks) OnSaveComplete(context.Context, uint64, time.Duration, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, string, time.Duration, error) {}
func (NoopStoreHooks) OnSave(context.Context, string, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editorHooks EditorHooks = NoopEditorHooks{}
	saveHooks   SaveHooks   = NoopSaveHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEditorHooks registers custom editor hooks.
// This should be called once at application startup before any edits.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetSaveHooks registers custom save hooks.
// This should be called once at application startup before any edits.
func SetSaveHooks(h SaveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		saveHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Save returns the registered save hooks.
func Save() SaveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return saveHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	saveHooks = NoopSaveHooks{}
	storeHooks = NoopStoreHooks{}
}
