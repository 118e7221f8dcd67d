// Package pkg provides the core libraries for the seating chart engine.
//
// # Overview
//
// The engine models an event floor plan as a single immutable document of
// tables, guests, and venue objects. Every change goes through a pure
// reducer, which makes undo and redo a matter of keeping old documents
// around. The pkg directory is organized into five areas:
//
//  1. [seating] - Domain logic (document model, actions, reducer, history)
//  2. [store] - Persistence backends (memory, file, MongoDB, Redis)
//  3. [excel] - Workbook import and export
//  4. [errors] - Structured error codes and input validation
//  5. [observability] - Structured logging hooks for engine operations
//
// # Architecture
//
// The typical data flow through the engine:
//
//	Action (add table, seat guest, ...)
//	         ↓
//	    [seating] package (pure reducer + history)
//	         ↓
//	    [seating/editor] package (sessions, debounced autosave)
//	         ↓
//	    [store] package (persistence)
//
// # Quick Start
//
// Open an event, edit it, and let autosave persist the result:
//
//	import (
//	    "context"
//	    "github.com/ethan-kaseff/seating-chart/pkg/seating"
//	    "github.com/ethan-kaseff/seating-chart/pkg/seating/editor"
//	    "github.com/ethan-kaseff/seating-chart/pkg/store"
//	)
//
//	st := store.NewMemoryStore()
//	ed := editor.New(seating.NewDocument(), editor.Options{
//	    Save: func(ctx context.Context, doc seating.Document) error {
//	        return st.Save(ctx, "gala", doc)
//	    },
//	})
//	defer ed.Close()
//
//	table := ed.AddTable(8, "Head Table")
//	guest := ed.AddGuest("Ada", "Family", "", nil)
//	ed.Dispatch(seating.AssignGuest{GuestID: guest.ID, TableID: table.ID, SeatIndex: 0})
//	ed.Undo()
//
// # Main Packages
//
// [seating] - The document model and pure reducer. Documents are value
// types; the reducer returns a new document and reports whether anything
// changed. Transient actions (zoom, floor size) skip the history stack.
//
// [seating/history] - Bounded undo/redo stack over document snapshots.
//
// [seating/arrange] - Constrained table layout: packs tables into rows
// around venue-object exclusion zones and proposes floor resizes when the
// layout does not fit.
//
// [seating/autoseat] - Group-aware automatic seating. Groups are placed
// largest first into the emptiest table that fits them whole, splitting
// only when no table can.
//
// [seating/editor] - Stateful editing session: dispatch, undo/redo, and
// debounced autosave with a version check so stale saves never win.
//
// [store] - Event persistence behind a small Store interface. Memory
// (tests), file (CLI default), MongoDB, and Redis implementations.
//
// [excel] - Guest-list import and two export formats: a human-readable
// summary and a full document workbook that round-trips through import.
//
// [errors] - Error codes shared by the CLI and HTTP surfaces, plus input
// validation for event IDs, colors, names, and floor sizes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/seating/...    # Specific package
//
// [seating]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/seating
// [seating/history]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/seating/history
// [seating/arrange]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/seating/arrange
// [seating/autoseat]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/seating/autoseat
// [seating/editor]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/seating/editor
// [store]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/store
// [excel]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/excel
// [errors]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/ethan-kaseff/seating-chart/pkg/observability
package pkg
