// Package seating defines the seating chart document model and its reducer.
//
// # Overview
//
// A seating chart is a single [Document] aggregate: tables, guests, venue
// objects, floor dimensions, and a transient view zoom. All mutations are
// expressed as [Action] values applied through [Apply], a pure transition
// function. This action-driven design is what the rest of the system builds
// on: history (pkg/seating/history) records documents for undo/redo, the
// arrangement and auto-seat engines (pkg/seating/arrange,
// pkg/seating/autoseat) emit plans that become ordinary actions, and the
// editor (pkg/seating/editor) ties it all together with debounced
// persistence.
//
// # Invariants
//
// The reducer maintains two invariants no caller can break:
//
//   - Seat exclusivity: no two guests ever share the same non-nil
//     (table, seat) pair. Assigning into an occupied seat unseats the
//     previous occupant in the same transition.
//   - Cascade on delete: deleting a table clears the assignment of every
//     guest seated at it. A guest never references a table that does not
//     exist in the same document version.
//
// A guest's TableID and SeatIndex are always both nil or both non-nil.
//
// # Occupancy
//
// Guest records are the source of truth for who sits where. The Seat.GuestID
// field on tables is a denormalized cache for display; rebuild it with
// [Document.RefreshSeatCaches] when needed, and never treat it as
// authoritative.
package seating
