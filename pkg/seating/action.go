package seating

// =============================================================================
// Actions - Document Mutations
// =============================================================================

// Action is a single document mutation. Every change to a Document flows
// through Apply as an action, which is what makes history and persistence
// uniform: anything that can happen is a value that can be logged, replayed,
// and undone.
//
// Undoable reports whether the action should create an undo step. Transient
// view and floor-negotiation state (zoom, floor size) is excluded: users
// expect those to be sticky, not reversible edits to the seating itself.
type Action interface {
	// Name returns the action's stable identifier, used for logging and
	// observability.
	Name() string

	// Undoable reports whether the action is recorded on the history stack.
	Undoable() bool
}

// undoable provides the common case: actions that create history entries.
type undoable struct{}

func (undoable) Undoable() bool { return true }

// transient marks actions excluded from undo history.
type transient struct{}

func (transient) Undoable() bool { return false }

// SetDocument replaces the whole document, used for load and import.
type SetDocument struct {
	undoable
	Document Document
}

func (SetDocument) Name() string { return "set_document" }

// AddTable appends a table to the document.
type AddTable struct {
	undoable
	Table Table
}

func (AddTable) Name() string { return "add_table" }

// UpdateTable applies a partial update to the table with the given id.
// A missing id is a no-op.
type UpdateTable struct {
	undoable
	ID    string
	Patch TablePatch
}

func (UpdateTable) Name() string { return "update_table" }

// DeleteTable removes a table and unseats every guest assigned to it.
type DeleteTable struct {
	undoable
	ID string
}

func (DeleteTable) Name() string { return "delete_table" }

// AddGuest appends a guest to the document.
type AddGuest struct {
	undoable
	Guest Guest
}

func (AddGuest) Name() string { return "add_guest" }

// UpdateGuest applies a partial update to the guest with the given id.
// Seat assignment is not part of the patch; use AssignGuest/UnassignGuest so
// the seat-exclusivity invariant is enforced in one place.
type UpdateGuest struct {
	undoable
	ID    string
	Patch GuestPatch
}

func (UpdateGuest) Name() string { return "update_guest" }

// DeleteGuest removes a guest from the document.
type DeleteGuest struct {
	undoable
	ID string
}

func (DeleteGuest) Name() string { return "delete_guest" }

// AssignGuest seats a guest at (TableID, SeatIndex). If another guest already
// occupies that exact seat, that guest is unseated in the same transition.
// The displaced guest does not inherit the incoming guest's prior seat.
type AssignGuest struct {
	undoable
	GuestID   string
	TableID   string
	SeatIndex int
}

func (AssignGuest) Name() string { return "assign_guest" }

// UnassignGuest clears a guest's seat assignment.
type UnassignGuest struct {
	undoable
	GuestID string
}

func (UnassignGuest) Name() string { return "unassign_guest" }

// AddObject appends a venue object to the document.
type AddObject struct {
	undoable
	Object VenueObject
}

func (AddObject) Name() string { return "add_object" }

// UpdateObject applies a partial update to the venue object with the given id.
type UpdateObject struct {
	undoable
	ID    string
	Patch ObjectPatch
}

func (UpdateObject) Name() string { return "update_object" }

// DeleteObject removes a venue object. No cascade is needed; nothing
// references objects.
type DeleteObject struct {
	undoable
	ID string
}

func (DeleteObject) Name() string { return "delete_object" }

// SetZoom sets the view zoom, clamped to [MinZoom, MaxZoom]. Not undoable.
type SetZoom struct {
	transient
	Zoom float64
}

func (SetZoom) Name() string { return "set_zoom" }

// SetFloorSize sets the floor dimensions. Not undoable: floor-size changes
// are negotiation/viewport adjustments, not seating edits.
type SetFloorSize struct {
	transient
	Width  float64
	Height float64
}

func (SetFloorSize) Name() string { return "set_floor_size" }

// =============================================================================
// Patches - Explicit Partial Updates
// =============================================================================

// TablePatch is a partial update for a table. Nil fields are left unchanged.
type TablePatch struct {
	Name  *string
	X     *float64
	Y     *float64
	Seats *[]Seat
	Color *string
}

func (p TablePatch) apply(t Table) Table {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.Seats != nil {
		t.Seats = *p.Seats
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	return t
}

// GuestPatch is a partial update for a guest. Nil fields are left unchanged.
type GuestPatch struct {
	Name    *string
	Group   *string
	Meal    *string
	Dietary *[]string
}

func (p GuestPatch) apply(g Guest) Guest {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Group != nil {
		g.Group = *p.Group
	}
	if p.Meal != nil {
		g.Meal = *p.Meal
	}
	if p.Dietary != nil {
		g.Dietary = *p.Dietary
	}
	return g
}

// ObjectPatch is a partial update for a venue object. Nil fields are left
// unchanged; ClearPadding removes the padding entirely.
type ObjectPatch struct {
	Type         *ObjectType
	Label        *string
	X            *float64
	Y            *float64
	Width        *float64
	Height       *float64
	Color        *string
	Padding      *Padding
	ClearPadding bool
}

func (p ObjectPatch) apply(o VenueObject) VenueObject {
	if p.Type != nil {
		o.Type = *p.Type
	}
	if p.Label != nil {
		o.Label = *p.Label
	}
	if p.X != nil {
		o.X = *p.X
	}
	if p.Y != nil {
		o.Y = *p.Y
	}
	if p.Width != nil {
		o.Width = *p.Width
	}
	if p.Height != nil {
		o.Height = *p.Height
	}
	if p.Color != nil {
		o.Color = *p.Color
	}
	if p.Padding != nil {
		o.Padding = p.Padding
	}
	if p.ClearPadding {
		o.Padding = nil
	}
	return o
}
