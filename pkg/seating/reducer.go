package seating

// Apply is the seating reducer: a pure transition function from a document
// and an action to the next document. It never mutates its input; entity
// slices are copied on write and unchanged slices are shared between
// versions.
//
// The second return value reports whether the action had any effect. Actions
// naming an id that does not exist are silent no-ops returning the input
// document and false, which gives callers cheap change detection without
// comparing documents.
//
// Apply enforces exactly two invariants of its own: seat exclusivity (no two
// guests share a non-nil (table, seat) pair, kept by the swap-out rule on
// AssignGuest) and cascade-on-delete (deleting a table unseats its guests).
// It does not validate foreign references; issuing actions against ids the
// caller does not hold is the caller's bug, not the reducer's.
func Apply(doc Document, action Action) (Document, bool) {
	switch a := action.(type) {
	case SetDocument:
		return a.Document, true

	case AddTable:
		doc.Tables = appendCopy(doc.Tables, a.Table)
		return doc, true

	case UpdateTable:
		tables, ok := updateByID(doc.Tables, a.ID, tableID, a.Patch.apply)
		if !ok {
			return doc, false
		}
		doc.Tables = tables
		return doc, true

	case DeleteTable:
		tables, ok := deleteByID(doc.Tables, a.ID, tableID)
		if !ok {
			return doc, false
		}
		doc.Tables = tables
		doc.Guests = mapGuests(doc.Guests, func(g Guest) Guest {
			if g.TableID != nil && *g.TableID == a.ID {
				g.TableID = nil
				g.SeatIndex = nil
			}
			return g
		})
		return doc, true

	case AddGuest:
		doc.Guests = appendCopy(doc.Guests, a.Guest)
		return doc, true

	case UpdateGuest:
		guests, ok := updateByID(doc.Guests, a.ID, guestID, a.Patch.apply)
		if !ok {
			return doc, false
		}
		doc.Guests = guests
		return doc, true

	case DeleteGuest:
		guests, ok := deleteByID(doc.Guests, a.ID, guestID)
		if !ok {
			return doc, false
		}
		doc.Guests = guests
		return doc, true

	case AssignGuest:
		if _, ok := doc.Guest(a.GuestID); !ok {
			return doc, false
		}
		// Swap-out, not swap: whoever holds the target seat is unseated and
		// does not inherit the incoming guest's prior seat.
		doc.Guests = mapGuests(doc.Guests, func(g Guest) Guest {
			switch {
			case g.ID == a.GuestID:
				g.TableID = ptr(a.TableID)
				g.SeatIndex = ptr(a.SeatIndex)
			case g.SeatedAt(a.TableID, a.SeatIndex):
				g.TableID = nil
				g.SeatIndex = nil
			}
			return g
		})
		return doc, true

	case UnassignGuest:
		guests, ok := updateByID(doc.Guests, a.GuestID, guestID, func(g Guest) Guest {
			g.TableID = nil
			g.SeatIndex = nil
			return g
		})
		if !ok {
			return doc, false
		}
		doc.Guests = guests
		return doc, true

	case AddObject:
		doc.Objects = appendCopy(doc.Objects, a.Object)
		return doc, true

	case UpdateObject:
		objects, ok := updateByID(doc.Objects, a.ID, objectID, a.Patch.apply)
		if !ok {
			return doc, false
		}
		doc.Objects = objects
		return doc, true

	case DeleteObject:
		objects, ok := deleteByID(doc.Objects, a.ID, objectID)
		if !ok {
			return doc, false
		}
		doc.Objects = objects
		return doc, true

	case SetZoom:
		doc.Zoom = clampZoom(a.Zoom)
		return doc, true

	case SetFloorSize:
		doc.FloorSize = FloorSize{Width: a.Width, Height: a.Height}
		return doc, true

	default:
		// Unknown action types are defensive no-ops.
		return doc, false
	}
}

func tableID(t Table) string        { return t.ID }
func guestID(g Guest) string        { return g.ID }
func objectID(o VenueObject) string { return o.ID }

func appendCopy[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, v)
}

func updateByID[T any](list []T, id string, idOf func(T) string, fn func(T) T) ([]T, bool) {
	idx := -1
	for i, v := range list {
		if idOf(v) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list, false
	}
	out := make([]T, len(list))
	copy(out, list)
	out[idx] = fn(out[idx])
	return out, true
}

func deleteByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	idx := -1
	for i, v := range list {
		if idOf(v) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list, false
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:idx]...)
	return append(out, list[idx+1:]...), true
}

func mapGuests(guests []Guest, fn func(Guest) Guest) []Guest {
	out := make([]Guest, len(guests))
	for i, g := range guests {
		out[i] = fn(g)
	}
	return out
}
