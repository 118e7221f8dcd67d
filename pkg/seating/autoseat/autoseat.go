// Package autoseat assigns unseated guests to tables, keeping parties
// together.
//
// Guests sharing a group label are placed as a unit at the table whose free
// seat count is the tightest fit, largest parties first. Guests without a
// group are deliberately kept as singletons so the packer never bundles solo
// attendees into an artificial party. A group too large for any single table
// is split across tables in table list order, filling each before moving on.
// Guests left over when every seat is taken simply stay unseated; seats are
// never invented.
//
// Compute is pure: it returns the assignments as AssignGuest actions to be
// dispatched through the normal reducer path, so the seat-exclusivity rule
// applies uniformly. Targets are drawn from free seats only, so in practice
// no placement ever displaces a seated guest.
package autoseat

import (
	"sort"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// tableSeats tracks the remaining free seat indexes of one table during
// packing.
type tableSeats struct {
	tableID   string
	available []int
}

// Compute plans seat assignments for every unseated guest it can place.
// With no unseated guests or no tables the plan is empty.
func Compute(doc seating.Document) []seating.Action {
	unassigned := doc.UnassignedGuests()
	if len(unassigned) == 0 || len(doc.Tables) == 0 {
		return nil
	}

	groups := partition(unassigned)

	// Free seats per table, in table list order.
	tables := make([]*tableSeats, len(doc.Tables))
	for i, t := range doc.Tables {
		tables[i] = &tableSeats{tableID: t.ID, available: doc.AvailableSeats(t)}
	}

	var actions []seating.Action
	assign := func(g seating.Guest, ts *tableSeats) {
		seatIndex := ts.available[0]
		ts.available = ts.available[1:]
		actions = append(actions, seating.AssignGuest{
			GuestID:   g.ID,
			TableID:   ts.tableID,
			SeatIndex: seatIndex,
		})
	}

	for _, group := range groups {
		if ts := tightestFit(tables, len(group)); ts != nil {
			for _, g := range group {
				assign(g, ts)
			}
			continue
		}

		// No single table can hold the group: split it across tables in
		// list order, draining each table's free seats before moving on.
		// Guests left when all seats are gone stay unseated.
		remaining := group
		for _, ts := range tables {
			for len(ts.available) > 0 && len(remaining) > 0 {
				assign(remaining[0], ts)
				remaining = remaining[1:]
			}
			if len(remaining) == 0 {
				break
			}
		}
	}
	return actions
}

// partition splits guests into parties by group label, each empty-label
// guest forming its own singleton, ordered largest party first. Ties keep
// first-appearance order so the plan is deterministic.
func partition(guests []seating.Guest) [][]seating.Guest {
	index := make(map[string]int)
	var groups [][]seating.Guest
	for _, g := range guests {
		if g.Group == "" {
			groups = append(groups, []seating.Guest{g})
			continue
		}
		i, ok := index[g.Group]
		if !ok {
			i = len(groups)
			index[g.Group] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], g)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return len(groups[a]) > len(groups[b])
	})
	return groups
}

// tightestFit returns the table with the fewest free seats still holding at
// least size, or nil when no single table fits. Groups are processed largest
// first, so taking the tightest fit preserves the bigger openings for the
// groups that still need them.
func tightestFit(tables []*tableSeats, size int) *tableSeats {
	var best *tableSeats
	for _, ts := range tables {
		if len(ts.available) < size {
			continue
		}
		if best == nil || len(ts.available) < len(best.available) {
			best = ts
		}
	}
	return best
}
