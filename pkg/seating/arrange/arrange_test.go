package arrange

import (
	"fmt"
	"math"
	"testing"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

func docWithTables(n int) seating.Document {
	doc := seating.NewDocument()
	for i := 0; i < n; i++ {
		doc.Tables = append(doc.Tables, seating.Table{
			ID:    fmt.Sprintf("t%d", i),
			Name:  fmt.Sprintf("Table %d", i+1),
			Seats: make([]seating.Seat, 8),
		})
	}
	return doc
}

func TestComputeZeroTables(t *testing.T) {
	plan := Compute(seating.NewDocument(), Options{})
	if len(plan.Positions) != 0 {
		t.Errorf("positions = %d, want 0", len(plan.Positions))
	}
	if plan.Proposal != nil {
		t.Error("empty arrangement should not propose a resize")
	}
}

func TestComputeCompleteness(t *testing.T) {
	// One position per table, in table order, regardless of table count,
	// layout, or obstacles.
	layouts := []Layout{LayoutGrid, LayoutStaggered}
	counts := []int{1, 2, 5, 9, 16, 30}

	for _, layout := range layouts {
		for _, n := range counts {
			t.Run(fmt.Sprintf("%s/%d", layout, n), func(t *testing.T) {
				doc := docWithTables(n)
				doc.Objects = []seating.VenueObject{
					{ID: "o1", Type: seating.ObjectStage, X: 400, Y: 0, Width: 200, Height: 80},
					{ID: "o2", Type: seating.ObjectDancefloor, X: 500, Y: 300, Width: 150, Height: 150},
				}
				plan := Compute(doc, Options{Layout: layout})
				if len(plan.Positions) != n {
					t.Fatalf("positions = %d, want %d", len(plan.Positions), n)
				}
			})
		}
	}
}

func TestComputeRowsAndOrder(t *testing.T) {
	// Nine tables, auto columns → 3 per row, scan order top-to-bottom and
	// left-to-right within each row.
	doc := docWithTables(9)
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200})

	prevY := math.Inf(-1)
	for i := 0; i < 9; i += 3 {
		row := plan.Positions[i : i+3]
		if row[0].Y <= prevY {
			t.Errorf("row starting at table %d not below previous row", i)
		}
		prevY = row[0].Y
		if row[0].Y != row[1].Y || row[1].Y != row[2].Y {
			t.Errorf("row starting at table %d not level: %+v", i, row)
		}
		if !(row[0].X < row[1].X && row[1].X < row[2].X) {
			t.Errorf("row starting at table %d not left-to-right: %+v", i, row)
		}
		if row[1].X-row[0].X != 200 || row[2].X-row[1].X != 200 {
			t.Errorf("row starting at table %d not evenly spaced: %+v", i, row)
		}
	}
}

func TestComputeRowsCenteredOnFloor(t *testing.T) {
	doc := docWithTables(3)
	doc.FloorSize = seating.FloorSize{Width: 1200, Height: 800}
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200, MaxColumns: 3})

	// 3 tables in one row spanning 400, centered: 400..800.
	want := []float64{400, 600, 800}
	for i, p := range plan.Positions {
		if p.X != want[i] {
			t.Errorf("table %d x = %v, want %v", i, p.X, want[i])
		}
	}
}

func TestComputePartialRowRecentered(t *testing.T) {
	// Four tables over two columns per row would fill two rows; force three
	// columns so the last row holds a single table, which must be centered
	// on its own occupancy.
	doc := docWithTables(4)
	doc.FloorSize = seating.FloorSize{Width: 1200, Height: 800}
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200, MaxColumns: 3})

	last := plan.Positions[3]
	if last.X != 600 {
		t.Errorf("lone table in final row x = %v, want centered at 600", last.X)
	}
}

func TestComputeAvoidsExclusionZones(t *testing.T) {
	doc := docWithTables(6)
	doc.Objects = []seating.VenueObject{
		{ID: "stage", Type: seating.ObjectStage, X: 450, Y: 0, Width: 300, Height: 120},
		{
			ID: "bar", Type: seating.ObjectBar, X: 0, Y: 400, Width: 120, Height: 40,
			Padding: &seating.Padding{Top: 50, Right: 50, Bottom: 50, Left: 50},
		},
	}

	clearance := 30.0
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200, ObjectClearance: clearance})
	zones := exclusionZones(doc.Objects, clearance)

	for i, p := range plan.Positions {
		if overlapsAny(zones, p.X, p.Y) {
			t.Errorf("table %d at (%v, %v) overlaps an exclusion zone", i, p.X, p.Y)
		}
	}
}

func TestExclusionZonePerSideMax(t *testing.T) {
	obj := seating.VenueObject{
		ID: "o", X: 100, Y: 100, Width: 50, Height: 50,
		Padding: &seating.Padding{Top: 80, Right: 10, Bottom: 0, Left: 40},
	}
	zones := exclusionZones([]seating.VenueObject{obj}, 30)
	z := zones[0]

	// Per side the larger of declared padding and global clearance wins.
	if z.top != 100-80 {
		t.Errorf("top = %v, want %v", z.top, 20.0)
	}
	if z.right != 150+30 {
		t.Errorf("right = %v, want %v", z.right, 180.0)
	}
	if z.bottom != 150+30 {
		t.Errorf("bottom = %v, want %v", z.bottom, 180.0)
	}
	if z.left != 100-40 {
		t.Errorf("left = %v, want %v", z.left, 60.0)
	}
}

func TestComputeStaggeredOffsets(t *testing.T) {
	doc := docWithTables(4)
	doc.FloorSize = seating.FloorSize{Width: 1200, Height: 800}
	plan := Compute(doc, Options{Layout: LayoutStaggered, Spacing: 200, MaxColumns: 2})

	if len(plan.Positions) != 4 {
		t.Fatalf("positions = %d, want 4", len(plan.Positions))
	}
	row0 := plan.Positions[0]
	row1 := plan.Positions[2]

	// Staggered rows are packed tighter than the grid pitch.
	gotRowGap := row1.Y - row0.Y
	wantRowGap := 200 * 0.866
	if math.Abs(gotRowGap-wantRowGap) > 1e-9 {
		t.Errorf("row gap = %v, want %v", gotRowGap, wantRowGap)
	}

	// Even rows shift left, odd rows shift right, half a spacing apart.
	if gotShift := row1.X - row0.X; gotShift != 100 {
		t.Errorf("stagger shift = %v, want 100", gotShift)
	}
}

func TestComputeProposesGrowthWhenFloorTooSmall(t *testing.T) {
	doc := docWithTables(16)
	doc.FloorSize = seating.FloorSize{Width: 600, Height: 450}
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200})

	if plan.Proposal == nil {
		t.Fatal("expected a resize proposal for an overflowing layout")
	}
	if !plan.Proposal.TooSmall {
		t.Error("proposal should flag the floor as too small")
	}
	if plan.Proposal.Width <= doc.FloorSize.Width && plan.Proposal.Height <= doc.FloorSize.Height {
		t.Errorf("proposal %+v does not grow the floor", *plan.Proposal)
	}
	// Best-effort placement still covers every table.
	if len(plan.Positions) != 16 {
		t.Errorf("positions = %d, want 16", len(plan.Positions))
	}
}

func TestComputeProposesShrinkWhenFloorOversized(t *testing.T) {
	doc := docWithTables(2)
	doc.FloorSize = seating.FloorSize{Width: 4000, Height: 3000}
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200})

	if plan.Proposal == nil {
		t.Fatal("expected a resize proposal for a mostly empty floor")
	}
	if plan.Proposal.TooSmall {
		t.Error("proposal should flag the floor as too large, not too small")
	}
	if plan.Proposal.Width >= doc.FloorSize.Width {
		t.Errorf("proposed width %v does not shrink %v", plan.Proposal.Width, doc.FloorSize.Width)
	}
}

func TestComputeAtRecomputesForAcceptedProposal(t *testing.T) {
	doc := docWithTables(9)
	doc.FloorSize = seating.FloorSize{Width: 500, Height: 400}
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200})
	if plan.Proposal == nil {
		t.Fatal("expected a resize proposal")
	}

	positions := ComputeAt(doc, Options{Layout: LayoutGrid, Spacing: 200}, plan.Proposal.Width)
	if len(positions) != 9 {
		t.Fatalf("positions = %d, want 9", len(positions))
	}
	// At the proposed width the layout is centered within bounds.
	for i, p := range positions {
		if p.X-TableRadius < 0 || p.X+TableRadius > plan.Proposal.Width {
			t.Errorf("table %d at x=%v outside proposed width %v", i, p.X, plan.Proposal.Width)
		}
	}
}

func TestComputeSaturatedFloorStillPlacesEveryTable(t *testing.T) {
	// A floor blanketed by one huge exclusion zone: no slot can clear it, so
	// the scan hits its bound and tables share the fallback position rather
	// than the engine blocking or dropping tables.
	doc := docWithTables(3)
	doc.Objects = []seating.VenueObject{
		{ID: "wall", Type: seating.ObjectCustom, X: -20000, Y: -20000, Width: 60000, Height: 60000},
	}
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200})
	if len(plan.Positions) != 3 {
		t.Fatalf("positions = %d, want 3", len(plan.Positions))
	}
}

func TestPlanActions(t *testing.T) {
	doc := docWithTables(3)
	plan := Compute(doc, Options{Layout: LayoutGrid, Spacing: 200})
	actions := plan.Actions(doc)

	if len(actions) != 3 {
		t.Fatalf("actions = %d, want 3", len(actions))
	}
	for i, a := range actions {
		ut, ok := a.(seating.UpdateTable)
		if !ok {
			t.Fatalf("action %d is %T, want UpdateTable", i, a)
		}
		if ut.ID != doc.Tables[i].ID {
			t.Errorf("action %d targets %s, want %s", i, ut.ID, doc.Tables[i].ID)
		}
		if ut.Patch.X == nil || ut.Patch.Y == nil {
			t.Errorf("action %d missing position patch", i)
		}
		if ut.Patch.Name != nil || ut.Patch.Seats != nil || ut.Patch.Color != nil {
			t.Errorf("action %d patches more than position", i)
		}
	}

	// Applying the actions moves the tables to the planned positions.
	next := doc
	for _, a := range actions {
		next, _ = seating.Apply(next, a)
	}
	for i, p := range plan.Positions {
		if next.Tables[i].X != p.X || next.Tables[i].Y != p.Y {
			t.Errorf("table %d at (%v, %v), want (%v, %v)",
				i, next.Tables[i].X, next.Tables[i].Y, p.X, p.Y)
		}
	}
}
