// Package arrange computes table positions for a seating chart floor plan.
//
// # Overview
//
// The engine packs round tables into rows, in a plain grid or a staggered
// (honeycomb) pattern, while keeping every table clear of the exclusion zone
// around each venue object. Rows are discovered by scanning downward in
// half-row steps, so a row can tuck in close beneath a stage or bar instead
// of snapping to a rigid grid pitch.
//
// The engine is total: it returns exactly one position per table, in table
// order, for any input. When the resulting layout does not fit the floor
// (or wastes most of it) the plan carries a [Proposal] for a better floor
// size; the decision belongs to the caller. A declined proposal is not an
// error: the positions are still valid best-effort placements, possibly
// extending past the floor edge.
//
// Plan is a pure computation. Applying a plan to a document is the caller's
// job, normally one UpdateTable action per table so the whole arrangement is
// undoable.
package arrange

import (
	"math"
	"sort"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// Layout selects the packing pattern.
type Layout string

// Packing patterns.
const (
	LayoutGrid      Layout = "grid"
	LayoutStaggered Layout = "staggered"
)

// Geometry constants shared with the floor plan view.
const (
	// TableRadius is the radius of a rendered round table in floor units.
	TableRadius = 70.0

	// layoutMargin is the gap kept between the layout and the floor edge.
	layoutMargin = TableRadius + 10

	// scanLimit bounds the downward row scan. Scanning past this means the
	// floor can never hold every table; remaining tables are placed at the
	// last usable slot rather than blocking.
	scanLimit = 10000.0
)

// Defaults for arrangement options.
const (
	DefaultSpacing         = 200.0
	DefaultObjectClearance = 30.0
)

// Options controls the arrangement.
type Options struct {
	// Layout is the packing pattern; defaults to LayoutGrid.
	Layout Layout

	// Spacing is the center-to-center distance between adjacent tables.
	Spacing float64

	// ObjectClearance is the minimum distance kept from every venue object.
	// Each side of an object uses the larger of this and the object's own
	// declared padding for that side.
	ObjectClearance float64

	// MaxColumns caps the slots per row. Zero means auto:
	// ceil(sqrt(table count)).
	MaxColumns int
}

func (o Options) withDefaults() Options {
	if o.Layout == "" {
		o.Layout = LayoutGrid
	}
	if o.Spacing <= 0 {
		o.Spacing = DefaultSpacing
	}
	if o.ObjectClearance < 0 {
		o.ObjectClearance = 0
	}
	return o
}

// Position is a table center point.
type Position struct {
	X float64
	Y float64
}

// Proposal is a suggested floor resize, produced when the computed layout
// does not fit the current floor or uses less than 60% of it in either
// dimension. The caller decides whether to accept; either way the plan's
// positions stand.
type Proposal struct {
	Width    float64
	Height   float64
	TooSmall bool // layout overflows the floor (false: floor is oversized)
}

// Plan is the result of an arrangement: one position per table in document
// table order, plus an optional floor-resize proposal.
type Plan struct {
	Positions []Position
	Proposal  *Proposal
}

// Actions converts the plan into one UpdateTable action per table, pairing
// positions with the given document's tables by index. Emitting individual
// actions keeps the arrangement undoable through the normal history path.
func (p Plan) Actions(doc seating.Document) []seating.Action {
	n := min(len(p.Positions), len(doc.Tables))
	actions := make([]seating.Action, 0, n)
	for i := 0; i < n; i++ {
		pos := p.Positions[i]
		x, y := pos.X, pos.Y
		actions = append(actions, seating.UpdateTable{
			ID:    doc.Tables[i].ID,
			Patch: seating.TablePatch{X: &x, Y: &y},
		})
	}
	return actions
}

// Compute arranges every table in the document at its current floor size.
// With zero tables the plan is empty with no proposal.
func Compute(doc seating.Document, opts Options) Plan {
	if len(doc.Tables) == 0 {
		return Plan{}
	}
	opts = opts.withDefaults()

	floorW := doc.FloorSize.Width
	floorH := doc.FloorSize.Height
	positions := ComputeAt(doc, opts, floorW)

	// Bounding box of the layout, padded by the margin.
	minX := math.Inf(1)
	maxX := math.Inf(-1)
	maxY := math.Inf(-1)
	for _, p := range positions {
		minX = math.Min(minX, p.X-TableRadius)
		maxX = math.Max(maxX, p.X+TableRadius)
		maxY = math.Max(maxY, p.Y+TableRadius)
	}
	neededW := maxX + layoutMargin
	neededH := maxY + layoutMargin

	tooSmall := neededW > floorW || neededH > floorH || minX < 0
	tooLarge := neededW < floorW*0.6 || neededH < floorH*0.6

	plan := Plan{Positions: positions}
	if tooSmall || tooLarge {
		suggestW := neededW
		if minX < 0 {
			suggestW = math.Max(neededW, neededW-minX+layoutMargin)
		}
		plan.Proposal = &Proposal{Width: suggestW, Height: neededH, TooSmall: tooSmall}
	}
	return plan
}

// ComputeAt arranges the document's tables for the given floor width,
// ignoring the document's own floor size. It is used to recompute positions
// after an accepted resize proposal.
func ComputeAt(doc seating.Document, opts Options, floorWidth float64) []Position {
	opts = opts.withDefaults()
	tableCount := len(doc.Tables)
	if tableCount == 0 {
		return nil
	}

	cols := opts.MaxColumns
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(tableCount))))
	}

	rowH := opts.Spacing
	if opts.Layout == LayoutStaggered {
		rowH = opts.Spacing * 0.866
	}
	scanStep := rowH / 2

	zones := exclusionZones(doc.Objects, opts.ObjectClearance)

	// Downward scan: a row is accepted once it clears the previous accepted
	// row by a full row height and offers at least one usable slot.
	type slot struct{ x, y float64 }
	var slots []slot
	y := layoutMargin
	placedRows := 0
	lastPlacedY := math.Inf(-1)
	for len(slots) < tableCount && y < scanLimit {
		if y-lastPlacedY < rowH-1 {
			y += scanStep
			continue
		}

		startX := rowStartX(floorWidth, opts, cols, placedRows)
		var rowSlots []slot
		for col := 0; col < cols; col++ {
			x := startX + float64(col)*opts.Spacing
			if !overlapsAny(zones, x, y) {
				rowSlots = append(rowSlots, slot{x: x, y: y})
			}
		}

		if len(rowSlots) > 0 {
			slots = append(slots, rowSlots...)
			placedRows++
			lastPlacedY = y
			y += rowH
		} else {
			y += scanStep
		}
	}

	// First tableCount slots in scan order. If the scan bound cut the search
	// short, remaining tables pile onto the last usable slot; placement is
	// best-effort, never blocking.
	positions := make([]Position, tableCount)
	for i := range positions {
		switch {
		case i < len(slots):
			positions[i] = Position{X: slots[i].x, Y: slots[i].y}
		case len(slots) > 0:
			last := slots[len(slots)-1]
			positions[i] = Position{X: last.x, Y: last.y}
		default:
			positions[i] = Position{X: floorWidth / 2, Y: layoutMargin}
		}
	}

	recenterRows(positions, opts, floorWidth)
	return positions
}

// exclusionZone is an expanded bounding rectangle around a venue object.
type exclusionZone struct {
	left, top, right, bottom float64
}

// exclusionZones expands each object's bounding box per side by the larger
// of the object's own padding and the global clearance.
func exclusionZones(objects []seating.VenueObject, clearance float64) []exclusionZone {
	zones := make([]exclusionZone, len(objects))
	for i, obj := range objects {
		var pad seating.Padding
		if obj.Padding != nil {
			pad = *obj.Padding
		}
		zones[i] = exclusionZone{
			left:   obj.X - math.Max(pad.Left, clearance),
			top:    obj.Y - math.Max(pad.Top, clearance),
			right:  obj.X + obj.Width + math.Max(pad.Right, clearance),
			bottom: obj.Y + obj.Height + math.Max(pad.Bottom, clearance),
		}
	}
	return zones
}

// overlapsAny reports whether a table-sized square centered at (x, y)
// intersects any exclusion zone.
func overlapsAny(zones []exclusionZone, x, y float64) bool {
	for _, z := range zones {
		if x+TableRadius > z.left && x-TableRadius < z.right &&
			y+TableRadius > z.top && y-TableRadius < z.bottom {
			return true
		}
	}
	return false
}

// rowStartX returns the x of the first slot in a row of cols nominal slots,
// centered on the floor, with the staggered offset applied by row parity.
func rowStartX(floorWidth float64, opts Options, cols, rowIndex int) float64 {
	rowW := float64(cols-1) * opts.Spacing
	return (floorWidth-rowW)/2 + staggerOffset(opts, rowIndex)
}

func staggerOffset(opts Options, rowIndex int) float64 {
	if opts.Layout != LayoutStaggered {
		return 0
	}
	if rowIndex%2 == 1 {
		return opts.Spacing / 4
	}
	return -opts.Spacing / 4
}

// recenterRows re-centers each row on the tables that actually landed in it.
// A row that received fewer tables than the nominal column count would sit
// off-center otherwise. Left-to-right order within the row is preserved.
func recenterRows(positions []Position, opts Options, floorWidth float64) {
	rows := make(map[int][]int)
	for i, p := range positions {
		key := int(math.Round(p.Y))
		rows[key] = append(rows[key], i)
	}

	keys := make([]int, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for rowIdx, key := range keys {
		indices := rows[key]
		sort.Slice(indices, func(a, b int) bool {
			return positions[indices[a]].X < positions[indices[b]].X
		})

		rowW := float64(len(indices)-1) * opts.Spacing
		startX := (floorWidth-rowW)/2 + staggerOffset(opts, rowIdx)
		for col, idx := range indices {
			positions[idx].X = startX + float64(col)*opts.Spacing
		}
	}
}
