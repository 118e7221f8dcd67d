// Package editor provides the stateful seating chart editor: a document with
// undo/redo history, convenience constructors for new entities, the
// arrangement and auto-seat engines wired to the action stream, and debounced
// autosave.
//
// # Ownership
//
// An [Editor] is an explicit state container owned by its caller. There is no
// process-wide singleton; open two documents and you get two fully
// independent editors. All mutations go through one serialized action stream
// per editor: it locks internally, so its methods may be called from
// multiple goroutines (an HTTP handler pool, a UI loop plus a timer), but the
// intended model remains a single logical writer per document.
//
// # Autosave
//
// After every settled change the editor schedules a save for one debounce
// interval later; a new change before the timer fires cancels and restarts
// it, so a burst of edits costs exactly one save carrying the final document.
// Superseded saves are never sent. A save failure is reported through the
// configured error callback and the save hooks; it never rolls back or blocks
// further edits.
package editor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ethan-kaseff/seating-chart/pkg/observability"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/arrange"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/autoseat"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/history"
)

// DefaultDebounce is the quiet interval after which a settled document is
// saved.
const DefaultDebounce = time.Second

// DefaultSeatCount is the seat count for tables created without an explicit
// capacity.
const DefaultSeatCount = 8

// SaveFunc persists a settled document. The editor calls it at most once per
// quiet interval, from its own goroutine.
type SaveFunc func(ctx context.Context, doc seating.Document) error

// Options configures an Editor. The zero value is usable: no autosave,
// default history capacity.
type Options struct {
	// Save, when set, enables debounced autosave.
	Save SaveFunc

	// Debounce overrides DefaultDebounce. Zero means the default.
	Debounce time.Duration

	// OnSaveError is called with any save failure. May be nil.
	OnSaveError func(error)

	// HistoryCapacity overrides history.DefaultCapacity. Zero means the
	// default.
	HistoryCapacity int
}

// Editor is a seating document with history, engines, and autosave.
type Editor struct {
	mu   sync.Mutex
	hist *history.History
	opts Options

	// version counts settled document changes. The debounce timer captures
	// the version it was scheduled for and gives up if another change
	// arrived before it fired; that check-and-swap is the only guard the
	// timer-fire-vs-reschedule race needs.
	version uint64
	timer   *time.Timer

	closed bool
}

// New creates an editor over the given initial document.
func New(initial seating.Document, opts Options) *Editor {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	capacity := opts.HistoryCapacity
	if capacity <= 0 {
		capacity = history.DefaultCapacity
	}
	return &Editor{
		hist: history.NewWithCapacity(initial, capacity),
		opts: opts,
	}
}

// Document returns the current document.
func (e *Editor) Document() seating.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.Present()
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanRedo()
}

// Dispatch applies an action through the reducer and history, reporting
// whether the document changed. Effective changes (re)schedule autosave.
func (e *Editor) Dispatch(action seating.Action) bool {
	e.mu.Lock()
	changed := e.hist.Dispatch(action)
	if changed {
		e.scheduleSaveLocked()
	}
	e.mu.Unlock()

	observability.Editor().OnActionApplied(context.Background(), action.Name(), changed)
	return changed
}

// Undo steps back one undoable action. Transient zoom/floor-size changes do
// not count as steps.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	stepped := e.hist.Undo()
	if stepped {
		e.scheduleSaveLocked()
	}
	e.mu.Unlock()

	observability.Editor().OnUndo(context.Background(), stepped)
	return stepped
}

// Redo re-applies the most recently undone action.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	stepped := e.hist.Redo()
	if stepped {
		e.scheduleSaveLocked()
	}
	e.mu.Unlock()

	observability.Editor().OnRedo(context.Background(), stepped)
	return stepped
}

// =============================================================================
// Entity Constructors
// =============================================================================

// AddTable creates a table with generated id, sequential name, cycled color,
// and a default position walking a 4-column grid, then dispatches it.
func (e *Editor) AddTable(seatCount int, name string) seating.Table {
	if seatCount <= 0 {
		seatCount = DefaultSeatCount
	}

	n := len(e.Document().Tables)
	if name == "" {
		name = fmt.Sprintf("Table %d", n+1)
	}
	table := seating.Table{
		ID:    "table-" + uuid.NewString(),
		Name:  name,
		X:     100 + float64(n%4)*150,
		Y:     100 + math.Floor(float64(n)/4)*150,
		Seats: make([]seating.Seat, seatCount),
		Color: seating.TableColors[n%len(seating.TableColors)],
	}
	e.Dispatch(seating.AddTable{Table: table})
	return table
}

// AddGuest creates a guest with a generated id and dispatches it. An empty
// meal defaults to seating.DefaultMeal.
func (e *Editor) AddGuest(name, group, meal string, dietary []string) seating.Guest {
	if meal == "" {
		meal = seating.DefaultMeal
	}
	if dietary == nil {
		dietary = []string{}
	}
	guest := seating.Guest{
		ID:      "guest-" + uuid.NewString(),
		Name:    name,
		Group:   group,
		Meal:    meal,
		Dietary: dietary,
	}
	e.Dispatch(seating.AddGuest{Guest: guest})
	return guest
}

// AddObject creates a venue object of the given type at (x, y) with the
// catalog's default footprint and dispatches it. An empty label defaults to
// the catalog label.
func (e *Editor) AddObject(objType seating.ObjectType, label string, x, y float64) seating.VenueObject {
	spec := seating.ObjectSpecFor(objType)
	if label == "" {
		label = spec.Label
	}
	obj := seating.VenueObject{
		ID:     "object-" + uuid.NewString(),
		Type:   spec.Type,
		Label:  label,
		X:      x,
		Y:      y,
		Width:  spec.DefaultWidth,
		Height: spec.DefaultHeight,
	}
	e.Dispatch(seating.AddObject{Object: obj})
	return obj
}

// =============================================================================
// Engines
// =============================================================================

// Arrange runs the table arrangement engine and applies the resulting
// positions as individual UpdateTable actions, so the whole arrangement is
// one batch of undoable steps.
//
// When the engine proposes a floor resize, decide is consulted (nil declines
// everything). On acceptance the floor size is updated and positions are
// recomputed at the proposed width before being applied; on decline the
// best-effort positions are applied at the current floor size, which may
// place tables beyond the floor edge.
func (e *Editor) Arrange(opts arrange.Options, decide func(arrange.Proposal) bool) {
	start := time.Now()
	doc := e.Document()
	plan := arrange.Compute(doc, opts)

	positions := plan.Positions
	if plan.Proposal != nil && decide != nil && decide(*plan.Proposal) {
		e.Dispatch(seating.SetFloorSize{Width: plan.Proposal.Width, Height: plan.Proposal.Height})
		positions = arrange.ComputeAt(doc, opts, plan.Proposal.Width)
	}

	applied := arrange.Plan{Positions: positions}
	for _, action := range applied.Actions(doc) {
		e.Dispatch(action)
	}

	observability.Editor().OnArrange(context.Background(),
		len(doc.Tables), plan.Proposal != nil, time.Since(start))
}

// AutoSeat runs the group-aware seat packer over the unassigned guests and
// applies its assignments. It returns the number of guests placed.
func (e *Editor) AutoSeat() int {
	start := time.Now()
	doc := e.Document()
	plan := autoseat.Compute(doc)
	for _, action := range plan {
		e.Dispatch(action)
	}

	leftover := len(doc.UnassignedGuests()) - len(plan)
	observability.Editor().OnAutoSeat(context.Background(), len(plan), leftover, time.Since(start))
	return len(plan)
}

// =============================================================================
// Autosave
// =============================================================================

// scheduleSaveLocked restarts the debounce timer for the current document.
// Caller holds e.mu.
func (e *Editor) scheduleSaveLocked() {
	if e.opts.Save == nil || e.closed {
		return
	}

	e.version++
	v := e.version
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.opts.Debounce, func() { e.fireSave(v) })

	observability.Save().OnSaveScheduled(context.Background(), v)
}

// fireSave runs when the debounce timer elapses. It saves only if no newer
// change superseded the scheduled version.
func (e *Editor) fireSave(v uint64) {
	e.mu.Lock()
	if e.closed || v != e.version {
		e.mu.Unlock()
		return
	}
	doc := e.hist.Present()
	e.mu.Unlock()

	e.save(v, doc)
}

func (e *Editor) save(v uint64, doc seating.Document) {
	start := time.Now()
	err := e.opts.Save(context.Background(), doc)
	observability.Save().OnSaveComplete(context.Background(), v, time.Since(start), err)
	if err != nil && e.opts.OnSaveError != nil {
		e.opts.OnSaveError(err)
	}
}

// Flush cancels any pending debounce and saves the current document
// immediately. With no save function configured it is a no-op.
func (e *Editor) Flush(ctx context.Context) error {
	e.mu.Lock()
	if e.opts.Save == nil {
		e.mu.Unlock()
		return nil
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	v := e.version
	doc := e.hist.Present()
	save := e.opts.Save
	e.mu.Unlock()

	start := time.Now()
	err := save(ctx, doc)
	observability.Save().OnSaveComplete(ctx, v, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("flush document: %w", err)
	}
	return nil
}

// Close stops the debounce timer. Pending unsaved changes are dropped; call
// Flush first to persist them. Close is idempotent.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
