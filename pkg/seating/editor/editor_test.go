package editor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/arrange"
)

// saveRecorder collects documents passed to the editor's save function.
type saveRecorder struct {
	mu    sync.Mutex
	docs  []seating.Document
	err   error
	calls chan struct{}
}

func newSaveRecorder() *saveRecorder {
	return &saveRecorder{calls: make(chan struct{}, 64)}
}

func (r *saveRecorder) save(_ context.Context, doc seating.Document) error {
	r.mu.Lock()
	r.docs = append(r.docs, doc)
	err := r.err
	r.mu.Unlock()
	r.calls <- struct{}{}
	return err
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func (r *saveRecorder) last() seating.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[len(r.docs)-1]
}

func (r *saveRecorder) waitForSave(t *testing.T) {
	t.Helper()
	select {
	case <-r.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for save")
	}
}

func TestAddTableDefaults(t *testing.T) {
	e := New(seating.NewDocument(), Options{})
	defer e.Close()

	t1 := e.AddTable(0, "")
	t2 := e.AddTable(10, "Head Table")

	if t1.Name != "Table 1" || len(t1.Seats) != DefaultSeatCount {
		t.Errorf("t1 = %q with %d seats, want Table 1 with %d", t1.Name, len(t1.Seats), DefaultSeatCount)
	}
	if t2.Name != "Head Table" || len(t2.Seats) != 10 {
		t.Errorf("t2 = %q with %d seats", t2.Name, len(t2.Seats))
	}
	if t1.ID == t2.ID {
		t.Error("generated table ids collide")
	}
	if t1.Color == t2.Color {
		t.Error("color palette not cycled")
	}
	// Grid-walk default positions.
	if t2.X != t1.X+150 || t2.Y != t1.Y {
		t.Errorf("t2 at (%v, %v), want one grid step right of t1 (%v, %v)", t2.X, t2.Y, t1.X, t1.Y)
	}
	if got := len(e.Document().Tables); got != 2 {
		t.Errorf("tables = %d, want 2", got)
	}
}

func TestAddGuestDefaults(t *testing.T) {
	e := New(seating.NewDocument(), Options{})
	defer e.Close()

	g := e.AddGuest("Ada", "Smith", "", nil)
	if g.Meal != seating.DefaultMeal {
		t.Errorf("meal = %q, want %q", g.Meal, seating.DefaultMeal)
	}
	if g.Dietary == nil {
		t.Error("dietary should be an empty list, not nil")
	}
	if g.TableID != nil || g.SeatIndex != nil {
		t.Error("new guest should be unseated")
	}
}

func TestAddObjectUsesCatalog(t *testing.T) {
	e := New(seating.NewDocument(), Options{})
	defer e.Close()

	o := e.AddObject(seating.ObjectStage, "", 50, 60)
	if o.Label != "Stage" || o.Width != 200 || o.Height != 80 {
		t.Errorf("stage defaults not applied: %+v", o)
	}
	if o.X != 50 || o.Y != 60 {
		t.Errorf("object at (%v, %v), want (50, 60)", o.X, o.Y)
	}
}

func TestUndoRedoThroughEditor(t *testing.T) {
	e := New(seating.NewDocument(), Options{})
	defer e.Close()

	e.AddGuest("Ada", "", "", nil)
	if !e.CanUndo() {
		t.Fatal("CanUndo = false after edit")
	}
	if !e.Undo() {
		t.Fatal("Undo failed")
	}
	if len(e.Document().Guests) != 0 {
		t.Error("undo did not remove the guest")
	}
	if !e.Redo() {
		t.Fatal("Redo failed")
	}
	if len(e.Document().Guests) != 1 {
		t.Error("redo did not restore the guest")
	}
}

func TestDebounceCoalescesBurst(t *testing.T) {
	rec := newSaveRecorder()
	e := New(seating.NewDocument(), Options{Save: rec.save, Debounce: 50 * time.Millisecond})
	defer e.Close()

	for i := 0; i < 10; i++ {
		e.AddGuest("Guest", "", "", nil)
	}

	rec.waitForSave(t)
	// Give a stray second save a chance to fire before asserting.
	time.Sleep(150 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("saves = %d, want 1 (trailing debounce coalesces the burst)", got)
	}
	if got := len(rec.last().Guests); got != 10 {
		t.Errorf("saved document has %d guests, want the final 10", got)
	}
}

func TestDebounceRestartsOnNewAction(t *testing.T) {
	rec := newSaveRecorder()
	e := New(seating.NewDocument(), Options{Save: rec.save, Debounce: 80 * time.Millisecond})
	defer e.Close()

	e.AddGuest("A", "", "", nil)
	time.Sleep(40 * time.Millisecond) // inside the quiet interval
	e.AddGuest("B", "", "", nil)
	time.Sleep(40 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Fatalf("save fired %d times before the document settled", got)
	}

	rec.waitForSave(t)
	if got := len(rec.last().Guests); got != 2 {
		t.Errorf("saved document has %d guests, want 2", got)
	}
}

func TestSaveFailureDoesNotBlockEdits(t *testing.T) {
	rec := newSaveRecorder()
	rec.err = context.DeadlineExceeded

	var reported error
	var mu sync.Mutex
	e := New(seating.NewDocument(), Options{
		Save:     rec.save,
		Debounce: 30 * time.Millisecond,
		OnSaveError: func(err error) {
			mu.Lock()
			reported = err
			mu.Unlock()
		},
	})
	defer e.Close()

	e.AddGuest("A", "", "", nil)
	rec.waitForSave(t)
	time.Sleep(20 * time.Millisecond) // let the error callback run

	mu.Lock()
	got := reported
	mu.Unlock()
	if got == nil {
		t.Error("save error not reported")
	}

	// Editing continues regardless.
	e.AddGuest("B", "", "", nil)
	if got := len(e.Document().Guests); got != 2 {
		t.Errorf("guests = %d, want 2", got)
	}
}

func TestFlushSavesImmediately(t *testing.T) {
	rec := newSaveRecorder()
	e := New(seating.NewDocument(), Options{Save: rec.save, Debounce: time.Hour})
	defer e.Close()

	e.AddGuest("A", "", "", nil)
	if err := e.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if rec.count() != 1 {
		t.Errorf("saves = %d, want 1", rec.count())
	}
}

func TestUndoSchedulesSave(t *testing.T) {
	rec := newSaveRecorder()
	e := New(seating.NewDocument(), Options{Save: rec.save, Debounce: 30 * time.Millisecond})
	defer e.Close()

	e.AddGuest("A", "", "", nil)
	rec.waitForSave(t)

	e.Undo()
	rec.waitForSave(t)

	if got := len(rec.last().Guests); got != 0 {
		t.Errorf("post-undo save has %d guests, want 0", got)
	}
}

func TestArrangeAppliesUndoablePositions(t *testing.T) {
	e := New(seating.NewDocument(), Options{})
	defer e.Close()

	for i := 0; i < 4; i++ {
		e.AddTable(8, "")
	}
	before := e.Document()

	e.Arrange(arrange.Options{Layout: arrange.LayoutGrid, Spacing: 200}, nil)

	after := e.Document()
	moved := false
	for i := range after.Tables {
		if after.Tables[i].X != before.Tables[i].X || after.Tables[i].Y != before.Tables[i].Y {
			moved = true
		}
	}
	if !moved {
		t.Fatal("arrange moved nothing")
	}

	// Each position is applied as its own history step; undoing all of them
	// restores the pre-arrange positions.
	for i := 0; i < len(after.Tables); i++ {
		if !e.Undo() {
			t.Fatalf("undo %d failed", i)
		}
	}
	restored := e.Document()
	for i := range restored.Tables {
		if restored.Tables[i].X != before.Tables[i].X {
			t.Errorf("table %d not restored by undo", i)
		}
	}
}

func TestArrangeAcceptedProposalResizesFloor(t *testing.T) {
	doc := seating.NewDocument()
	doc.FloorSize = seating.FloorSize{Width: 400, Height: 300}
	e := New(doc, Options{})
	defer e.Close()

	for i := 0; i < 9; i++ {
		e.AddTable(8, "")
	}

	var proposed *arrange.Proposal
	e.Arrange(arrange.Options{Layout: arrange.LayoutGrid, Spacing: 200}, func(p arrange.Proposal) bool {
		proposed = &p
		return true
	})

	if proposed == nil {
		t.Fatal("expected a resize proposal for 9 tables on a 400×300 floor")
	}
	got := e.Document().FloorSize
	if got.Width != proposed.Width || got.Height != proposed.Height {
		t.Errorf("floor = %+v, want proposed %+v", got, *proposed)
	}
}

func TestArrangeDeclinedProposalStillPlacesTables(t *testing.T) {
	doc := seating.NewDocument()
	doc.FloorSize = seating.FloorSize{Width: 400, Height: 300}
	e := New(doc, Options{})
	defer e.Close()

	for i := 0; i < 9; i++ {
		e.AddTable(8, "")
	}
	e.Arrange(arrange.Options{Layout: arrange.LayoutGrid, Spacing: 200}, func(arrange.Proposal) bool {
		return false
	})

	after := e.Document()
	if after.FloorSize.Width != 400 {
		t.Error("declined proposal must not resize the floor")
	}
	// Best-effort placement happened anyway.
	ys := make(map[float64]bool)
	for _, tab := range after.Tables {
		ys[tab.Y] = true
	}
	if len(ys) < 2 {
		t.Error("tables were not arranged into rows")
	}
}

func TestAutoSeatThroughEditor(t *testing.T) {
	e := New(seating.NewDocument(), Options{})
	defer e.Close()

	e.AddTable(8, "")
	e.AddGuest("Ada", "Smith", "", nil)
	e.AddGuest("Ben", "Smith", "", nil)
	e.AddGuest("Cleo", "Smith", "", nil)

	if placed := e.AutoSeat(); placed != 3 {
		t.Fatalf("placed = %d, want 3", placed)
	}
	doc := e.Document()
	if got := len(doc.UnassignedGuests()); got != 0 {
		t.Errorf("unassigned = %d, want 0", got)
	}
}

func TestEditorsAreIndependent(t *testing.T) {
	e1 := New(seating.NewDocument(), Options{})
	e2 := New(seating.NewDocument(), Options{})
	defer e1.Close()
	defer e2.Close()

	e1.AddGuest("Ada", "", "", nil)
	if len(e2.Document().Guests) != 0 {
		t.Error("editors share state")
	}
}
