package history

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

func addGuestAction(i int) seating.Action {
	return seating.AddGuest{Guest: seating.Guest{
		ID:   fmt.Sprintf("g%d", i),
		Name: fmt.Sprintf("Guest %d", i),
		Meal: seating.DefaultMeal,
	}}
}

func TestDispatchUndoRedoRoundTrip(t *testing.T) {
	h := New(seating.NewDocument())

	if !h.Dispatch(addGuestAction(1)) {
		t.Fatal("dispatch reported no change")
	}
	afterAdd := h.Present()

	if !h.Undo() {
		t.Fatal("undo failed")
	}
	if len(h.Present().Guests) != 0 {
		t.Error("undo did not restore the empty document")
	}
	if !h.CanRedo() {
		t.Error("CanRedo = false after undo")
	}

	if !h.Redo() {
		t.Fatal("redo failed")
	}
	if !reflect.DeepEqual(h.Present(), afterAdd) {
		t.Error("redo did not restore the post-action document")
	}
}

func TestUndoRedoEmptyStacks(t *testing.T) {
	h := New(seating.NewDocument())

	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history should have no undo/redo")
	}
	if h.Undo() {
		t.Error("Undo on empty past should be a no-op")
	}
	if h.Redo() {
		t.Error("Redo on empty future should be a no-op")
	}
}

func TestDispatchNoOpLeavesHistoryUntouched(t *testing.T) {
	h := New(seating.NewDocument())
	h.Dispatch(addGuestAction(1))

	if h.Dispatch(seating.DeleteGuest{ID: "missing"}) {
		t.Error("no-op action reported a change")
	}
	if !h.CanUndo() {
		t.Error("no-op action disturbed the past stack")
	}
	h.Undo()
	if h.CanUndo() {
		t.Error("no-op action created an extra undo step")
	}
}

func TestDispatchClearsFuture(t *testing.T) {
	h := New(seating.NewDocument())
	h.Dispatch(addGuestAction(1))
	h.Dispatch(addGuestAction(2))
	h.Undo()

	if !h.CanRedo() {
		t.Fatal("expected redo available after undo")
	}
	h.Dispatch(addGuestAction(3))
	if h.CanRedo() {
		t.Error("new undoable action did not clear the redo stack")
	}
}

func TestTransientActionsSkipHistory(t *testing.T) {
	h := New(seating.NewDocument())
	h.Dispatch(addGuestAction(1))
	h.Dispatch(seating.SetZoom{Zoom: 1.5})
	h.Dispatch(seating.SetFloorSize{Width: 900, Height: 600})
	h.Dispatch(addGuestAction(2))

	// Two undoable actions, so exactly two undo steps; the first undo lands
	// on the document between them, zoom and floor size intact.
	if !h.Undo() {
		t.Fatal("first undo failed")
	}
	doc := h.Present()
	if len(doc.Guests) != 1 {
		t.Errorf("guests = %d, want 1", len(doc.Guests))
	}
	if doc.Zoom != 1.5 || doc.FloorSize.Width != 900 {
		t.Errorf("transient state not sticky across undo: zoom=%v floor=%+v", doc.Zoom, doc.FloorSize)
	}

	if !h.Undo() {
		t.Fatal("second undo failed")
	}
	if h.Undo() {
		t.Error("third undo should find nothing; transient actions must not create steps")
	}
}

func TestHistoryBound(t *testing.T) {
	h := New(seating.NewDocument())
	const steps = DefaultCapacity + 10

	for i := 0; i < steps; i++ {
		h.Dispatch(addGuestAction(i))
	}

	undone := 0
	for h.Undo() {
		undone++
	}
	if undone != DefaultCapacity {
		t.Errorf("undo steps = %d, want %d", undone, DefaultCapacity)
	}
	// The oldest reachable state is the one 50 actions back, not the start.
	if got := len(h.Present().Guests); got != steps-DefaultCapacity {
		t.Errorf("guests at history floor = %d, want %d", got, steps-DefaultCapacity)
	}
}

func TestSmallCapacity(t *testing.T) {
	h := NewWithCapacity(seating.NewDocument(), 2)
	for i := 0; i < 5; i++ {
		h.Dispatch(addGuestAction(i))
	}

	undone := 0
	for h.Undo() {
		undone++
	}
	if undone != 2 {
		t.Errorf("undo steps = %d, want 2", undone)
	}
}

func TestIndependentInstances(t *testing.T) {
	h1 := New(seating.NewDocument())
	h2 := New(seating.NewDocument())

	h1.Dispatch(addGuestAction(1))
	if len(h2.Present().Guests) != 0 {
		t.Error("histories are not independent")
	}
	if h2.CanUndo() {
		t.Error("h2 gained undo state from h1's dispatch")
	}
}
