// Package history wraps the seating reducer with bounded undo/redo.
//
// A History owns three document stacks: past states (bounded, oldest dropped
// first), the present state, and redo states. Dispatching an undoable action
// pushes the old present onto the past and clears redo; transient actions
// (zoom, floor size) update only the present, so undo skips straight over
// them to the prior seating edit.
//
// History is a plain value owned by its caller, not a process-wide singleton.
// Multiple open documents each get their own History and are fully
// independent. It performs no locking; the intended model is a single
// serialized action stream per document.
package history

import (
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// DefaultCapacity is the number of past documents retained for undo.
const DefaultCapacity = 50

// History holds a document together with its undo/redo stacks.
type History struct {
	past     []seating.Document // most recent last
	present  seating.Document
	future   []seating.Document // next redo first
	capacity int
}

// New creates a History with the given initial document and DefaultCapacity.
func New(initial seating.Document) *History {
	return NewWithCapacity(initial, DefaultCapacity)
}

// NewWithCapacity creates a History retaining at most capacity past
// documents. A capacity below 1 is treated as 1.
func NewWithCapacity(initial seating.Document, capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{present: initial, capacity: capacity}
}

// Present returns the current document.
func (h *History) Present() seating.Document { return h.present }

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Dispatch applies an action to the present document through the reducer and
// reports whether the document changed.
//
// True no-ops (reducer reported no change) leave the history untouched.
// Transient actions update only the present. Undoable actions push the old
// present onto the past stack, trimming to capacity, and clear the redo
// stack.
func (h *History) Dispatch(action seating.Action) bool {
	next, changed := seating.Apply(h.present, action)
	if !changed {
		return false
	}

	if !action.Undoable() {
		h.present = next
		return true
	}

	h.past = append(h.past, h.present)
	if len(h.past) > h.capacity {
		// Drop oldest entries silently.
		h.past = h.past[len(h.past)-h.capacity:]
	}
	h.present = next
	h.future = nil
	return true
}

// Undo steps back to the most recent past document. It reports whether a
// step was taken; with an empty past stack it is a no-op.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]seating.Document{h.present}, h.future...)
	h.present = last
	return true
}

// Redo re-applies the most recently undone document. It reports whether a
// step was taken; with an empty future stack it is a no-op.
func (h *History) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return true
}
