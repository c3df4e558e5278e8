// Package ecs implements the typed, multi-indexed entity-component store:
// the table backends, the world's id allocator, and the view-based borrow
// discipline that lets many read-only and one mutable view coexist per
// table within a tick.
package ecs

// EntityId is a monotonically increasing handle allocated by the world.
// It is never reused within a run; 0 is the sentinel/default value.
type EntityId uint32

// IsZero reports whether id is the sentinel value.
func (id EntityId) IsZero() bool { return id == 0 }

// Allocator hands out strictly increasing EntityIds. It never recycles
// indices — deletion only removes rows from tables, not ids from the
// counter — matching spec §3.1 ("EntityId allocation is strictly
// increasing across a run").
type Allocator struct {
	next EntityId
}

// NewAllocator returns an allocator whose first Allocate() call yields 1
// (0 stays reserved as the sentinel).
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

func (a *Allocator) Allocate() EntityId {
	id := a.next
	a.next++
	return id
}

// Peek returns the id that the next Allocate() call would return, without
// consuming it. Used by snapshot restore to resume the counter.
func (a *Allocator) Peek() EntityId { return a.next }

// Restore sets the allocator's next value directly; used when loading a
// snapshot so newly allocated ids never collide with persisted ones.
func (a *Allocator) Restore(next EntityId) { a.next = next }
