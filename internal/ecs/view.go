package ecs

// View is a shared, read-only borrow of a table. Many Views of the same
// table may coexist within a tick; a View never coexists with an
// UnsafeView of the same table (spec §4.2). Go cannot enforce borrow
// exclusivity at compile time, and nothing checks it at run time either:
// the discipline is kept by the order in which the executor calls the
// scripts and systems, not by the type itself.
type View[T any] struct {
	table *T
}

func NewView[T any](table *T) View[T] { return View[T]{table: table} }

// Table exposes the underlying table for read-only calls (Get, Contains,
// Iter, Len). Callers must not call mutating methods through a View;
// nothing detects a violation.
func (v View[T]) Table() *T { return v.table }

// UnsafeView is an unsynchronised mutable borrow of a table. At most one
// exists for a given table within a tick, and it never coexists with a
// View of the same table.
type UnsafeView[T any] struct {
	table *T
}

func NewUnsafeView[T any](table *T) UnsafeView[T] { return UnsafeView[T]{table: table} }

func (v UnsafeView[T]) Table() *T { return v.table }

// UnwrapView dereferences a unique-table singleton for reading.
type UnwrapView[V any] struct {
	table *UniqueTable[V]
}

func NewUnwrapView[V any](table *UniqueTable[V]) UnwrapView[V] { return UnwrapView[V]{table: table} }

func (v UnwrapView[V]) Get() V {
	val, _ := v.table.Get()
	return val
}

// UnwrapViewMut dereferences a unique-table singleton for writing,
// constructing the zero value on first access.
type UnwrapViewMut[V any] struct {
	table *UniqueTable[V]
}

func NewUnwrapViewMut[V any](table *UniqueTable[V]) UnwrapViewMut[V] {
	return UnwrapViewMut[V]{table: table}
}

func (v UnwrapViewMut[V]) Get() *V { return v.table.GetOrInit() }

// DeferredDeleteView is an append-only handle to the world's deferred
// delete queue; entities queued here are removed from every table by
// post_process at the end of the tick (spec §3.4).
type DeferredDeleteView struct {
	queue *[]EntityId
}

func NewDeferredDeleteView(queue *[]EntityId) DeferredDeleteView {
	return DeferredDeleteView{queue: queue}
}

func (v DeferredDeleteView) Delete(id EntityId) {
	*v.queue = append(*v.queue, id)
}

// InsertEntityView is an append-only handle to the world's entity
// allocator, used by systems that create entities (SpawnIntent's bot
// allocation, SpawnTick's archetype instantiation) without granting
// direct access to the allocator's internals.
type InsertEntityView struct {
	alloc *Allocator
}

func NewInsertEntityView(alloc *Allocator) InsertEntityView {
	return InsertEntityView{alloc: alloc}
}

func (v InsertEntityView) Insert() EntityId {
	return v.alloc.Allocate()
}
