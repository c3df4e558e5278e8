package ecs

// Table is the mandatory operation set every table backend implements,
// per spec §4.1. K is the row key (EntityId, Axial, WorldPosition, UserId,
// ...); V is the row type.
type Table[K comparable, V any] interface {
	Get(key K) (V, bool)
	GetMut(key K) (*V, bool)
	InsertOrUpdate(key K, value V)
	Delete(key K) (V, bool)
	Contains(key K) bool
	Iter(fn func(K, V) bool)
	IterMut(fn func(K, *V) bool)
	Len() int
}

// Removable is implemented by every table so the world's deferred-delete
// pass (post_process, §3.4) can scrub an entity from every registered
// table without the world knowing each table's row type.
type Removable interface {
	RemoveEntity(id EntityId)
}
