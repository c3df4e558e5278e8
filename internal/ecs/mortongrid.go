package ecs

import "github.com/caolo-sim/engine/internal/geometry"

// MortonGridTable is a two-level table: an outer MortonTable keyed by room
// id, each holding a dense HexGrid of in-room positions. It backs
// per-room terrain and the position→entity inverse index (spec §4.1).
type MortonGridTable[V any] struct {
	roomRadius int32
	rooms      *MortonTable[*HexGrid[V]]
}

func NewMortonGridTable[V any](roomRadius int32) *MortonGridTable[V] {
	return &MortonGridTable[V]{
		roomRadius: roomRadius,
		rooms:      NewMortonTable[*HexGrid[V]](),
	}
}

// EnsureRoom allocates a room's HexGrid on first access, filled with the
// zero value of V.
func (t *MortonGridTable[V]) EnsureRoom(room geometry.Axial) *HexGrid[V] {
	if g, ok := t.rooms.Get(room); ok {
		return g
	}
	g := NewHexGrid[V](geometry.Hexagon{Center: geometry.Zero, Radius: t.roomRadius})
	t.rooms.InsertOrUpdate(room, g)
	return g
}

func (t *MortonGridTable[V]) Room(room geometry.Axial) (*HexGrid[V], bool) {
	return t.rooms.Get(room)
}

func (t *MortonGridTable[V]) Get(room geometry.Axial, pos geometry.Axial) (V, bool) {
	g, ok := t.rooms.Get(room)
	if !ok {
		var zero V
		return zero, false
	}
	return g.Get(pos)
}

func (t *MortonGridTable[V]) Set(room geometry.Axial, pos geometry.Axial, v V) {
	t.EnsureRoom(room).Set(pos, v)
}

func (t *MortonGridTable[V]) Delete(room geometry.Axial, pos geometry.Axial) {
	if g, ok := t.rooms.Get(room); ok {
		var zero V
		g.Set(pos, zero)
	}
}

// ClearRoom resets every cell in a room's grid to the zero value; used by
// PositionsRebuild (spec §4.5) to rebuild the inverse index from scratch
// each tick.
func (t *MortonGridTable[V]) ClearRoom(room geometry.Axial) {
	g, ok := t.rooms.Get(room)
	if !ok {
		return
	}
	fresh := NewHexGrid[V](g.Region())
	t.rooms.InsertOrUpdate(room, fresh)
}

// Rooms returns every room id with an allocated grid.
func (t *MortonGridTable[V]) Rooms() []geometry.Axial {
	out := make([]geometry.Axial, 0, t.rooms.Len())
	t.rooms.Iter(func(room geometry.Axial, _ *HexGrid[V]) bool {
		out = append(out, room)
		return true
	})
	return out
}
