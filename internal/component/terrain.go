package component

import "github.com/caolo-sim/engine/internal/geometry"

// TerrainKind classifies a single room tile.
type TerrainKind int

const (
	TerrainPlain TerrainKind = iota
	TerrainBridge
	TerrainWall
)

// Walkable reports whether a bot may occupy or path through a tile of
// this kind. A Wall tile must never hold an EntityComponent (spec §3.3).
func (k TerrainKind) Walkable() bool {
	return k == TerrainPlain || k == TerrainBridge
}

// BridgeLink is one outgoing connection to a neighbour room, painted
// along the shared edge between OffsetStart and OffsetEnd (spec §4.6).
type BridgeLink struct {
	Direction   int // 0..5, index into geometry.Directions
	OffsetStart int32
	OffsetEnd   int32
}

// RoomConnections holds up to six bridges to neighbour rooms.
type RoomConnections struct {
	Bridges []BridgeLink
}

// RoomComponent marks that a room exists (presence-only, SparseFlag
// semantics but keyed by Axial instead of EntityId — stored via
// ecs.MortonTable[struct{}] in the world).
type RoomComponent struct{}

// RoomProperties is the singleton shared by every room: its radius and
// in-room center coordinate.
type RoomProperties struct {
	Radius int32
	Center geometry.Axial
}
