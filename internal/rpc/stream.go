package rpc

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
)

// BotRecord is one scripted entity's state as carried in a RoomEntities
// message: bounded stats plus its owner and last-tick log line (spec
// §6.2).
type BotRecord struct {
	Id        ecs.EntityId
	Position  geometry.Axial
	Hp        int32
	HpMax     int32
	Energy    int32
	EnergyMax int32
	Carry     int32
	CarryMax  int32
	OwnerId   component.UserId
	HasOwner  bool
	LastLog   string
}

// StructureRecord is one structure's state (spawns, currently the only
// kind).
type StructureRecord struct {
	Id          ecs.EntityId
	Position    geometry.Axial
	Type        StructureKind
	OwnerId     component.UserId
	HasOwner    bool
	TimeToSpawn int32
}

// ResourceRecord is one mineable resource's state.
type ResourceRecord struct {
	Id        ecs.EntityId
	Position  geometry.Axial
	Kind      component.ResourceKind
	Energy    int32
	EnergyMax int32
}

// RoomEntities is one subscription message: every record currently
// populating RoomId, sent once per tick per populated room (spec §6.2).
type RoomEntities struct {
	RoomId     geometry.Axial
	Tick       int64
	Bots       []BotRecord
	Structures []StructureRecord
	Resources  []ResourceRecord
}

// TerrainSnapshot is the one-time, connect-time terrain payload: a dense
// array indexed by the canonical in-room coordinate iteration order the
// receiver already knows (spec §6.2). Index derivation and the iteration
// order itself live with the HexGrid table that produces it
// (internal/ecs's grid index math), not here — this type only carries
// the resulting slice over the wire.
type TerrainSnapshot struct {
	RoomId  geometry.Axial
	Terrain []component.TerrainKind
}

// WorldStream is satisfied by the simulation core for subscribers: pull
// the current populated-room set, or a specific room's records/terrain.
// Per SPEC_FULL.md §13's Non-goals this is a pull contract only — a
// caller's own subscription/push loop calls these once per tick and
// forwards the results over its own transport.
type WorldStream interface {
	PopulatedRooms() []geometry.Axial
	RoomEntities(room geometry.Axial) RoomEntities
	Terrain(room geometry.Axial) TerrainSnapshot
}
