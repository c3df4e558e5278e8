package world

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
)

// ReadOnly is the FromWorld-style read facade handed to each parallel
// script worker (spec §4.2, §5). It exposes View wrappers — shared
// borrows safe to hand to many goroutines at once — over exactly the
// tables scripts are allowed to query. Workers never receive the World
// itself, so they cannot reach a table's mutating methods even though Go
// cannot enforce that at the type level for the tables the View wraps;
// the wrapper is the declared contract the VM host (internal/scripting)
// honours by construction.
type ReadOnly struct {
	Positions       ecs.View[ecs.DenseTable[component.WorldPosition]]
	EntityAt        ecs.View[ecs.MortonGridTable[ecs.EntityId]]
	Terrain         ecs.View[ecs.MortonGridTable[component.TerrainKind]]
	RoomConnections ecs.View[ecs.MortonTable[component.RoomConnections]]
	Hp              ecs.View[ecs.DenseTable[component.HpComponent]]
	Energy          ecs.View[ecs.DenseTable[component.EnergyComponent]]
	Carry           ecs.View[ecs.DenseTable[component.CarryComponent]]
	Owners          ecs.View[ecs.DenseTable[component.OwnedEntity]]
	Resources       ecs.View[ecs.BTreeTable[ecs.EntityId, component.ResourceComponent]]
	PathCache       ecs.View[ecs.DenseTable[component.PathCacheComponent]]
	Bots            ecs.View[ecs.SparseFlagTable]
	Structures      ecs.View[ecs.SparseFlagTable]
	tick            int64
	roomRadius      int32
}

// NewReadOnly builds the read-only facade for one tick's script phase.
func NewReadOnly(w *World) ReadOnly {
	return ReadOnly{
		Positions:       ecs.NewView(w.Positions),
		EntityAt:        ecs.NewView(w.EntityAt),
		Terrain:         ecs.NewView(w.Terrain),
		RoomConnections: ecs.NewView(w.RoomConnections),
		Hp:              ecs.NewView(w.Hp),
		Energy:          ecs.NewView(w.Energy),
		Carry:           ecs.NewView(w.Carry),
		Owners:          ecs.NewView(w.Owners),
		Resources:       ecs.NewView(w.Resources),
		PathCache:       ecs.NewView(w.PathCache),
		Bots:            ecs.NewView(w.Bots),
		Structures:      ecs.NewView(w.Structures),
		tick:            w.tick,
		roomRadius:      w.roomRadius,
	}
}

func (r ReadOnly) Tick() int64       { return r.tick }
func (r ReadOnly) RoomRadius() int32 { return r.roomRadius }
