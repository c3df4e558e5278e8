// Package world assembles the typed table fields into the single World
// record the tick pipeline operates on: one field per (Id, Component)
// pair, the entity-id allocator, the tick counter, and the deferred
// delete/insert queues (spec §3.1, §4.2). This mirrors the teacher's
// generic `PtrComponentStore[T]` + `Registry` + `EntityPool` trio
// (internal/core/ecs in github.com/l1jgo/server), resolved statically —
// one field per component — for cache locality, as spec §9 prefers.
package world

import (
	"go.uber.org/zap"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
)

func lessEntityId(a, b ecs.EntityId) bool { return a < b }

func lessUserId(a, b component.UserId) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func lessAxial(a, b geometry.Axial) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

// World is the top-level ECS container: tables, id allocator, tick
// counter, and deferred queues.
type World struct {
	log *zap.Logger

	alloc        *ecs.Allocator
	tick         int64
	destroyQueue []ecs.EntityId

	roomRadius int32

	// Per-entity components (dense, EntityId-keyed).
	Positions     *ecs.DenseTable[component.WorldPosition]
	Bots          *ecs.SparseFlagTable
	Structures    *ecs.SparseFlagTable
	Spawns        *ecs.DenseTable[component.SpawnComponent]
	SpawnQueues   *ecs.DenseTable[component.SpawnQueueComponent]
	Hp            *ecs.DenseTable[component.HpComponent]
	Energy        *ecs.DenseTable[component.EnergyComponent]
	EnergyRegen   *ecs.DenseTable[component.EnergyRegenComponent]
	Decay         *ecs.DenseTable[component.DecayComponent]
	Carry         *ecs.DenseTable[component.CarryComponent]
	MeleeAttack   *ecs.DenseTable[component.MeleeAttackComponent]
	Owners        *ecs.DenseTable[component.OwnedEntity]
	Scripts       *ecs.DenseTable[component.EntityScript]
	ScriptHistory *ecs.DenseTable[component.ScriptHistoryComponent]
	PathCache     *ecs.DenseTable[component.PathCacheComponent]

	// Per-entity, large/infrequent-write key (btree).
	Resources *ecs.BTreeTable[ecs.EntityId, component.ResourceComponent]
	Logs      *ecs.BTreeTable[component.LogKey, component.LogEntry]

	// Spatial / per-room.
	EntityAt        *ecs.MortonGridTable[ecs.EntityId] // EntityComponent inverse index, derived
	Terrain         *ecs.MortonGridTable[component.TerrainKind]
	RoomConnections *ecs.MortonTable[component.RoomConnections]
	Rooms           *ecs.MortonTable[component.RoomComponent]

	// User-scoped (btree keyed by UserId).
	UserRooms *ecs.BTreeTable[component.UserId, component.Rooms]
	UserProps *ecs.BTreeTable[component.UserId, component.UserProperties]

	// Singletons.
	RoomProps   *ecs.UniqueTable[component.RoomProperties]
	Diagnostics *ecs.UniqueTable[component.Diagnostics]

	// Intent queues, one per intent kind; cleared at the start of each
	// intent-application phase by replacing the backing slice (spec §5).
	Intents IntentQueues
}

// New constructs an empty world. roomRadius sizes every per-room HexGrid
// (terrain, entity inverse index) per spec §6.3's room_radius parameter.
func New(roomRadius int32, log *zap.Logger) *World {
	return &World{
		log:             log,
		alloc:           ecs.NewAllocator(),
		roomRadius:      roomRadius,
		Positions:       ecs.NewDenseTable[component.WorldPosition](),
		Bots:            ecs.NewSparseFlagTable(),
		Structures:      ecs.NewSparseFlagTable(),
		Spawns:          ecs.NewDenseTable[component.SpawnComponent](),
		SpawnQueues:     ecs.NewDenseTable[component.SpawnQueueComponent](),
		Hp:              ecs.NewDenseTable[component.HpComponent](),
		Energy:          ecs.NewDenseTable[component.EnergyComponent](),
		EnergyRegen:     ecs.NewDenseTable[component.EnergyRegenComponent](),
		Decay:           ecs.NewDenseTable[component.DecayComponent](),
		Carry:           ecs.NewDenseTable[component.CarryComponent](),
		MeleeAttack:     ecs.NewDenseTable[component.MeleeAttackComponent](),
		Owners:          ecs.NewDenseTable[component.OwnedEntity](),
		Scripts:         ecs.NewDenseTable[component.EntityScript](),
		ScriptHistory:   ecs.NewDenseTable[component.ScriptHistoryComponent](),
		PathCache:       ecs.NewDenseTable[component.PathCacheComponent](),
		Resources:       ecs.NewBTreeTable[ecs.EntityId, component.ResourceComponent](lessEntityId),
		Logs:            ecs.NewBTreeTable[component.LogKey, component.LogEntry](component.LessLogKey),
		EntityAt:        ecs.NewMortonGridTable[ecs.EntityId](roomRadius),
		Terrain:         ecs.NewMortonGridTable[component.TerrainKind](roomRadius),
		RoomConnections: ecs.NewMortonTable[component.RoomConnections](),
		Rooms:           ecs.NewMortonTable[component.RoomComponent](),
		UserRooms:       ecs.NewBTreeTable[component.UserId, component.Rooms](lessUserId),
		UserProps:       ecs.NewBTreeTable[component.UserId, component.UserProperties](lessUserId),
		RoomProps:       ecs.NewUniqueTable[component.RoomProperties](),
		Diagnostics:     ecs.NewUniqueTable[component.Diagnostics](),
		Intents:         newIntentQueues(),
	}
}

func (w *World) RoomRadius() int32 { return w.roomRadius }

// Tick returns the current tick counter.
func (w *World) Tick() int64 { return w.tick }

// AdvanceTick increments the tick counter; called once by the executor
// at commit (post_process).
func (w *World) AdvanceTick() { w.tick++ }

// RestoreTick sets the tick counter directly; used when resuming from a
// persisted snapshot (spec §6.4).
func (w *World) RestoreTick(tick int64) { w.tick = tick }

// CreateEntity allocates and returns a fresh EntityId. Per spec §3.4,
// components are attached via direct table inserts within the same tick
// — entity creation itself never blocks on a queue.
func (w *World) CreateEntity() ecs.EntityId {
	return w.alloc.Allocate()
}

// Allocator exposes the id allocator for InsertEntityView construction.
func (w *World) Allocator() *ecs.Allocator { return w.alloc }

// MarkForDestruction queues an entity for end-of-tick cleanup (spec
// §3.4).
func (w *World) MarkForDestruction(id ecs.EntityId) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// DestroyQueuePtr exposes the delete queue for DeferredDeleteView
// construction.
func (w *World) DestroyQueuePtr() *[]ecs.EntityId { return &w.destroyQueue }

// FlushDestroyQueue removes every queued entity from every table that
// keys on EntityId, then clears the queue. Deletion is idempotent: a
// duplicate or already-removed id is a silent no-op. Spatial/derived
// tables (EntityAt) are not scrubbed here — PositionsRebuild (spec §4.5)
// rebuilds them wholesale from Positions every tick, so a destroyed
// entity simply stops being reinserted.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.Positions.RemoveEntity(id)
		w.Bots.RemoveEntity(id)
		w.Structures.RemoveEntity(id)
		w.Spawns.RemoveEntity(id)
		w.SpawnQueues.RemoveEntity(id)
		w.Hp.RemoveEntity(id)
		w.Energy.RemoveEntity(id)
		w.EnergyRegen.RemoveEntity(id)
		w.Decay.RemoveEntity(id)
		w.Carry.RemoveEntity(id)
		w.MeleeAttack.RemoveEntity(id)
		w.Owners.RemoveEntity(id)
		w.Scripts.RemoveEntity(id)
		w.ScriptHistory.RemoveEntity(id)
		w.PathCache.RemoveEntity(id)
		w.Resources.Delete(id)
		w.Logs.RemoveEntityKeyed(func(k component.LogKey) bool { return k.Entity == id })
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// Log returns the world's logger, or a no-op logger if none was
// configured.
func (w *World) Log() *zap.Logger {
	if w.log == nil {
		return zap.NewNop()
	}
	return w.log
}
