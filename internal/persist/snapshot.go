// Package persist implements the world-snapshot store (spec §6.4): every
// registered table, the tick counter, and the entity-id allocator,
// serialised as JSONB rows via pgx and restored deterministically.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

type idRow[V any] struct {
	Id    ecs.EntityId `json:"id"`
	Value V            `json:"value"`
}

type roomRow[V any] struct {
	Room  geometry.Axial `json:"room"`
	Value V              `json:"value"`
}

type roomPosRow[V any] struct {
	Room  geometry.Axial `json:"room"`
	Pos   geometry.Axial `json:"pos"`
	Value V              `json:"value"`
}

type keyRow[K any, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// Snapshot is the round-trippable representation of a World at rest.
type Snapshot struct {
	Tick       int64        `json:"tick"`
	NextEntity ecs.EntityId `json:"next_entity"`

	Positions     []idRow[component.WorldPosition]         `json:"positions"`
	Bots          []ecs.EntityId                           `json:"bots"`
	Structures    []ecs.EntityId                            `json:"structures"`
	Spawns        []idRow[component.SpawnComponent]         `json:"spawns"`
	SpawnQueues   []idRow[component.SpawnQueueComponent]    `json:"spawn_queues"`
	Hp            []idRow[component.HpComponent]            `json:"hp"`
	Energy        []idRow[component.EnergyComponent]        `json:"energy"`
	EnergyRegen   []idRow[component.EnergyRegenComponent]   `json:"energy_regen"`
	Decay         []idRow[component.DecayComponent]         `json:"decay"`
	Carry         []idRow[component.CarryComponent]         `json:"carry"`
	MeleeAttack   []idRow[component.MeleeAttackComponent]   `json:"melee_attack"`
	Owners        []idRow[component.OwnedEntity]            `json:"owners"`
	Scripts       []idRow[component.EntityScript]           `json:"scripts"`
	ScriptHistory []idRow[component.ScriptHistoryComponent] `json:"script_history"`
	PathCache     []idRow[component.PathCacheComponent]     `json:"path_cache"`
	Resources     []idRow[component.ResourceComponent]      `json:"resources"`
	Logs          []keyRow[component.LogKey, component.LogEntry] `json:"logs"`

	Rooms           []geometry.Axial                     `json:"rooms"`
	RoomConnections []roomRow[component.RoomConnections] `json:"room_connections"`
	Terrain         []roomPosRow[component.TerrainKind]  `json:"terrain"`
	EntityAt        []roomPosRow[ecs.EntityId]           `json:"entity_at"`

	UserRooms []keyRow[component.UserId, component.Rooms]           `json:"user_rooms"`
	UserProps []keyRow[component.UserId, component.UserProperties] `json:"user_props"`

	RoomProps   *component.RoomProperties `json:"room_props,omitempty"`
	Diagnostics *component.Diagnostics    `json:"diagnostics,omitempty"`
}

// Capture walks every table in w and produces a Snapshot.
func Capture(w *world.World) Snapshot {
	snap := Snapshot{Tick: w.Tick(), NextEntity: w.Allocator().Peek()}

	w.Positions.Iter(func(id ecs.EntityId, v component.WorldPosition) bool {
		snap.Positions = append(snap.Positions, idRow[component.WorldPosition]{id, v})
		return true
	})
	w.Bots.Iter(func(id ecs.EntityId, _ ecs.Unit) bool { snap.Bots = append(snap.Bots, id); return true })
	w.Structures.Iter(func(id ecs.EntityId, _ ecs.Unit) bool { snap.Structures = append(snap.Structures, id); return true })
	w.Spawns.Iter(func(id ecs.EntityId, v component.SpawnComponent) bool {
		snap.Spawns = append(snap.Spawns, idRow[component.SpawnComponent]{id, v})
		return true
	})
	w.SpawnQueues.Iter(func(id ecs.EntityId, v component.SpawnQueueComponent) bool {
		snap.SpawnQueues = append(snap.SpawnQueues, idRow[component.SpawnQueueComponent]{id, v})
		return true
	})
	w.Hp.Iter(func(id ecs.EntityId, v component.HpComponent) bool {
		snap.Hp = append(snap.Hp, idRow[component.HpComponent]{id, v})
		return true
	})
	w.Energy.Iter(func(id ecs.EntityId, v component.EnergyComponent) bool {
		snap.Energy = append(snap.Energy, idRow[component.EnergyComponent]{id, v})
		return true
	})
	w.EnergyRegen.Iter(func(id ecs.EntityId, v component.EnergyRegenComponent) bool {
		snap.EnergyRegen = append(snap.EnergyRegen, idRow[component.EnergyRegenComponent]{id, v})
		return true
	})
	w.Decay.Iter(func(id ecs.EntityId, v component.DecayComponent) bool {
		snap.Decay = append(snap.Decay, idRow[component.DecayComponent]{id, v})
		return true
	})
	w.Carry.Iter(func(id ecs.EntityId, v component.CarryComponent) bool {
		snap.Carry = append(snap.Carry, idRow[component.CarryComponent]{id, v})
		return true
	})
	w.MeleeAttack.Iter(func(id ecs.EntityId, v component.MeleeAttackComponent) bool {
		snap.MeleeAttack = append(snap.MeleeAttack, idRow[component.MeleeAttackComponent]{id, v})
		return true
	})
	w.Owners.Iter(func(id ecs.EntityId, v component.OwnedEntity) bool {
		snap.Owners = append(snap.Owners, idRow[component.OwnedEntity]{id, v})
		return true
	})
	w.Scripts.Iter(func(id ecs.EntityId, v component.EntityScript) bool {
		snap.Scripts = append(snap.Scripts, idRow[component.EntityScript]{id, v})
		return true
	})
	w.ScriptHistory.Iter(func(id ecs.EntityId, v component.ScriptHistoryComponent) bool {
		snap.ScriptHistory = append(snap.ScriptHistory, idRow[component.ScriptHistoryComponent]{id, v})
		return true
	})
	w.PathCache.Iter(func(id ecs.EntityId, v component.PathCacheComponent) bool {
		snap.PathCache = append(snap.PathCache, idRow[component.PathCacheComponent]{id, v})
		return true
	})
	w.Resources.Iter(func(id ecs.EntityId, v component.ResourceComponent) bool {
		snap.Resources = append(snap.Resources, idRow[component.ResourceComponent]{id, v})
		return true
	})
	w.Logs.Iter(func(k component.LogKey, v component.LogEntry) bool {
		snap.Logs = append(snap.Logs, keyRow[component.LogKey, component.LogEntry]{k, v})
		return true
	})

	w.Rooms.Iter(func(room geometry.Axial, _ component.RoomComponent) bool {
		snap.Rooms = append(snap.Rooms, room)
		return true
	})
	w.RoomConnections.Iter(func(room geometry.Axial, v component.RoomConnections) bool {
		snap.RoomConnections = append(snap.RoomConnections, roomRow[component.RoomConnections]{room, v})
		return true
	})
	for _, room := range w.Terrain.Rooms() {
		grid, _ := w.Terrain.Room(room)
		grid.Iter(func(pos geometry.Axial, v component.TerrainKind) bool {
			snap.Terrain = append(snap.Terrain, roomPosRow[component.TerrainKind]{room, pos, v})
			return true
		})
	}
	for _, room := range w.EntityAt.Rooms() {
		grid, _ := w.EntityAt.Room(room)
		grid.Iter(func(pos geometry.Axial, v ecs.EntityId) bool {
			if v.IsZero() {
				return true
			}
			snap.EntityAt = append(snap.EntityAt, roomPosRow[ecs.EntityId]{room, pos, v})
			return true
		})
	}

	w.UserRooms.Iter(func(k component.UserId, v component.Rooms) bool {
		snap.UserRooms = append(snap.UserRooms, keyRow[component.UserId, component.Rooms]{k, v})
		return true
	})
	w.UserProps.Iter(func(k component.UserId, v component.UserProperties) bool {
		snap.UserProps = append(snap.UserProps, keyRow[component.UserId, component.UserProperties]{k, v})
		return true
	})

	if v, ok := w.RoomProps.Get(); ok {
		snap.RoomProps = &v
	}
	if v, ok := w.Diagnostics.Get(); ok {
		snap.Diagnostics = &v
	}

	return snap
}

// Restore repopulates w from snap. w is expected to be freshly
// constructed (world.New) so every table starts empty.
func Restore(w *world.World, snap Snapshot) {
	w.Allocator().Restore(snap.NextEntity)
	w.RestoreTick(snap.Tick)

	for _, r := range snap.Positions {
		w.Positions.InsertOrUpdate(r.Id, r.Value)
	}
	for _, id := range snap.Bots {
		w.Bots.InsertOrUpdate(id, ecs.Unit{})
	}
	for _, id := range snap.Structures {
		w.Structures.InsertOrUpdate(id, ecs.Unit{})
	}
	for _, r := range snap.Spawns {
		w.Spawns.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.SpawnQueues {
		w.SpawnQueues.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.Hp {
		w.Hp.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.Energy {
		w.Energy.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.EnergyRegen {
		w.EnergyRegen.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.Decay {
		w.Decay.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.Carry {
		w.Carry.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.MeleeAttack {
		w.MeleeAttack.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.Owners {
		w.Owners.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.Scripts {
		w.Scripts.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.ScriptHistory {
		w.ScriptHistory.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.PathCache {
		w.PathCache.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.Resources {
		w.Resources.InsertOrUpdate(r.Id, r.Value)
	}
	for _, r := range snap.Logs {
		w.Logs.InsertOrUpdate(r.Key, r.Value)
	}

	for _, room := range snap.Rooms {
		w.Rooms.InsertOrUpdate(room, component.RoomComponent{})
	}
	for _, r := range snap.RoomConnections {
		w.RoomConnections.InsertOrUpdate(r.Room, r.Value)
	}
	for _, r := range snap.Terrain {
		w.Terrain.Set(r.Room, r.Pos, r.Value)
	}
	for _, r := range snap.EntityAt {
		w.EntityAt.Set(r.Room, r.Pos, r.Value)
	}

	for _, r := range snap.UserRooms {
		w.UserRooms.InsertOrUpdate(r.Key, r.Value)
	}
	for _, r := range snap.UserProps {
		w.UserProps.InsertOrUpdate(r.Key, r.Value)
	}

	if snap.RoomProps != nil {
		w.RoomProps.Set(*snap.RoomProps)
	}
	if snap.Diagnostics != nil {
		w.Diagnostics.Set(*snap.Diagnostics)
	}
}

// Save writes a snapshot row for the given run tag and tick.
func Save(ctx context.Context, db *DB, queenTag string, snap Snapshot) (err error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO world_snapshots (queen_tag, tick, payload) VALUES ($1, $2, $3)
		 ON CONFLICT (queen_tag, tick) DO UPDATE SET payload = EXCLUDED.payload`,
		queenTag, snap.Tick, payload)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Latest loads the most recent snapshot for queenTag, or ok=false if
// none exists.
func Latest(ctx context.Context, db *DB, queenTag string, log *zap.Logger) (snap Snapshot, ok bool, err error) {
	rows, queryErr := db.Pool.Query(ctx,
		`SELECT payload FROM world_snapshots WHERE queen_tag = $1 ORDER BY tick DESC LIMIT 1`,
		queenTag)
	if queryErr != nil {
		return Snapshot{}, false, fmt.Errorf("query latest snapshot: %w", queryErr)
	}
	defer rows.Close()

	if !rows.Next() {
		err = multierr.Append(err, rows.Err())
		return Snapshot{}, false, err
	}

	var payload []byte
	if scanErr := rows.Scan(&payload); scanErr != nil {
		return Snapshot{}, false, multierr.Combine(fmt.Errorf("scan snapshot: %w", scanErr), rows.Err())
	}
	if unmarshalErr := json.Unmarshal(payload, &snap); unmarshalErr != nil {
		return Snapshot{}, false, fmt.Errorf("unmarshal snapshot: %w", unmarshalErr)
	}
	log.Debug("loaded snapshot", zap.String("queen_tag", queenTag), zap.Int64("tick", snap.Tick))
	return snap, true, nil
}
