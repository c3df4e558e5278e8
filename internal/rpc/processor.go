package rpc

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/scripting"
	"github.com/caolo-sim/engine/internal/world"
)

// Processor is the simulation core's CommandProcessor/WorldStream
// implementation: every method validates against the current world
// state and, on success, applies its effect directly. Per spec §5 a
// caller must only invoke these between ticks, holding whatever mutex
// serialises them against Executor.Tick — Processor itself takes no
// lock, the same division of responsibility the original engine leaves
// to its own server crate (engine/src/api/*.rs never locks either; the
// gRPC layer above it does).
type Processor struct {
	world   *world.World
	scripts *scripting.Store
}

func NewProcessor(w *world.World, scripts *scripting.Store) *Processor {
	return &Processor{world: w, scripts: scripts}
}

var _ CommandProcessor = (*Processor)(nil)
var _ WorldStream = (*Processor)(nil)

func (p *Processor) PlaceStructure(cmd PlaceStructure) CommandResult {
	terrain, ok := p.world.Terrain.Get(cmd.Position.Room, cmd.Position.Pos)
	if !ok || !terrain.Walkable() {
		return Err(cmd.MessageId, "position is not walkable")
	}
	if occupant, ok := p.world.EntityAt.Get(cmd.Position.Room, cmd.Position.Pos); ok && !occupant.IsZero() {
		return Err(cmd.MessageId, "position is occupied")
	}

	alreadyOwnsSpawn := false
	p.world.Spawns.Iter(func(id ecs.EntityId, _ component.SpawnComponent) bool {
		if owner, ok := p.world.Owners.Get(id); ok && owner.OwnerId == cmd.OwnerId {
			alreadyOwnsSpawn = true
			return false
		}
		return true
	})
	if alreadyOwnsSpawn {
		return Err(cmd.MessageId, "owner already has a spawn")
	}

	id := p.world.CreateEntity()
	p.world.Structures.InsertOrUpdate(id, ecs.Unit{})
	p.world.Positions.InsertOrUpdate(id, cmd.Position)
	p.world.Spawns.InsertOrUpdate(id, component.SpawnComponent{})
	p.world.SpawnQueues.InsertOrUpdate(id, component.SpawnQueueComponent{})
	p.world.Energy.InsertOrUpdate(id, component.EnergyComponent{EnergyMax: spawnStructureEnergyMax})
	p.world.EnergyRegen.InsertOrUpdate(id, component.EnergyRegenComponent{Amount: spawnStructureEnergyRegen})
	p.world.Owners.InsertOrUpdate(id, component.OwnedEntity{OwnerId: cmd.OwnerId})
	p.world.EntityAt.Set(cmd.Position.Room, cmd.Position.Pos, id)
	return Ok(cmd.MessageId)
}

// spawnStructureEnergyMax/spawnStructureEnergyRegen size a freshly
// placed spawn's energy pool; spawnEnergyCost (internal/system) must fit
// within it or the structure can never complete a spawn cycle.
const spawnStructureEnergyMax = 1000
const spawnStructureEnergyRegen = 50

func (p *Processor) TakeRoom(cmd TakeRoom) CommandResult {
	if !p.world.Rooms.Contains(cmd.RoomId) {
		return Err(cmd.MessageId, "room does not exist")
	}

	owned := false
	p.world.UserRooms.Iter(func(_ component.UserId, rooms component.Rooms) bool {
		for _, r := range rooms.RoomIds {
			if r == cmd.RoomId {
				owned = true
				return false
			}
		}
		return true
	})
	if owned {
		return Err(cmd.MessageId, "room is owned")
	}

	props, ok := p.world.UserProps.Get(cmd.UserId)
	if !ok {
		return Err(cmd.MessageId, "user not registered")
	}

	rooms, _ := p.world.UserRooms.Get(cmd.UserId)
	if len(rooms.RoomIds) >= int(props.Level) {
		return Err(cmd.MessageId, "user at room cap")
	}

	rooms.RoomIds = append(rooms.RoomIds, cmd.RoomId)
	p.world.UserRooms.InsertOrUpdate(cmd.UserId, rooms)
	return Ok(cmd.MessageId)
}

func (p *Processor) RegisterUser(cmd RegisterUser) CommandResult {
	if p.world.UserProps.Contains(cmd.UserId) {
		return Err(cmd.MessageId, "already registered")
	}
	if cmd.Level > 0xFFFF {
		return Err(cmd.MessageId, "level overflows 16-bit")
	}
	p.world.UserProps.InsertOrUpdate(cmd.UserId, component.UserProperties{Level: uint16(cmd.Level)})
	return Ok(cmd.MessageId)
}

func (p *Processor) UpdateScript(cmd UpdateScript) CommandResult {
	p.scripts.Put(cmd.ScriptId, cmd.CompilationUnit)
	p.world.Owners.Iter(func(id ecs.EntityId, owner component.OwnedEntity) bool {
		if owner.OwnerId != cmd.UserId {
			return true
		}
		if _, ok := p.world.Scripts.Get(id); ok {
			p.world.Scripts.InsertOrUpdate(id, component.EntityScript{ScriptId: cmd.ScriptId})
		}
		return true
	})
	return Ok(cmd.MessageId)
}

func (p *Processor) UpdateEntityScript(cmd UpdateEntityScript) CommandResult {
	owner, ok := p.world.Owners.Get(cmd.EntityId)
	if !ok || owner.OwnerId != cmd.UserId {
		return Err(cmd.MessageId, "not owner")
	}
	p.world.Scripts.InsertOrUpdate(cmd.EntityId, component.EntityScript{ScriptId: cmd.ScriptId})
	return Ok(cmd.MessageId)
}

func (p *Processor) SetDefaultScript(cmd SetDefaultScript) CommandResult {
	p.scripts.SetDefault(cmd.ScriptId)
	return Ok(cmd.MessageId)
}

func (p *Processor) PopulatedRooms() []geometry.Axial {
	return p.world.EntityAt.Rooms()
}

func (p *Processor) RoomEntities(room geometry.Axial) RoomEntities {
	out := RoomEntities{RoomId: room, Tick: p.world.Tick()}

	p.world.Bots.Iter(func(id ecs.EntityId, _ ecs.Unit) bool {
		pos, ok := p.world.Positions.Get(id)
		if !ok || pos.Room != room {
			return true
		}
		rec := BotRecord{Id: id, Position: pos.Pos}
		if hp, ok := p.world.Hp.Get(id); ok {
			rec.Hp, rec.HpMax = hp.Hp, hp.HpMax
		}
		if en, ok := p.world.Energy.Get(id); ok {
			rec.Energy, rec.EnergyMax = en.Energy, en.EnergyMax
		}
		if carry, ok := p.world.Carry.Get(id); ok {
			rec.Carry, rec.CarryMax = carry.Carry, carry.CarryMax
		}
		if owner, ok := p.world.Owners.Get(id); ok {
			rec.OwnerId, rec.HasOwner = owner.OwnerId, true
		}
		if entry, ok := p.world.Logs.Get(component.LogKey{Entity: id, Tick: out.Tick - 1}); ok {
			rec.LastLog = entry.Text
		}
		out.Bots = append(out.Bots, rec)
		return true
	})

	p.world.Structures.Iter(func(id ecs.EntityId, _ ecs.Unit) bool {
		pos, ok := p.world.Positions.Get(id)
		if !ok || pos.Room != room {
			return true
		}
		rec := StructureRecord{Id: id, Position: pos.Pos, Type: StructureSpawn}
		if sp, ok := p.world.Spawns.Get(id); ok {
			rec.TimeToSpawn = sp.TimeToSpawn
		}
		if owner, ok := p.world.Owners.Get(id); ok {
			rec.OwnerId, rec.HasOwner = owner.OwnerId, true
		}
		out.Structures = append(out.Structures, rec)
		return true
	})

	p.world.Resources.Iter(func(id ecs.EntityId, res component.ResourceComponent) bool {
		pos, ok := p.world.Positions.Get(id)
		if !ok || pos.Room != room {
			return true
		}
		out.Resources = append(out.Resources, ResourceRecord{
			Id: id, Position: pos.Pos, Kind: res.Kind, Energy: res.Energy, EnergyMax: res.EnergyMax,
		})
		return true
	})

	return out
}

func (p *Processor) Terrain(room geometry.Axial) TerrainSnapshot {
	grid, ok := p.world.Terrain.Room(room)
	if !ok {
		return TerrainSnapshot{RoomId: room}
	}
	return TerrainSnapshot{RoomId: room, Terrain: grid.Dense()}
}
