package system

import (
	"github.com/caolo-sim/engine/internal/archetype"
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/world"
)

const spawnEnergyCost = 500
const spawnDuration = 10

// SpawnTick advances every structure's spawn cycle (spec §4.5): an idle
// spawn with a queued bot and full energy begins spawning, deducting
// spawnEnergyCost and arming a spawnDuration countdown; a spawning spawn
// counts down and, on reaching zero, instantiates the queued bot's
// archetype at the spawn's own position and clears Spawning.
func SpawnTick(w *world.World, arch archetype.Archetype) {
	w.Spawns.IterMut(func(id ecs.EntityId, sp *component.SpawnComponent) bool {
		if sp.Spawning == 0 {
			queue, ok := w.SpawnQueues.GetMut(id)
			if !ok || len(queue.Queue) == 0 {
				return true
			}
			energy, ok := w.Energy.GetMut(id)
			if !ok || energy.Energy < energy.EnergyMax || energy.Energy < spawnEnergyCost {
				return true
			}
			bot, ok := queue.PopFront()
			if !ok {
				return true
			}
			energy.Energy -= spawnEnergyCost
			sp.Spawning = bot
			sp.TimeToSpawn = spawnDuration
			return true
		}

		if sp.TimeToSpawn > 0 {
			sp.TimeToSpawn--
		}
		if sp.TimeToSpawn > 0 {
			return true
		}

		pos, ok := w.Positions.Get(id)
		if ok {
			instantiateBot(w, sp.Spawning, pos, arch)
		}
		if owner, ok := w.Owners.Get(id); ok {
			w.Owners.InsertOrUpdate(sp.Spawning, owner)
		}
		sp.Spawning = 0
		return true
	})
}

// instantiateBot attaches the archetype's starting stats to a
// previously-allocated bot id at the given position.
func instantiateBot(w *world.World, bot ecs.EntityId, pos component.WorldPosition, arch archetype.Archetype) {
	w.Bots.InsertOrUpdate(bot, ecs.Unit{})
	w.Positions.InsertOrUpdate(bot, pos)
	w.Hp.InsertOrUpdate(bot, component.HpComponent{Hp: arch.Hp, HpMax: arch.Hp})
	w.Energy.InsertOrUpdate(bot, component.EnergyComponent{Energy: 0, EnergyMax: arch.EnergyMax})
	w.EnergyRegen.InsertOrUpdate(bot, component.EnergyRegenComponent{Amount: arch.EnergyRegen})
	w.Carry.InsertOrUpdate(bot, component.CarryComponent{Carry: 0, CarryMax: arch.CarryMax})
	w.MeleeAttack.InsertOrUpdate(bot, component.MeleeAttackComponent{Strength: arch.MeleeStrength})
}
