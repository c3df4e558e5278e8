package system

import (
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// ApplyDropoff applies all DropoffIntents in iteration order, mirroring
// ApplyMine's sequential-capacity-check policy (spec §4.4). The transfer
// target is the structure's EnergyComponent — the same component
// hostDropoff's own fullness precondition and SpawnTick's fuel read both
// use — not a ResourceComponent (grounded on
// original_source/.../dropoff_intent_system.rs, which writes
// EnergyComponent.energy directly).
func ApplyDropoff(w *world.World) {
	drops := w.Intents.Dropoff
	w.Intents.ClearDropoff()
	if len(drops) == 0 {
		return
	}

	for _, d := range drops {
		carry, ok := w.Carry.GetMut(d.Bot)
		if !ok || carry.Carry <= 0 {
			continue
		}
		botPos, ok := w.Positions.Get(d.Bot)
		if !ok {
			continue
		}
		structPos, ok := w.Positions.Get(d.Structure)
		if !ok {
			continue
		}
		if botPos.Room != structPos.Room || geometry.Distance(botPos.Pos, structPos.Pos) != 1 {
			continue
		}
		if !w.Structures.Contains(d.Structure) {
			continue
		}
		energy, ok := w.Energy.GetMut(d.Structure)
		if !ok {
			continue
		}
		storeFree := energy.EnergyMax - energy.Energy
		amount := d.Amount
		if amount > carry.Carry {
			amount = carry.Carry
		}
		if amount > storeFree {
			amount = storeFree
		}
		if amount <= 0 {
			continue
		}
		carry.Carry -= amount
		energy.Energy += amount
	}
}
