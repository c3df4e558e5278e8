package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/world"
)

// EnergyRegen adds each EnergyRegenComponent's Amount to the matching
// EnergyComponent, clamped to EnergyMax (spec §4.5).
func EnergyRegen(w *world.World) {
	w.EnergyRegen.Iter(func(id ecs.EntityId, regen component.EnergyRegenComponent) bool {
		energy, ok := w.Energy.GetMut(id)
		if !ok {
			return true
		}
		energy.Energy += regen.Amount
		if energy.Energy > energy.EnergyMax {
			energy.Energy = energy.EnergyMax
		}
		return true
	})
}
