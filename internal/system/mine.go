package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// ApplyMine applies all MineIntents in iteration order. Spec §4.4: no
// global conflict resolution — capacity is checked sequentially using
// each resource's current energy after all previous mines on it this
// tick, which sequential mutation gives us for free.
func ApplyMine(w *world.World) {
	mines := w.Intents.Mine
	w.Intents.ClearMine()
	if len(mines) == 0 {
		return
	}

	log := w.Log()
	for _, m := range mines {
		atkPos, ok := w.Positions.Get(m.Bot)
		if !ok {
			continue
		}
		resPos, ok := w.Positions.Get(m.Resource)
		if !ok {
			log.Warn("mine intent against entity without position, skipping", asField("resource", m.Resource))
			continue
		}
		if atkPos.Room != resPos.Room || geometry.Distance(atkPos.Pos, resPos.Pos) != 1 {
			continue
		}
		resRow, ok := w.Resources.GetMut(m.Resource)
		if !ok || resRow.Kind != component.ResourceEnergy || resRow.Energy <= 0 {
			continue
		}
		carry, ok := w.Carry.GetMut(m.Bot)
		if !ok {
			continue
		}
		free := carry.CarryMax - carry.Carry
		amount := component.MineableAmount(resRow.Energy, free)
		if amount <= 0 {
			continue
		}
		resRow.Energy -= amount
		carry.Carry += amount
	}
}
