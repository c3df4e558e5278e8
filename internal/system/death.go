package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/world"
)

// Death queues for deferred deletion every entity with hp == 0, plus any
// entity named by a queued DeleteEntityIntent. Deletion itself is applied
// by World.FlushDestroyQueue at post_process, once every system has run,
// so the systems after Death in the same tick (EnergyRegen onward) still
// see the marked entities.
func Death(w *world.World) {
	dels := w.Intents.DeleteEntity
	w.Intents.ClearDeleteEntity()
	for _, d := range dels {
		w.MarkForDestruction(d.Id)
	}

	w.Hp.Iter(func(id ecs.EntityId, hp component.HpComponent) bool {
		if hp.Hp <= 0 {
			w.MarkForDestruction(id)
		}
		return true
	})
}
