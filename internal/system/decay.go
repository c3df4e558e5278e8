package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/world"
)

// Decay subtracts HpAmount from every entity that has both HpComponent
// and DecayComponent once its interval elapses, saturating hp at 0 (spec
// §4.5).
func Decay(w *world.World) {
	w.Decay.IterMut(func(id ecs.EntityId, d *component.DecayComponent) bool {
		hp, ok := w.Hp.GetMut(id)
		if !ok {
			return true
		}
		if d.TimeRemaining <= 0 {
			hp.Hp -= d.HpAmount
			if hp.Hp < 0 {
				hp.Hp = 0
			}
			d.TimeRemaining = d.Interval
		} else {
			d.TimeRemaining--
		}
		return true
	})
}
