package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/intent"
	"github.com/caolo-sim/engine/internal/world"
)

// UpdateContSpawns auto-enqueues a SpawnIntent for every owned, idle
// spawn with an empty queue, so a player-owned spawn structure keeps
// producing bots without a script driving it every tick. This is step 1
// of the strict application order in spec §4.4, run before scripts' own
// intents are merged in.
func UpdateContSpawns(w *world.World) {
	w.Spawns.Iter(func(id ecs.EntityId, sp component.SpawnComponent) bool {
		if sp.Spawning != 0 {
			return true
		}
		queue, ok := w.SpawnQueues.Get(id)
		if !ok || len(queue.Queue) > 0 {
			return true
		}
		owner, ok := w.Owners.Get(id)
		if !ok {
			return true
		}
		w.Intents.Spawn = append(w.Intents.Spawn, intent.SpawnIntent{
			SpawnId:  id,
			Owner:    owner.OwnerId,
			HasOwner: true,
		})
		return true
	})
}
