package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/world"
)

// ApplySpawnIntent allocates a bot id for each SpawnIntent and appends it
// to the target structure's queue. Overflow beyond SpawnQueueCapacity is
// silently dropped (spec §4.4's "Spawn" conflict policy).
func ApplySpawnIntent(w *world.World, insert ecs.InsertEntityView) {
	spawns := w.Intents.Spawn
	w.Intents.ClearSpawn()
	if len(spawns) == 0 {
		return
	}

	log := w.Log()
	for _, s := range spawns {
		queue, ok := w.SpawnQueues.GetMut(s.SpawnId)
		if !ok {
			log.Warn("spawn intent for structure without spawn queue, skipping", asField("spawn", s.SpawnId))
			continue
		}
		if len(queue.Queue) >= component.SpawnQueueCapacity {
			continue // queue full, overflow dropped per spec
		}
		bot := insert.Insert()
		queue.PushIfRoom(bot)
	}
}
