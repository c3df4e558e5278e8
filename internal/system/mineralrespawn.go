package system

import (
	"math/rand"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

const mineralRespawnRadius = 15
const mineralRespawnTries = 100

// MineralRespawn relocates every depleted resource to a random walkable,
// unoccupied tile within mineralRespawnRadius of its current position (up
// to mineralRespawnTries attempts) and restores it to full energy. A
// resource that finds no candidate tile is scheduled for deletion instead
// (spec §4.5).
func MineralRespawn(w *world.World) {
	type depleted struct {
		id  ecs.EntityId
		res component.ResourceComponent
	}
	var pending []depleted
	w.Resources.Iter(func(id ecs.EntityId, res component.ResourceComponent) bool {
		if res.Energy == 0 {
			pending = append(pending, depleted{id, res})
		}
		return true
	})

	for _, d := range pending {
		pos, ok := w.Positions.Get(d.id)
		if !ok {
			w.MarkForDestruction(d.id)
			continue
		}

		target, found := findRespawnTile(w, pos)
		if !found {
			w.MarkForDestruction(d.id)
			continue
		}

		w.Positions.InsertOrUpdate(d.id, component.WorldPosition{Room: pos.Room, Pos: target})
		d.res.Energy = d.res.EnergyMax
		w.Resources.InsertOrUpdate(d.id, d.res)
	}
}

// findRespawnTile samples random offsets within mineralRespawnRadius of
// from.Pos, accepting the first walkable, unoccupied candidate.
func findRespawnTile(w *world.World, from component.WorldPosition) (geometry.Axial, bool) {
	for i := 0; i < mineralRespawnTries; i++ {
		candidate := randomPointInRadius(from.Pos, mineralRespawnRadius)
		terrain, ok := w.Terrain.Get(from.Room, candidate)
		if !ok || !terrain.Walkable() {
			continue
		}
		if occupant, ok := w.EntityAt.Get(from.Room, candidate); ok && !occupant.IsZero() {
			continue
		}
		return candidate, true
	}
	return geometry.Zero, false
}

// randomPointInRadius draws a point within the hexagon of the given radius
// centred on center: q is drawn uniformly, then r uniformly among the
// values valid for that q. Tiles in shorter columns are drawn more often
// than tiles in longer ones.
func randomPointInRadius(center geometry.Axial, radius int32) geometry.Axial {
	q := int32(rand.Intn(int(2*radius+1))) - radius
	loR := -radius
	if -q-radius > loR {
		loR = -q - radius
	}
	hiR := radius
	if -q+radius < hiR {
		hiR = -q + radius
	}
	r := loR + int32(rand.Intn(int(hiR-loR+1)))
	return geometry.Axial{Q: center.Q + q, R: center.R + r}
}
