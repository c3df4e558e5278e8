package system

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/world"
)

// PositionsRebuild clears the per-room EntityComponent inverse index
// (World.EntityAt) and repopulates it by iterating PositionComponent, so
// that a tick's worth of moves, spawns, and deletions is reflected in a
// single consistent pass rather than maintained incrementally (spec
// §4.5).
func PositionsRebuild(w *world.World) {
	for _, room := range w.EntityAt.Rooms() {
		w.EntityAt.ClearRoom(room)
	}
	w.Positions.Iter(func(id ecs.EntityId, pos component.WorldPosition) bool {
		w.EntityAt.Set(pos.Room, pos.Pos, id)
		return true
	})
}
