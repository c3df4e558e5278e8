package system

import (
	"testing"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
)

func TestPositionsRebuildReflectsMoves(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})

	newPos := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 2, R: 0}}
	w.Positions.InsertOrUpdate(bot, newPos)
	// EntityAt still reflects the stale position until PositionsRebuild runs.
	if occ, ok := w.EntityAt.Get(room, geometry.Axial{Q: 0, R: 0}); !ok || occ != bot {
		t.Fatalf("expected stale EntityAt entry before rebuild")
	}

	PositionsRebuild(w)

	if occ, _ := w.EntityAt.Get(room, geometry.Axial{Q: 0, R: 0}); !occ.IsZero() {
		t.Fatalf("expected the old tile to be cleared after rebuild")
	}
	if occ, ok := w.EntityAt.Get(room, newPos.Pos); !ok || occ != bot {
		t.Fatalf("expected bot re-indexed at its new position")
	}
}

func TestPositionsRebuildDropsDestroyedEntities(t *testing.T) {
	w := newTestWorld()
	room := geometry.Axial{Q: 0, R: 0}
	bot := spawnBot(w, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})
	w.Positions.RemoveEntity(bot)

	PositionsRebuild(w)

	if occ, _ := w.EntityAt.Get(room, geometry.Axial{Q: 0, R: 0}); !occ.IsZero() {
		t.Fatalf("expected removed entity's tile to stay empty after rebuild")
	}
}
