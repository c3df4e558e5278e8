package persist

import (
	"testing"

	"go.uber.org/zap"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

func buildPopulatedWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(5, zap.NewNop())
	room := geometry.Axial{Q: 0, R: 0}
	w.Rooms.InsertOrUpdate(room, component.RoomComponent{})
	w.Terrain.Set(room, geometry.Axial{Q: 0, R: 0}, component.TerrainPlain)
	w.Terrain.Set(room, geometry.Axial{Q: 1, R: 0}, component.TerrainWall)

	bot := w.CreateEntity()
	w.Bots.InsertOrUpdate(bot, ecs.Unit{})
	w.Positions.InsertOrUpdate(bot, component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}})
	w.EntityAt.Set(room, geometry.Axial{Q: 0, R: 0}, bot)
	w.Hp.InsertOrUpdate(bot, component.HpComponent{Hp: 30, HpMax: 50})
	w.Logs.InsertOrUpdate(component.LogKey{Entity: bot, Tick: 1}, component.LogEntry{Text: "hi"})

	for i := 0; i < 5; i++ {
		w.AdvanceTick()
	}
	return w
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	w := buildPopulatedWorld(t)
	snap := Capture(w)

	fresh := world.New(5, zap.NewNop())
	Restore(fresh, snap)

	if fresh.Tick() != w.Tick() {
		t.Fatalf("restored Tick() = %d, want %d", fresh.Tick(), w.Tick())
	}
	if fresh.Allocator().Peek() != w.Allocator().Peek() {
		t.Fatalf("restored allocator Peek() = %d, want %d", fresh.Allocator().Peek(), w.Allocator().Peek())
	}

	room := geometry.Axial{Q: 0, R: 0}
	if !fresh.Rooms.Contains(room) {
		t.Fatalf("expected restored Rooms to contain %v", room)
	}
	terrain, ok := fresh.Terrain.Get(room, geometry.Axial{Q: 1, R: 0})
	if !ok || terrain != component.TerrainWall {
		t.Fatalf("restored terrain at {1 0} = %v, %v, want Wall, true", terrain, ok)
	}

	var bot ecs.EntityId
	w.Bots.Iter(func(id ecs.EntityId, _ ecs.Unit) bool { bot = id; return false })

	if !fresh.Bots.Contains(bot) {
		t.Fatalf("expected restored Bots to contain entity %d", bot)
	}
	hp, ok := fresh.Hp.Get(bot)
	if !ok || hp.Hp != 30 || hp.HpMax != 50 {
		t.Fatalf("restored Hp = %+v, %v, want {30 50}, true", hp, ok)
	}
	entry, ok := fresh.Logs.Get(component.LogKey{Entity: bot, Tick: 1})
	if !ok || entry.Text != "hi" {
		t.Fatalf("restored log entry = %+v, %v, want hi, true", entry, ok)
	}
	occupant, ok := fresh.EntityAt.Get(room, geometry.Axial{Q: 0, R: 0})
	if !ok || occupant != bot {
		t.Fatalf("restored EntityAt = %v, %v, want %d, true", occupant, ok, bot)
	}
}

func TestCaptureSkipsZeroEntityAtSlots(t *testing.T) {
	w := world.New(5, zap.NewNop())
	room := geometry.Axial{Q: 0, R: 0}
	w.Rooms.InsertOrUpdate(room, component.RoomComponent{})
	w.Terrain.Set(room, geometry.Axial{Q: 0, R: 0}, component.TerrainPlain)

	snap := Capture(w)
	if len(snap.EntityAt) != 0 {
		t.Fatalf("expected no EntityAt rows for an empty grid, got %d", len(snap.EntityAt))
	}
}
