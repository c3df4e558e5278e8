package world

import (
	"testing"

	"go.uber.org/zap"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/intent"
)

func TestNewAssignsRoomRadiusAndEmptyTables(t *testing.T) {
	w := New(7, zap.NewNop())
	if w.RoomRadius() != 7 {
		t.Fatalf("RoomRadius() = %d, want 7", w.RoomRadius())
	}
	if w.Tick() != 0 {
		t.Fatalf("Tick() = %d, want 0", w.Tick())
	}
	if w.Positions.Len() != 0 || w.Hp.Len() != 0 {
		t.Fatalf("expected a fresh world to have empty tables")
	}
}

func TestCreateEntityAllocatesDistinctIds(t *testing.T) {
	w := New(5, zap.NewNop())
	a := w.CreateEntity()
	b := w.CreateEntity()
	if a == b {
		t.Fatalf("expected distinct entity ids, got %d twice", a)
	}
}

func TestAdvanceTickAndRestoreTick(t *testing.T) {
	w := New(5, zap.NewNop())
	w.AdvanceTick()
	w.AdvanceTick()
	if w.Tick() != 2 {
		t.Fatalf("Tick() = %d, want 2", w.Tick())
	}
	w.RestoreTick(100)
	if w.Tick() != 100 {
		t.Fatalf("Tick() after RestoreTick = %d, want 100", w.Tick())
	}
}

func TestLogFallsBackToNopWhenUnset(t *testing.T) {
	w := New(5, nil)
	if w.Log() == nil {
		t.Fatalf("expected Log() to return a non-nil no-op logger")
	}
}

func TestFlushDestroyQueueRemovesEntityFromEveryTable(t *testing.T) {
	w := New(5, zap.NewNop())
	room := geometry.Axial{Q: 0, R: 0}
	id := w.CreateEntity()

	w.Positions.InsertOrUpdate(id, component.WorldPosition{Room: room, Pos: geometry.Axial{}})
	w.Bots.InsertOrUpdate(id, struct{}{})
	w.Hp.InsertOrUpdate(id, component.HpComponent{Hp: 10, HpMax: 10})
	w.Energy.InsertOrUpdate(id, component.EnergyComponent{Energy: 5, EnergyMax: 10})
	w.Carry.InsertOrUpdate(id, component.CarryComponent{Carry: 1, CarryMax: 10})
	w.Scripts.InsertOrUpdate(id, component.EntityScript{})
	w.Resources.InsertOrUpdate(id, component.ResourceComponent{Kind: component.ResourceEnergy, Energy: 1, EnergyMax: 1})
	w.Logs.InsertOrUpdate(component.LogKey{Entity: id, Tick: 0}, component.LogEntry{Text: "x"})
	w.Logs.InsertOrUpdate(component.LogKey{Entity: id, Tick: 1}, component.LogEntry{Text: "y"})

	other := w.CreateEntity()
	w.Logs.InsertOrUpdate(component.LogKey{Entity: other, Tick: 0}, component.LogEntry{Text: "keep"})

	w.MarkForDestruction(id)
	w.FlushDestroyQueue()

	if w.Positions.Contains(id) || w.Bots.Contains(id) || w.Hp.Contains(id) ||
		w.Energy.Contains(id) || w.Carry.Contains(id) || w.Scripts.Contains(id) || w.Resources.Contains(id) {
		t.Fatalf("expected every per-entity table to have dropped entity %d", id)
	}
	if w.Logs.Contains(component.LogKey{Entity: id, Tick: 0}) || w.Logs.Contains(component.LogKey{Entity: id, Tick: 1}) {
		t.Fatalf("expected destroyed entity's log rows to be removed")
	}
	if !w.Logs.Contains(component.LogKey{Entity: other, Tick: 0}) {
		t.Fatalf("expected an unrelated entity's log row to survive")
	}
	if len(*w.DestroyQueuePtr()) != 0 {
		t.Fatalf("expected the destroy queue to be emptied after flush")
	}
}

func TestFlushDestroyQueueIsIdempotentForDuplicateIds(t *testing.T) {
	w := New(5, zap.NewNop())
	id := w.CreateEntity()
	w.Hp.InsertOrUpdate(id, component.HpComponent{Hp: 1, HpMax: 1})

	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	w.FlushDestroyQueue()

	if w.Hp.Contains(id) {
		t.Fatalf("expected entity %d to be removed", id)
	}
}

func TestIntentQueuesAppendMergesAndClearResets(t *testing.T) {
	var q IntentQueues
	q.Append(BotIntents{
		Entity: 1,
		Log:    []intent.LogIntent{{Text: "a"}},
		Move:   []intent.MoveIntent{{}},
	})
	q.Append(BotIntents{
		Entity: 2,
		Log:    []intent.LogIntent{{Text: "b"}},
	})
	if len(q.Log) != 2 || len(q.Move) != 1 {
		t.Fatalf("Append did not merge correctly: Log=%d Move=%d", len(q.Log), len(q.Move))
	}

	q.ClearLog()
	q.ClearMove()
	if q.Log != nil || q.Move != nil {
		t.Fatalf("expected Clear* to reset queues to nil, got Log=%v Move=%v", q.Log, q.Move)
	}
}

func TestNewReadOnlyReflectsTickAndRoomRadius(t *testing.T) {
	w := New(9, zap.NewNop())
	w.AdvanceTick()
	ro := NewReadOnly(w)
	if ro.Tick() != w.Tick() || ro.RoomRadius() != 9 {
		t.Fatalf("ReadOnly snapshot = {tick=%d radius=%d}, want {tick=%d radius=9}", ro.Tick(), ro.RoomRadius(), w.Tick())
	}

	id := w.CreateEntity()
	w.Positions.InsertOrUpdate(id, component.WorldPosition{Room: geometry.Axial{}, Pos: geometry.Axial{}})
	pos, ok := ro.Positions.Table().Get(id)
	if !ok || pos.Room != (geometry.Axial{}) {
		t.Fatalf("expected the ReadOnly Positions view to read through to the underlying table")
	}
}
