package component

import (
	"testing"

	"github.com/caolo-sim/engine/internal/ecs"
)

func TestLessLogKeyOrdersByEntityThenTick(t *testing.T) {
	a := LogKey{Entity: 1, Tick: 5}
	b := LogKey{Entity: 1, Tick: 6}
	c := LogKey{Entity: 2, Tick: 0}

	if !LessLogKey(a, b) {
		t.Fatalf("expected %v < %v", a, b)
	}
	if LessLogKey(b, a) {
		t.Fatalf("expected %v !< %v", b, a)
	}
	if !LessLogKey(b, c) {
		t.Fatalf("expected %v < %v (entity compared before tick)", b, c)
	}
}

func TestTerrainKindWalkable(t *testing.T) {
	cases := []struct {
		kind TerrainKind
		want bool
	}{
		{TerrainPlain, true},
		{TerrainBridge, true},
		{TerrainWall, false},
	}
	for _, c := range cases {
		if got := c.kind.Walkable(); got != c.want {
			t.Errorf("%v.Walkable() = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestMineableAmountCapsByRateEnergyAndCarry(t *testing.T) {
	cases := []struct {
		resourceEnergy, carryFree, want int32
	}{
		{100, 100, MineAmountPerTick},
		{3, 100, 3},
		{100, 2, 2},
		{0, 100, 0},
		{5, -1, 0},
	}
	for _, c := range cases {
		if got := MineableAmount(c.resourceEnergy, c.carryFree); got != c.want {
			t.Errorf("MineableAmount(%d, %d) = %d, want %d", c.resourceEnergy, c.carryFree, got, c.want)
		}
	}
}

func TestSpawnQueuePushPopFIFO(t *testing.T) {
	var q SpawnQueueComponent
	for i := ecs.EntityId(1); i <= SpawnQueueCapacity; i++ {
		if !q.PushIfRoom(i) {
			t.Fatalf("push %d should succeed within capacity", i)
		}
	}
	if q.PushIfRoom(999) {
		t.Fatalf("push beyond capacity should be rejected")
	}

	first, ok := q.PopFront()
	if !ok || first != 1 {
		t.Fatalf("PopFront() = %d, %v, want 1, true", first, ok)
	}
	if !q.PushIfRoom(999) {
		t.Fatalf("push after freeing a slot should succeed")
	}
}

func TestPopFrontEmptyQueue(t *testing.T) {
	var q SpawnQueueComponent
	if _, ok := q.PopFront(); ok {
		t.Fatalf("expected PopFront on empty queue to report ok=false")
	}
}

func TestScriptHistoryPushDropsOldest(t *testing.T) {
	var h ScriptHistoryComponent
	for i := int64(0); i < ScriptHistoryMaxEntries+5; i++ {
		h.Push(ScriptHistoryEntry{Time: i})
	}
	if len(h.Entries) != ScriptHistoryMaxEntries {
		t.Fatalf("len(Entries) = %d, want %d", len(h.Entries), ScriptHistoryMaxEntries)
	}
	if h.Entries[0].Time != 5 {
		t.Fatalf("expected the oldest 5 entries dropped, first remaining Time = %d, want 5", h.Entries[0].Time)
	}
	if h.Entries[len(h.Entries)-1].Time != int64(ScriptHistoryMaxEntries+4) {
		t.Fatalf("expected the most recent entry retained, got Time = %d", h.Entries[len(h.Entries)-1].Time)
	}
}
