package pathfinding

import (
	"testing"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
)

func TestNavigateAtTargetWhenAlreadyThere(t *testing.T) {
	w, room := openRoom(t, 5)
	pos := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}}

	res, err := Navigate(w, pos, pos, component.PathCacheComponent{}, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AtTarget {
		t.Fatalf("expected AtTarget when from == target")
	}
}

func TestNavigateFillsCacheWhenEmpty(t *testing.T) {
	w, room := openRoom(t, 5)
	from := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}}
	target := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 3, R: 0}}

	res, err := Navigate(w, from, target, component.PathCacheComponent{}, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.RefillCache {
		t.Fatalf("expected RefillCache on first navigation")
	}
	if !geometry.IsNeighbour(from.Pos, res.Step) {
		t.Fatalf("expected the step to be adjacent to from, got %v", res.Step)
	}
	if res.NewCache.Target != target {
		t.Fatalf("expected NewCache.Target = %v, got %v", target, res.NewCache.Target)
	}
}

func TestNavigateReusesValidCache(t *testing.T) {
	w, room := openRoom(t, 5)
	from := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}}
	target := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 3, R: 0}}

	var cache component.PathCacheComponent
	cache.Fill(target, []geometry.Axial{target.Pos, {Q: 2, R: 0}, {Q: 1, R: 0}})

	res, err := Navigate(w, from, target, cache, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RefillCache {
		t.Fatalf("expected cache reuse, got a refill")
	}
	if res.Step != (geometry.Axial{Q: 1, R: 0}) {
		t.Fatalf("expected to reuse cached next step {1 0}, got %v", res.Step)
	}
}

func TestNavigateRefillsWhenCachedStepBlocked(t *testing.T) {
	w, room := openRoom(t, 5)
	w.Terrain.Set(room, geometry.Axial{Q: 1, R: 0}, component.TerrainWall)

	from := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}}
	target := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 3, R: 0}}

	var cache component.PathCacheComponent
	cache.Fill(target, []geometry.Axial{target.Pos, {Q: 2, R: 0}, {Q: 1, R: 0}})

	res, err := Navigate(w, from, target, cache, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.RefillCache {
		t.Fatalf("expected refill once the cached next step is walled off")
	}
}

func TestNavigateRefillsWhenTargetChanged(t *testing.T) {
	w, room := openRoom(t, 5)
	from := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}}
	oldTarget := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 3, R: 0}}
	newTarget := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: -3, R: 0}}

	var cache component.PathCacheComponent
	cache.Fill(oldTarget, []geometry.Axial{oldTarget.Pos, {Q: 1, R: 0}})

	res, err := Navigate(w, from, newTarget, cache, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.RefillCache {
		t.Fatalf("expected refill when the target no longer matches the cache")
	}
	if res.NewCache.Target != newTarget {
		t.Fatalf("expected NewCache.Target = %v, got %v", newTarget, res.NewCache.Target)
	}
}
