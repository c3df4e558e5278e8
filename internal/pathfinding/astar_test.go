package pathfinding

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// openRoom builds a world with a single all-Plain room of the given
// radius, so tests exercise routing logic without terrain noise.
func openRoom(t *testing.T, roomRadius int32) (*world.World, geometry.Axial) {
	t.Helper()
	w := world.New(roomRadius, zap.NewNop())
	room := geometry.Axial{Q: 0, R: 0}
	hex := geometry.Hexagon{Center: geometry.Zero, Radius: roomRadius}
	for _, p := range hex.IterPoints() {
		w.Terrain.Set(room, p, component.TerrainPlain)
	}
	return w, room
}

func TestInRoomFindsDirectPath(t *testing.T) {
	w, room := openRoom(t, 5)
	from := geometry.Axial{Q: 0, R: 0}
	to := geometry.Axial{Q: 3, R: 0}

	path, _, err := InRoom(w, room, from, to, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("expected a 3-step path, got %d: %v", len(path), path)
	}
	if path[0] != to {
		t.Fatalf("path must be target-first, got %v at front", path[0])
	}
	last := from
	for i := len(path) - 1; i >= 0; i-- {
		if !geometry.IsNeighbour(last, path[i]) {
			t.Fatalf("step %v is not adjacent to previous position %v", path[i], last)
		}
		last = path[i]
	}
}

func TestInRoomAvoidsWalls(t *testing.T) {
	w, room := openRoom(t, 5)
	// Wall off every tile at Q == 1 to force a detour.
	hex := geometry.Hexagon{Center: geometry.Zero, Radius: 5}
	for _, p := range hex.IterPoints() {
		if p.Q == 1 {
			w.Terrain.Set(room, p, component.TerrainWall)
		}
	}

	path, _, err := InRoom(w, room, geometry.Axial{Q: 0, R: 0}, geometry.Axial{Q: 3, R: 0}, 0, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range path {
		if p.Q == 1 {
			t.Fatalf("path crosses a walled tile: %v in %v", p, path)
		}
	}
}

func TestInRoomUnreachableWhenBoxedIn(t *testing.T) {
	w, room := openRoom(t, 3)
	from := geometry.Axial{Q: 0, R: 0}
	to := geometry.Axial{Q: 2, R: 0}
	for _, nb := range from.Neighbours() {
		w.Terrain.Set(room, nb, component.TerrainWall)
	}

	_, _, err := InRoom(w, room, from, to, 0, 100)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestInRoomTimeoutWithTinyBudget(t *testing.T) {
	w, room := openRoom(t, 10)
	_, _, err := InRoom(w, room, geometry.Axial{Q: -8, R: 0}, geometry.Axial{Q: 8, R: 0}, 0, 1)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestInRoomGoalTileExemptFromOccupancy(t *testing.T) {
	w, room := openRoom(t, 5)
	to := geometry.Axial{Q: 2, R: 0}
	w.EntityAt.Set(room, to, 99)

	path, _, err := InRoom(w, room, geometry.Axial{Q: 0, R: 0}, to, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error reaching an occupied goal: %v", err)
	}
	if path[0] != to {
		t.Fatalf("expected to land on the occupied goal tile, got %v", path[0])
	}
}

func TestInRoomDistanceStopsEarly(t *testing.T) {
	w, room := openRoom(t, 5)
	from := geometry.Axial{Q: 0, R: 0}
	to := geometry.Axial{Q: 4, R: 0}

	path, _, err := InRoom(w, room, from, to, 2, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := geometry.Distance(path[0], to); got > 2 {
		t.Fatalf("expected to stop within distance 2 of target, stopped at distance %d", got)
	}
}
