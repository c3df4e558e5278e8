package pathfinding

import (
	"testing"

	"go.uber.org/zap"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// linkRooms builds a two-room world connected by a single bridge in
// direction dir from roomA to roomB, with every tile in both rooms Plain
// except the bridge edge which is painted Bridge.
func linkRooms(t *testing.T, radius int32, roomA, roomB geometry.Axial, dir int) *world.World {
	t.Helper()
	w := world.New(radius, zap.NewNop())
	hex := geometry.Hexagon{Center: geometry.Zero, Radius: radius}
	for _, room := range []geometry.Axial{roomA, roomB} {
		for _, p := range hex.IterPoints() {
			w.Terrain.Set(room, p, component.TerrainPlain)
		}
	}
	for _, p := range hex.EdgeTiles(dir) {
		w.Terrain.Set(roomA, p, component.TerrainBridge)
	}
	opposite := (dir + 3) % 6
	for _, p := range hex.EdgeTiles(opposite) {
		w.Terrain.Set(roomB, p, component.TerrainBridge)
	}

	w.RoomConnections.InsertOrUpdate(roomA, component.RoomConnections{
		Bridges: []component.BridgeLink{{Direction: dir, OffsetStart: 0, OffsetEnd: 0}},
	})
	w.RoomConnections.InsertOrUpdate(roomB, component.RoomConnections{
		Bridges: []component.BridgeLink{{Direction: opposite, OffsetStart: 0, OffsetEnd: 0}},
	})
	return w
}

func TestRoomPathSameRoom(t *testing.T) {
	room := geometry.Axial{Q: 0, R: 0}
	w := world.New(5, zap.NewNop())
	path, ok := RoomPath(w, room, room)
	if !ok || len(path) != 1 || path[0] != room {
		t.Fatalf("RoomPath same room = %v, %v, want [%v] true", path, ok, room)
	}
}

func TestRoomPathAcrossBridge(t *testing.T) {
	roomA := geometry.Axial{Q: 0, R: 0}
	roomB := geometry.Axial{Q: 1, R: 0}
	w := linkRooms(t, 5, roomA, roomB, 0)

	path, ok := RoomPath(w, roomA, roomB)
	if !ok {
		t.Fatalf("expected a room path to exist")
	}
	if len(path) != 2 || path[0] != roomA || path[1] != roomB {
		t.Fatalf("RoomPath = %v, want [%v %v]", path, roomA, roomB)
	}
}

func TestRoomPathUnreachableWithoutBridge(t *testing.T) {
	w := world.New(5, zap.NewNop())
	roomA := geometry.Axial{Q: 0, R: 0}
	roomB := geometry.Axial{Q: 5, R: 5}
	if _, ok := RoomPath(w, roomA, roomB); ok {
		t.Fatalf("expected no path between disconnected rooms")
	}
}

func TestToTargetSameRoomDelegatesToInRoom(t *testing.T) {
	w, room := openRoom(t, 5)
	from := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 0, R: 0}}
	to := component.WorldPosition{Room: room, Pos: geometry.Axial{Q: 2, R: 0}}

	path, _, err := ToTarget(w, from, to, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path[0] != to.Pos {
		t.Fatalf("expected target-first path ending at %v, got %v", to.Pos, path[0])
	}
}

func TestToTargetCrossesBridgeTowardsNextRoom(t *testing.T) {
	roomA := geometry.Axial{Q: 0, R: 0}
	roomB := geometry.Axial{Q: 1, R: 0}
	w := linkRooms(t, 5, roomA, roomB, 0)

	from := component.WorldPosition{Room: roomA, Pos: geometry.Axial{Q: 0, R: 0}}
	to := component.WorldPosition{Room: roomB, Pos: geometry.Axial{Q: 0, R: 0}}

	path, _, err := ToTarget(w, from, to, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) == 0 {
		t.Fatalf("expected a non-empty leg towards the bridge")
	}
	exit := path[0]
	terrain, ok := w.Terrain.Get(roomA, exit)
	if !ok || terrain != component.TerrainBridge {
		t.Fatalf("expected leg to end on a bridge tile, landed on %v (terrain %v)", exit, terrain)
	}
}

func TestDirectionToAdjacentAndNonAdjacent(t *testing.T) {
	a := geometry.Axial{Q: 0, R: 0}
	for dir := 0; dir < 6; dir++ {
		b := a.Neighbour(dir)
		if got := directionTo(a, b); got != dir {
			t.Errorf("directionTo(%v, %v) = %d, want %d", a, b, got, dir)
		}
	}
	if got := directionTo(a, geometry.Axial{Q: 9, R: 9}); got != -1 {
		t.Errorf("directionTo for non-neighbour = %d, want -1", got)
	}
}

func TestBridgeTilesRespectsOffsets(t *testing.T) {
	full := bridgeTiles(5, 0, 0, 0)
	trimmed := bridgeTiles(5, 0, 1, 1)
	if len(trimmed) != len(full)-2 {
		t.Fatalf("expected offsets to trim 2 tiles, full=%d trimmed=%d", len(full), len(trimmed))
	}
}

func TestClosestTilePicksNearest(t *testing.T) {
	candidates := []geometry.Axial{{Q: 0, R: 0}, {Q: 5, R: 0}, {Q: -5, R: 0}}
	target := geometry.Axial{Q: 4, R: 0}
	if got := closestTile(candidates, target); got != (geometry.Axial{Q: 5, R: 0}) {
		t.Fatalf("closestTile = %v, want {5 0}", got)
	}
}
