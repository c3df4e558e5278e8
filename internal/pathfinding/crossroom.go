package pathfinding

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// RoomPath finds a sequence of rooms from `from` to `to` by BFS over the
// room-connection graph stored in World.RoomConnections (spec §4.3). The
// returned slice starts with `from` and ends with `to`; ok is false when
// no such sequence exists.
func RoomPath(w *world.World, from, to geometry.Axial) ([]geometry.Axial, bool) {
	if from == to {
		return []geometry.Axial{from}, true
	}

	visited := map[geometry.Axial]bool{from: true}
	parent := map[geometry.Axial]geometry.Axial{}
	queue := []geometry.Axial{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		conns, ok := w.RoomConnections.Get(cur)
		if !ok {
			continue
		}
		for _, b := range conns.Bridges {
			nb := cur.Neighbour(b.Direction)
			if visited[nb] {
				continue
			}
			visited[nb] = true
			parent[nb] = cur
			if nb == to {
				return reconstructRooms(parent, from, to), true
			}
			queue = append(queue, nb)
		}
	}
	return nil, false
}

func reconstructRooms(parent map[geometry.Axial]geometry.Axial, from, to geometry.Axial) []geometry.Axial {
	rooms := []geometry.Axial{to}
	cur := to
	for cur != from {
		cur = parent[cur]
		rooms = append(rooms, cur)
	}
	// rooms was built target-first; reverse to from-first.
	for i, j := 0, len(rooms)-1; i < j; i, j = i+1, j-1 {
		rooms[i], rooms[j] = rooms[j], rooms[i]
	}
	return rooms
}

// ToTarget finds the next leg of a path from `from` towards `to`,
// crossing rooms as needed. When both positions are in the same room it
// is equivalent to InRoom with distance 0. Otherwise it locates the
// bridge leading towards the next room on the BFS route and paths to the
// bridge tile closest to the continuation in that room — the caller
// consumes this leg, then calls ToTarget again once the bot has stepped
// through the bridge (spec §4.3).
func ToTarget(w *world.World, from, to component.WorldPosition, maxSteps int32) ([]geometry.Axial, int32, error) {
	if from.Room == to.Room {
		return InRoom(w, from.Room, from.Pos, to.Pos, 0, maxSteps)
	}

	rooms, ok := RoomPath(w, from.Room, to.Room)
	if !ok || len(rooms) < 2 {
		return nil, maxSteps, ErrUnreachable
	}
	nextRoom := rooms[1]

	dir := directionTo(from.Room, nextRoom)
	if dir < 0 {
		return nil, maxSteps, ErrUnreachable
	}
	conns, ok := w.RoomConnections.Get(from.Room)
	if !ok {
		return nil, maxSteps, ErrUnreachable
	}
	var bridge *component.BridgeLink
	for i := range conns.Bridges {
		if conns.Bridges[i].Direction == dir {
			bridge = &conns.Bridges[i]
			break
		}
	}
	if bridge == nil {
		return nil, maxSteps, ErrUnreachable
	}

	tiles := bridgeTiles(w.RoomRadius(), dir, bridge.OffsetStart, bridge.OffsetEnd)
	if len(tiles) == 0 {
		return nil, maxSteps, ErrUnreachable
	}
	exit := closestTile(tiles, to.Pos)

	return InRoom(w, from.Room, from.Pos, exit, 0, maxSteps)
}

// directionTo returns the neighbour direction (0..5) from a to b, or -1
// if b is not one of a's six neighbours.
func directionTo(a, b geometry.Axial) int {
	for dir := 0; dir < 6; dir++ {
		if a.Neighbour(dir) == b {
			return dir
		}
	}
	return -1
}

// bridgeTiles returns the span of edge tiles a BridgeLink paints, per
// spec §4.6: offsetStart/offsetEnd trim the shared edge from either end.
func bridgeTiles(roomRadius int32, dir int, offsetStart, offsetEnd int32) []geometry.Axial {
	edge := geometry.Hexagon{Center: geometry.Zero, Radius: roomRadius}.EdgeTiles(dir)
	lo := offsetStart
	hi := int32(len(edge)) - offsetEnd
	if lo < 0 {
		lo = 0
	}
	if hi > int32(len(edge)) {
		hi = int32(len(edge))
	}
	if lo >= hi {
		return nil
	}
	return edge[lo:hi]
}

// closestTile returns the tile in candidates with the smallest hex
// distance to target.
func closestTile(candidates []geometry.Axial, target geometry.Axial) geometry.Axial {
	best := candidates[0]
	bestDist := geometry.Distance(best, target)
	for _, c := range candidates[1:] {
		if d := geometry.Distance(c, target); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
