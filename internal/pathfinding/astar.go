// Package pathfinding implements in-room A* and cross-room BFS routing
// over the ECS store, grounded on the original engine's
// sim/simulation/src/pathfinding/pathfinding_room.rs (spec §4.3).
package pathfinding

import (
	"container/heap"
	"errors"

	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// ErrUnreachable is returned when the open set empties before the target
// comes within range and steps remain in the budget.
var ErrUnreachable = errors.New("pathfinding: target is unreachable")

// ErrTimeout is returned when the step budget is exhausted before a path
// is found.
var ErrTimeout = errors.New("pathfinding: step budget exhausted")

type node struct {
	pos    geometry.Axial
	parent geometry.Axial
	g      int32
	h      int32
}

func (n *node) f() int32 { return n.g + n.h }

type openHeap []*node

func (h openHeap) Len() int           { return len(h) }
func (h openHeap) Less(i, j int) bool { return h[i].f() < h[j].f() }
func (h openHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *openHeap) Push(x any) { *h = append(*h, x.(*node)) }

func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// InRoom searches for a path from `from` to `to` within a single room,
// stopping as soon as the frontier node is within `distance` hex-steps of
// the target (distance 0 demands landing exactly on it, which is what the
// cross-room legs aimed at a bridge tile pass). On
// success it returns the target-first reconstructed path (the tile
// closest to the target leads, the tile adjacent to `from` trails, and
// `from` itself is never included) and the unspent step budget.
func InRoom(w *world.World, room geometry.Axial, from, to geometry.Axial, distance int32, maxSteps int32) ([]geometry.Axial, int32, error) {
	remaining := maxSteps

	closed := make(map[geometry.Axial]*node, maxSteps)
	visited := ecs.NewHexGrid[bool](geometry.Hexagon{Center: geometry.Zero, Radius: w.RoomRadius()})

	start := &node{pos: from, parent: from, g: 0, h: geometry.Distance(from, to)}
	closed[from] = start
	visited.Set(from, true)

	open := &openHeap{start}
	heap.Init(open)

	// current is always the most recently popped node, so its
	// goal-arrival check below runs in the same iteration it was popped
	// in — never one iteration after its neighbours were already
	// expanded and `remaining` already spent on that expansion.
	current := heap.Pop(open).(*node)
	for {
		if geometry.Distance(current.pos, to) <= distance {
			return reconstruct(closed, current.pos, from), remaining, nil
		}
		if remaining <= 0 {
			return nil, remaining, ErrTimeout
		}

		for _, nb := range current.pos.Neighbours() {
			if seen, ok := visited.Get(nb); !ok || seen {
				continue
			}
			if _, ok := closed[nb]; ok {
				continue
			}
			if !walkable(w, room, nb, to) {
				continue
			}
			visited.Set(nb, true)
			heap.Push(open, &node{
				pos:    nb,
				parent: current.pos,
				g:      current.g + 1,
				h:      geometry.Distance(nb, to),
			})
		}
		remaining--

		if open.Len() == 0 {
			return nil, remaining, ErrUnreachable
		}
		current = heap.Pop(open).(*node)
		closed[current.pos] = current
	}
}

// walkable reports whether p may be entered: its terrain must be Plain
// or Bridge, and it must be unoccupied — except the goal tile itself,
// which is exempt from the occupancy check so a bot can path onto
// another bot it intends to interact with (spec §4.3).
func walkable(w *world.World, room geometry.Axial, p, goal geometry.Axial) bool {
	terrain, ok := w.Terrain.Get(room, p)
	if !ok || !terrain.Walkable() {
		return false
	}
	if p == goal {
		return true
	}
	occupant, ok := w.EntityAt.Get(room, p)
	return !ok || occupant.IsZero()
}

// reconstruct walks parent pointers from stop back to (but excluding)
// from, yielding a target-first path.
func reconstruct(closed map[geometry.Axial]*node, stop, from geometry.Axial) []geometry.Axial {
	path := make([]geometry.Axial, 0)
	cur := stop
	for cur != from {
		path = append(path, cur)
		n, ok := closed[cur]
		if !ok {
			break
		}
		cur = n.parent
	}
	return path
}
