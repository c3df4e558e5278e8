package mapgen

import (
	"math/rand"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// Overworld lays out the room graph: every room within overworldRadius of
// the origin, and a mirrored RoomConnection bridge for a randomly chosen
// subset of unordered neighbour pairs (spec §4.6).
func Overworld(w *world.World, overworldRadius int32, seed uint64, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	rooms := geometry.Hexagon{Center: geometry.Zero, Radius: overworldRadius}.IterPoints()
	roomSet := make(map[geometry.Axial]bool, len(rooms))
	for _, r := range rooms {
		roomSet[r] = true
		w.Rooms.InsertOrUpdate(r, component.RoomComponent{})
	}

	edgeLen := w.RoomRadius() + 1

	for _, a := range rooms {
		for dir := 0; dir < 6; dir++ {
			b := a.Neighbour(dir)
			if !roomSet[b] || !lessRoom(a, b) {
				// Only visit each unordered pair once, from its
				// lexicographically smaller endpoint.
				continue
			}
			if rng.Float64() >= cfg.BridgeChance {
				continue
			}

			maxLen := cfg.MaxBridgeLen
			if maxLen > edgeLen {
				maxLen = edgeLen
			}
			minLen := cfg.MinBridgeLen
			if minLen > maxLen {
				minLen = maxLen
			}
			bridgeLen := minLen
			if maxLen > minLen {
				bridgeLen = minLen + int32(rng.Intn(int(maxLen-minLen+1)))
			}
			trim := edgeLen - bridgeLen
			if trim < 0 {
				trim = 0
			}
			offsetStart := int32(0)
			if trim > 0 {
				offsetStart = int32(rng.Intn(int(trim + 1)))
			}
			offsetEnd := trim - offsetStart

			appendBridge(w, a, component.BridgeLink{Direction: dir, OffsetStart: offsetStart, OffsetEnd: offsetEnd})
			appendBridge(w, b, component.BridgeLink{Direction: oppositeDirection(dir), OffsetStart: offsetEnd, OffsetEnd: offsetStart})
		}
	}
	return nil
}

func lessRoom(a, b geometry.Axial) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

func oppositeDirection(dir int) int { return (dir + 3) % 6 }

func appendBridge(w *world.World, room geometry.Axial, link component.BridgeLink) {
	conns, _ := w.RoomConnections.Get(room)
	conns.Bridges = append(conns.Bridges, link)
	w.RoomConnections.InsertOrUpdate(room, conns)
}
