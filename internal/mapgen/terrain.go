package mapgen

import (
	"math/rand"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/geometry"
	"github.com/caolo-sim/engine/internal/world"
)

// Terrain fills a single room's hex grid: diamond-square noise
// thresholded into Wall/Plain, dilated, bridges painted on top, and a
// connectivity repair pass guaranteeing every bridge can reach every
// other bridge (spec §4.6).
func Terrain(w *world.World, room geometry.Axial, overworldSeed uint64, cfg Config) {
	rng := rand.New(rand.NewSource(int64(RoomSeed(overworldSeed, room))))
	radius := w.RoomRadius()
	region := geometry.Hexagon{Center: geometry.Zero, Radius: radius}

	dsides := nextPowerOfTwo(2 * radius)
	noise := diamondSquare(rng, dsides)

	kinds := make(map[geometry.Axial]component.TerrainKind, region.CellCount())
	for _, p := range region.IterPoints() {
		x := p.Q + radius
		y := p.R + radius
		v := noise[x][y]
		switch {
		case v < cfg.ChanceWall:
			kinds[p] = component.TerrainWall
		case v > 1-cfg.ChancePlain:
			kinds[p] = component.TerrainPlain
		default:
			kinds[p] = component.TerrainWall
		}
	}

	for round := 0; round < cfg.PlainDilation; round++ {
		kinds = dilatePlains(region, kinds)
	}

	conns, _ := w.RoomConnections.Get(room)
	bridgeTiles := make(map[geometry.Axial]bool)
	for _, link := range conns.Bridges {
		for _, p := range bridgeTiles2(radius, link) {
			kinds[p] = component.TerrainBridge
			bridgeTiles[p] = true
		}
	}

	repairConnectivity(region, kinds, bridgeTiles)

	for _, p := range region.IterPoints() {
		w.Terrain.Set(room, p, kinds[p])
	}
}

// nextPowerOfTwo returns the smallest power of two >= n (at least 2), so
// that a (power+1)-sided square encloses a 2*radius span.
func nextPowerOfTwo(n int32) int32 {
	p := int32(2)
	for p < n {
		p *= 2
	}
	return p
}

// diamondSquare runs the classic diamond-square fractal terrain
// algorithm on a (dsides+1)x(dsides+1) grid, grounded on the original
// engine's map_generation/room/diamond_square.rs. The result is rescaled
// into [0,1] for thresholding.
func diamondSquare(rng *rand.Rand, dsides int32) [][]float64 {
	n := int(dsides) + 1
	grid := make([][]float64, n)
	for i := range grid {
		grid[i] = make([]float64, n)
	}

	corner := func() float64 { return rng.Float64() - 0.5 }
	grid[0][0] = corner()
	grid[0][dsides] = corner()
	grid[dsides][0] = corner()
	grid[dsides][dsides] = corner()

	jitter := func(d int32) float64 { return (rng.Float64() - 0.5) * float64(d) }

	for d := dsides / 2; d >= 1; d /= 2 {
		for x := d; x < dsides; x += 2 * d {
			for y := d; y < dsides; y += 2 * d {
				sum := grid[x-d][y-d] + grid[x-d][y+d] + grid[x+d][y-d] + grid[x+d][y+d]
				grid[x][y] = sum/4 + jitter(d)
			}
		}
		for x := int32(0); x <= dsides; x += d {
			startOffset := int32(0)
			if (x/d)%2 == 0 {
				startOffset = d
			}
			for y := startOffset; y <= dsides; y += 2 * d {
				sum := 0.0
				num := 0.0
				if x-d >= 0 {
					sum += grid[x-d][y]
					num++
				}
				if x+d <= dsides {
					sum += grid[x+d][y]
					num++
				}
				if y-d >= 0 {
					sum += grid[x][y-d]
					num++
				}
				if y+d <= dsides {
					sum += grid[x][y+d]
					num++
				}
				grid[x][y] = sum/num + jitter(d)
			}
		}
	}

	min, max := grid[0][0], grid[0][0]
	for _, row := range grid {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = (grid[i][j] - min) / span
		}
	}
	return grid
}

// dilatePlains grows Plain terrain into any Wall tile with at least
// three Plain neighbours, one round at a time, reading from a snapshot
// so a round never observes its own output.
func dilatePlains(region geometry.Hexagon, kinds map[geometry.Axial]component.TerrainKind) map[geometry.Axial]component.TerrainKind {
	next := make(map[geometry.Axial]component.TerrainKind, len(kinds))
	for p, k := range kinds {
		next[p] = k
	}
	for _, p := range region.IterPoints() {
		if kinds[p] != component.TerrainWall {
			continue
		}
		plainNeighbours := 0
		for _, nb := range p.Neighbours() {
			if kinds[nb] == component.TerrainPlain {
				plainNeighbours++
			}
		}
		if plainNeighbours >= 3 {
			next[p] = component.TerrainPlain
		}
	}
	return next
}

// bridgeTiles2 computes a bridge's edge-tile span; it is a separate copy
// of the same computation in the pathfinding package's cross-room routing.
func bridgeTiles2(roomRadius int32, link component.BridgeLink) []geometry.Axial {
	edge := geometry.Hexagon{Center: geometry.Zero, Radius: roomRadius}.EdgeTiles(link.Direction)
	lo := link.OffsetStart
	hi := int32(len(edge)) - link.OffsetEnd
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

// repairConnectivity guarantees every bridge tile can reach every other
// bridge tile through walkable terrain. Bridge tiles are grouped into
// connected components via flood-fill; while more than one component
// remains, the shortest straight-line run of tiles between the nearest
// pair of components is carved to Plain (spec §4.6, §9 open question —
// resolved here as a mandatory repair, never a soft failure).
func repairConnectivity(region geometry.Hexagon, kinds map[geometry.Axial]component.TerrainKind, bridgeTiles map[geometry.Axial]bool) {
	if len(bridgeTiles) < 2 {
		return
	}

	for {
		components := connectedComponents(region, kinds, bridgeTiles)
		if len(components) <= 1 {
			return
		}
		a, b := nearestPair(components[0], components[1])
		best := geometry.Distance(a, b)
		for i := range components {
			for j := i + 1; j < len(components); j++ {
				x, y := nearestPair(components[i], components[j])
				if d := geometry.Distance(x, y); d < best {
					a, b, best = x, y, d
				}
			}
		}
		for _, p := range axialLine(a, b) {
			if kinds[p] == component.TerrainWall {
				kinds[p] = component.TerrainPlain
			}
		}
	}
}

// connectedComponents groups bridge tiles by walkable-terrain
// reachability.
func connectedComponents(region geometry.Hexagon, kinds map[geometry.Axial]component.TerrainKind, bridgeTiles map[geometry.Axial]bool) [][]geometry.Axial {
	visited := make(map[geometry.Axial]bool, len(kinds))
	var components [][]geometry.Axial

	for seed := range bridgeTiles {
		if visited[seed] {
			continue
		}
		var comp []geometry.Axial
		queue := []geometry.Axial{seed}
		visited[seed] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if bridgeTiles[cur] {
				comp = append(comp, cur)
			}
			for _, nb := range cur.Neighbours() {
				if visited[nb] || !region.Contains(nb) {
					continue
				}
				if !kinds[nb].Walkable() {
					continue
				}
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
		if len(comp) > 0 {
			components = append(components, comp)
		}
	}
	return components
}

// nearestPair returns the closest tile from each component.
func nearestPair(a, b []geometry.Axial) (geometry.Axial, geometry.Axial) {
	best := [2]geometry.Axial{a[0], b[0]}
	bestDist := geometry.Distance(a[0], b[0])
	for _, pa := range a {
		for _, pb := range b {
			if d := geometry.Distance(pa, pb); d < bestDist {
				bestDist = d
				best = [2]geometry.Axial{pa, pb}
			}
		}
	}
	return best[0], best[1]
}

// axialLine returns the tiles on the hex line from a to b, inclusive,
// via cube-coordinate linear interpolation and rounding.
func axialLine(a, b geometry.Axial) []geometry.Axial {
	n := int(geometry.Distance(a, b))
	if n == 0 {
		return []geometry.Axial{a}
	}
	out := make([]geometry.Axial, 0, n+1)
	ax, ay, az := float64(a.Q), float64(-a.Q-a.R), float64(a.R)
	bx, by, bz := float64(b.Q), float64(-b.Q-b.R), float64(b.R)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x := ax + (bx-ax)*t
		y := ay + (by-ay)*t
		z := az + (bz-az)*t
		out = append(out, cubeRound(x, y, z))
	}
	return out
}

func cubeRound(x, y, z float64) geometry.Axial {
	rx := roundF(x)
	ry := roundF(y)
	rz := roundF(z)

	dx := absF(rx - x)
	dy := absF(ry - y)
	dz := absF(rz - z)

	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return geometry.Axial{Q: int32(rx), R: int32(rz)}
}

func roundF(v float64) float64 {
	if v < 0 {
		return float64(int64(v - 0.5))
	}
	return float64(int64(v + 0.5))
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
