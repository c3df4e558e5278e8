package geometry

// Hexagon describes a hexagonal region of a given radius centred on an
// axial coordinate. Radius 0 is a single tile; radius R holds
// 3*R*(R+1)+1 tiles (the centred hex-number sequence).
type Hexagon struct {
	Center Axial
	Radius int32
}

// FromRadius builds a Hexagon centred on the origin.
func FromRadius(radius int32) Hexagon {
	return Hexagon{Center: Zero, Radius: radius}
}

// CellCount returns the number of tiles covered by the hexagon.
func (h Hexagon) CellCount() int {
	r := int64(h.Radius)
	return int(3*r*(r+1) + 1)
}

// Contains reports whether p lies within the hexagon.
func (h Hexagon) Contains(p Axial) bool {
	return Distance(h.Center, p) <= h.Radius
}

// IterPoints returns every axial coordinate covered by the hexagon, in
// row-major (r then q) order — the canonical in-room iteration order used
// by terrain streaming (spec §6.2).
func (h Hexagon) IterPoints() []Axial {
	out := make([]Axial, 0, h.CellCount())
	r := h.Radius
	for dr := -r; dr <= r; dr++ {
		qMin := max32(-r, -dr-r)
		qMax := min32(r, -dr+r)
		for dq := qMin; dq <= qMax; dq++ {
			out = append(out, Axial{Q: h.Center.Q + dq, R: h.Center.R + dr})
		}
	}
	return out
}

// EdgeTiles returns the boundary tiles on the side of the hexagon facing
// direction dir, in row-major order (consistent for a given radius,
// which is all the map generator's bridge offsets (spec §4.6) need). A
// tile p belongs to the edge facing dir when p is inside the hexagon but
// its neighbour in that direction is not.
func (h Hexagon) EdgeTiles(dir int) []Axial {
	var out []Axial
	for _, p := range h.IterPoints() {
		if !h.Contains(p.Add(Directions[dir%6])) {
			out = append(out, p)
		}
	}
	return out
}

// BoundingBox returns the inclusive axis-aligned q/r bounds covering the
// hexagon (used by MortonTable range queries and diamond-square sizing).
func (h Hexagon) BoundingBox() (minQ, minR, maxQ, maxR int32) {
	return h.Center.Q - h.Radius, h.Center.R - h.Radius, h.Center.Q + h.Radius, h.Center.R + h.Radius
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
