package ecs

import (
	"fmt"

	"github.com/caolo-sim/engine/internal/geometry"
)

// HexGrid is dense row-major storage for a single hexagon of radius R. The
// offset of (q,r) is the sum of row lengths up to r plus the column index
// adjusted for that row's left edge, per spec §4.1.
type HexGrid[V any] struct {
	region   geometry.Hexagon
	rowStart []int // cumulative offset of the first cell in each row
	rowLen   []int
	values   []V
}

func NewHexGrid[V any](region geometry.Hexagon) *HexGrid[V] {
	r := region.Radius
	rows := int(2*r + 1)
	g := &HexGrid[V]{
		region:   region,
		rowStart: make([]int, rows),
		rowLen:   make([]int, rows),
	}
	offset := 0
	for i, dr := 0, -r; dr <= r; i, dr = i+1, dr+1 {
		qMin := max32(-r, -dr-r)
		qMax := min32(r, -dr+r)
		length := int(qMax-qMin) + 1
		g.rowStart[i] = offset
		g.rowLen[i] = length
		offset += length
	}
	g.values = make([]V, offset)
	return g
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// offsetOf returns the flat index for (q,r) relative to the grid's
// center, or -1 if out of bounds.
func (g *HexGrid[V]) offsetOf(p geometry.Axial) int {
	if !g.region.Contains(p) {
		return -1
	}
	r := g.region.Radius
	dr := p.R - g.region.Center.R
	dq := p.Q - g.region.Center.Q
	rowIdx := int(dr + r)
	if rowIdx < 0 || rowIdx >= len(g.rowStart) {
		return -1
	}
	qMin := max32(-r, -dr-r)
	col := int(dq - qMin)
	if col < 0 || col >= g.rowLen[rowIdx] {
		return -1
	}
	return g.rowStart[rowIdx] + col
}

// Get returns the value at p. ok is false for an out-of-bounds access.
func (g *HexGrid[V]) Get(p geometry.Axial) (V, bool) {
	off := g.offsetOf(p)
	if off < 0 {
		var zero V
		return zero, false
	}
	return g.values[off], true
}

func (g *HexGrid[V]) GetMut(p geometry.Axial) (*V, bool) {
	off := g.offsetOf(p)
	if off < 0 {
		return nil, false
	}
	return &g.values[off], true
}

// Set writes a value at p. It panics on out-of-bounds access — a
// HexGrid's extent is fixed at construction, so a bad coordinate is a
// programming error, never a runtime condition to recover from.
func (g *HexGrid[V]) Set(p geometry.Axial, v V) {
	off := g.offsetOf(p)
	if off < 0 {
		panic(fmt.Sprintf("hexgrid: %v out of bounds for radius %d centred at %v", p, g.region.Radius, g.region.Center))
	}
	g.values[off] = v
}

func (g *HexGrid[V]) Contains(p geometry.Axial) bool {
	return g.offsetOf(p) >= 0
}

func (g *HexGrid[V]) Region() geometry.Hexagon { return g.region }

// Iter visits every cell of the hexagon in canonical row-major order.
func (g *HexGrid[V]) Iter(fn func(geometry.Axial, V) bool) {
	for _, p := range g.region.IterPoints() {
		off := g.offsetOf(p)
		if !fn(p, g.values[off]) {
			return
		}
	}
}

// Dense returns a copy of the grid's backing storage in the same
// row-major offset order Iter visits — the canonical in-room coordinate
// iteration order spec §6.2 requires a terrain snapshot to be indexed
// by.
func (g *HexGrid[V]) Dense() []V {
	out := make([]V, len(g.values))
	copy(out, g.values)
	return out
}
