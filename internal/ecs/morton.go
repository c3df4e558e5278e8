package ecs

import (
	"sort"

	"github.com/caolo-sim/engine/internal/geometry"
)

// MortonKey interleaves the bits of an (q,r) pair shifted into unsigned
// 16-bit halves, yielding a z-order curve over the plane (spec §4.1,
// GLOSSARY "Morton key").
type MortonKey uint32

const mortonBias = 1 << 15 // shift signed int32 q/r into unsigned 16-bit range

func toUnsigned16(v int32) uint32 {
	u := uint32(v + mortonBias)
	if v+mortonBias < 0 {
		u = 0
	}
	if v+mortonBias > 0xFFFF {
		u = 0xFFFF
	}
	return u & 0xFFFF
}

func spreadBits(v uint32) uint32 {
	v &= 0x0000FFFF
	v = (v | (v << 8)) & 0x00FF00FF
	v = (v | (v << 4)) & 0x0F0F0F0F
	v = (v | (v << 2)) & 0x33333333
	v = (v | (v << 1)) & 0x55555555
	return v
}

// EncodeMorton computes the Morton key for an axial coordinate.
func EncodeMorton(a geometry.Axial) MortonKey {
	q := spreadBits(toUnsigned16(a.Q))
	r := spreadBits(toUnsigned16(a.R))
	return MortonKey(q | (r << 1))
}

const skiplistSize = 16

// MortonTable is a sparse set of (Axial, V) rows sorted by Morton key, with
// a 16-entry skiplist of sampled keys accelerating range scans (spec
// §4.1's MortonTable contract).
type MortonTable[V any] struct {
	keys      []MortonKey
	positions []geometry.Axial
	values    []V
	indexOf   map[geometry.Axial]int
	skiplist  []MortonKey
}

func NewMortonTable[V any]() *MortonTable[V] {
	return &MortonTable[V]{
		indexOf: make(map[geometry.Axial]int, 256),
	}
}

func (t *MortonTable[V]) Get(pos geometry.Axial) (V, bool) {
	idx, ok := t.indexOf[pos]
	if !ok {
		var zero V
		return zero, false
	}
	return t.values[idx], true
}

func (t *MortonTable[V]) GetMut(pos geometry.Axial) (*V, bool) {
	idx, ok := t.indexOf[pos]
	if !ok {
		return nil, false
	}
	return &t.values[idx], true
}

func (t *MortonTable[V]) Contains(pos geometry.Axial) bool {
	_, ok := t.indexOf[pos]
	return ok
}

func (t *MortonTable[V]) Len() int { return len(t.keys) }

// InsertOrUpdate inserts (or overwrites, per the DuplicatedKey contract) a
// row, preserving Morton-sorted order. O(n) amortised, as specified.
func (t *MortonTable[V]) InsertOrUpdate(pos geometry.Axial, value V) {
	if idx, ok := t.indexOf[pos]; ok {
		t.values[idx] = value
		return
	}
	key := EncodeMorton(pos)
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i] >= key })
	t.keys = append(t.keys, 0)
	copy(t.keys[i+1:], t.keys[i:len(t.keys)-1])
	t.keys[i] = key

	t.positions = append(t.positions, geometry.Axial{})
	copy(t.positions[i+1:], t.positions[i:len(t.positions)-1])
	t.positions[i] = pos

	t.values = append(t.values, value)
	copy(t.values[i+1:], t.values[i:len(t.values)-1])
	t.values[i] = value

	for j := i; j < len(t.keys); j++ {
		t.indexOf[t.positions[j]] = j
	}
	t.rebuildSkiplist()
}

func (t *MortonTable[V]) Delete(pos geometry.Axial) (V, bool) {
	idx, ok := t.indexOf[pos]
	if !ok {
		var zero V
		return zero, false
	}
	v := t.values[idx]
	t.keys = append(t.keys[:idx], t.keys[idx+1:]...)
	t.positions = append(t.positions[:idx], t.positions[idx+1:]...)
	t.values = append(t.values[:idx], t.values[idx+1:]...)
	delete(t.indexOf, pos)
	for j := idx; j < len(t.keys); j++ {
		t.indexOf[t.positions[j]] = j
	}
	t.rebuildSkiplist()
	return v, true
}

func (t *MortonTable[V]) RemoveEntityAt(pos geometry.Axial) { t.Delete(pos) }

// rebuildSkiplist regenerates the 16 equally spaced sample keys. Rebuild
// is amortised O(1) touches per insert because it runs once per mutating
// call over an already-sorted key slice.
func (t *MortonTable[V]) rebuildSkiplist() {
	n := len(t.keys)
	if n == 0 {
		t.skiplist = nil
		return
	}
	size := skiplistSize
	if size > n {
		size = n
	}
	t.skiplist = make([]MortonKey, size)
	step := n / size
	if step == 0 {
		step = 1
	}
	for i := 0; i < size; i++ {
		idx := i * step
		if idx >= n {
			idx = n - 1
		}
		t.skiplist[i] = t.keys[idx]
	}
}

// partitionStart narrows the search to the first skiplist partition whose
// sampled key could contain lo.
func (t *MortonTable[V]) partitionStart(lo MortonKey) int {
	if len(t.skiplist) == 0 {
		return 0
	}
	part := sort.Search(len(t.skiplist), func(i int) bool { return t.skiplist[i] >= lo })
	if part == 0 {
		return 0
	}
	step := len(t.keys) / len(t.skiplist)
	if step == 0 {
		step = 1
	}
	return (part - 1) * step
}

// Iter visits rows in Morton order.
func (t *MortonTable[V]) Iter(fn func(geometry.Axial, V) bool) {
	for i, pos := range t.positions {
		if !fn(pos, t.values[i]) {
			return
		}
	}
}

func (t *MortonTable[V]) IterMut(fn func(geometry.Axial, *V) bool) {
	for i := range t.positions {
		if !fn(t.positions[i], &t.values[i]) {
			return
		}
	}
}

// FindByRange returns all rows within radius hex-distance of center,
// computing the Morton interval covering the bounding box and filtering
// the scanned interval by exact hex distance (spec §4.1).
func (t *MortonTable[V]) FindByRange(center geometry.Axial, radius int32) []geometry.Axial {
	region := geometry.Hexagon{Center: center, Radius: radius}
	minQ, minR, maxQ, maxR := region.BoundingBox()
	lo := EncodeMorton(geometry.Axial{Q: minQ, R: minR})
	hi := EncodeMorton(geometry.Axial{Q: maxQ, R: maxR})
	if hi < lo {
		lo, hi = hi, lo
	}
	start := t.partitionStart(lo)

	// Z-order curves aren't key-contiguous over an arbitrary bounding box,
	// so correctness comes from the per-point filter below; the skiplist
	// partition only skips the prefix that is provably below lo.
	out := make([]geometry.Axial, 0, 16)
	for i := start; i < len(t.keys); i++ {
		p := t.positions[i]
		if p.Q < minQ || p.Q > maxQ || p.R < minR || p.R > maxR {
			continue
		}
		if geometry.Distance(center, p) <= radius {
			out = append(out, p)
		}
	}
	return out
}
