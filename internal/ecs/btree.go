package ecs

import "sort"

// BTreeTable is an ordered map keyed by an arbitrary comparable key,
// implemented as a sorted slice with binary-searched insert. It is the
// backend for infrequent-write, large- or compound-keyed tables: resource
// rows keyed by EntityId but accessed by kind, user-scoped room lists, and
// logs keyed by (EntityId, tick). O(log n) lookup, O(n) insert of a new
// key (amortised rare relative to dense-table writes).
type BTreeTable[K comparable, V any] struct {
	less    func(a, b K) bool
	keys    []K
	values  []V
	indexOf map[K]int
}

func NewBTreeTable[K comparable, V any](less func(a, b K) bool) *BTreeTable[K, V] {
	return &BTreeTable[K, V]{
		less:    less,
		indexOf: make(map[K]int, 64),
	}
}

func (t *BTreeTable[K, V]) Get(key K) (V, bool) {
	idx, ok := t.indexOf[key]
	if !ok {
		var zero V
		return zero, false
	}
	return t.values[idx], true
}

func (t *BTreeTable[K, V]) GetMut(key K) (*V, bool) {
	idx, ok := t.indexOf[key]
	if !ok {
		return nil, false
	}
	return &t.values[idx], true
}

func (t *BTreeTable[K, V]) InsertOrUpdate(key K, value V) {
	if idx, ok := t.indexOf[key]; ok {
		t.values[idx] = value
		return
	}
	pos := sort.Search(len(t.keys), func(i int) bool { return !t.less(t.keys[i], key) })
	t.keys = append(t.keys, key)
	copy(t.keys[pos+1:], t.keys[pos:len(t.keys)-1])
	t.keys[pos] = key
	t.values = append(t.values, value)
	copy(t.values[pos+1:], t.values[pos:len(t.values)-1])
	t.values[pos] = value
	for i := pos; i < len(t.keys); i++ {
		t.indexOf[t.keys[i]] = i
	}
}

func (t *BTreeTable[K, V]) Delete(key K) (V, bool) {
	idx, ok := t.indexOf[key]
	if !ok {
		var zero V
		return zero, false
	}
	v := t.values[idx]
	t.keys = append(t.keys[:idx], t.keys[idx+1:]...)
	t.values = append(t.values[:idx], t.values[idx+1:]...)
	delete(t.indexOf, key)
	for i := idx; i < len(t.keys); i++ {
		t.indexOf[t.keys[i]] = i
	}
	return v, true
}

func (t *BTreeTable[K, V]) Contains(key K) bool {
	_, ok := t.indexOf[key]
	return ok
}

func (t *BTreeTable[K, V]) Len() int { return len(t.keys) }

// Iter visits rows in ascending key order.
func (t *BTreeTable[K, V]) Iter(fn func(K, V) bool) {
	for i, k := range t.keys {
		if !fn(k, t.values[i]) {
			return
		}
	}
}

func (t *BTreeTable[K, V]) IterMut(fn func(K, *V) bool) {
	for i := range t.keys {
		if !fn(t.keys[i], &t.values[i]) {
			return
		}
	}
}

// RemoveEntityKeyed removes every row whose key satisfies the predicate
// matches. BTreeTable itself doesn't know its key shape, so callers (e.g.
// LogEntry keyed by (EntityId,tick)) pass the predicate directly instead of
// implementing Removable; see World.FlushDestroyQueue and system.LogTrim.
func (t *BTreeTable[K, V]) RemoveEntityKeyed(matches func(K) bool) {
	keep := t.keys[:0]
	keepV := t.values[:0]
	for i, k := range t.keys {
		if matches(k) {
			delete(t.indexOf, k)
			continue
		}
		keep = append(keep, k)
		keepV = append(keepV, t.values[i])
	}
	t.keys = keep
	t.values = keepV
	for i, k := range t.keys {
		t.indexOf[k] = i
	}
}
