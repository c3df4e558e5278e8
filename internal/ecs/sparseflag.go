package ecs

import "sort"

// Unit is the zero-sized sentinel value SparseFlagTable.Get returns.
type Unit struct{}

// SparseFlagTable is a sorted vector of EntityIds used for presence-only
// "is-a" markers (Bot, Structure). Membership test is a binary search;
// insert/delete keep the vector sorted.
type SparseFlagTable struct {
	ids []EntityId
}

func NewSparseFlagTable() *SparseFlagTable {
	return &SparseFlagTable{}
}

func (t *SparseFlagTable) search(id EntityId) (int, bool) {
	i := sort.Search(len(t.ids), func(i int) bool { return t.ids[i] >= id })
	return i, i < len(t.ids) && t.ids[i] == id
}

func (t *SparseFlagTable) Get(id EntityId) (Unit, bool) {
	_, ok := t.search(id)
	return Unit{}, ok
}

func (t *SparseFlagTable) Contains(id EntityId) bool {
	_, ok := t.search(id)
	return ok
}

func (t *SparseFlagTable) InsertOrUpdate(id EntityId, _ Unit) {
	i, ok := t.search(id)
	if ok {
		return
	}
	t.ids = append(t.ids, 0)
	copy(t.ids[i+1:], t.ids[i:len(t.ids)-1])
	t.ids[i] = id
}

func (t *SparseFlagTable) Delete(id EntityId) (Unit, bool) {
	i, ok := t.search(id)
	if !ok {
		return Unit{}, false
	}
	t.ids = append(t.ids[:i], t.ids[i+1:]...)
	return Unit{}, true
}

func (t *SparseFlagTable) RemoveEntity(id EntityId) { t.Delete(id) }

func (t *SparseFlagTable) Len() int { return len(t.ids) }

func (t *SparseFlagTable) Iter(fn func(EntityId, Unit) bool) {
	for _, id := range t.ids {
		if !fn(id, Unit{}) {
			return
		}
	}
}
