package memory

import (
	"sort"
	"time"
)

type entry[T any] struct {
	item T
	seq  uint64
}

// collection is an id-keyed map. Callers hold the store mutex.
type collection[T any] struct {
	items map[string]entry[T]
	clone func(T) T
}

func newCollection[T any](clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{items: make(map[string]entry[T]), clone: clone}
}

func (c *collection[T]) get(id string) (T, bool) {
	e, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(e.item), true
}

func (c *collection[T]) put(id string, item T, seq uint64) {
	c.items[id] = entry[T]{item: c.clone(item), seq: seq}
}

func (c *collection[T]) replace(id string, item T) {
	e := c.items[id]
	e.item = c.clone(item)
	c.items[id] = e
}

func (c *collection[T]) remove(id string) (entry[T], bool) {
	e, ok := c.items[id]
	if ok {
		delete(c.items, id)
	}
	return e, ok
}

func (c *collection[T]) restore(id string, e entry[T]) {
	c.items[id] = e
}

func (c *collection[T]) each(fn func(T) bool) {
	for _, e := range c.items {
		if !fn(e.item) {
			return
		}
	}
}

// list returns copies ordered newest first by createdAt, later inserts first
// on ties.
func (c *collection[T]) list() []T {
	return c.filter(nil)
}

func (c *collection[T]) filter(keep func(T) bool) []T {
	entries := make([]entry[T], 0, len(c.items))
	for _, e := range c.items {
		if keep == nil || keep(e.item) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		ci, cj := createdAt(entries[i].item), createdAt(entries[j].item)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return entries[i].seq > entries[j].seq
	})
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = c.clone(e.item)
	}
	return out
}

type created interface {
	GetCreatedAt() time.Time
}

func createdAt[T any](item T) time.Time {
	if c, ok := any(&item).(created); ok {
		return c.GetCreatedAt()
	}
	return time.Time{}
}
