package memory

import (
	"context"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

type singleton[T any, PT interface {
	*T
	models.Singleton
}] struct {
	s    *Store
	key  string
	slot **T
}

func (r *singleton[T, PT]) Get(ctx context.Context) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("get "+r.key, err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if *r.slot == nil {
		return nil, store.ErrNotFound
	}
	out := **r.slot
	return &out, nil
}

func (r *singleton[T, PT]) Upsert(ctx context.Context, apply func(*T)) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("upsert "+r.key, err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev := *r.slot
	var next T
	if prev != nil {
		next = *prev
	}
	apply(&next)
	PT(&next).Stamp(r.key, r.s.now())

	stored := next
	*r.slot = &stored
	if err := r.s.commit("upsert "+r.key, func() { *r.slot = prev }); err != nil {
		return nil, err
	}
	return &next, nil
}
