package memory

import (
	"context"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

type repository[T any, PT interface {
	*T
	models.Record
}] struct {
	s   *Store
	col *collection[T]
	// check rejects an item that would break a uniqueness rule.
	check func(item *T) error
}

func (r *repository[T, PT]) Create(ctx context.Context, item *T) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap("create", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	PT(item).PrepareCreate(r.s.now())
	id := PT(item).GetID()
	if _, exists := r.col.get(id); exists {
		return store.ErrConflict
	}
	if r.check != nil {
		if err := r.check(item); err != nil {
			return err
		}
	}
	r.col.put(id, *item, r.s.nextSeq())
	return r.s.commit("create", func() { r.col.remove(id) })
}

func (r *repository[T, PT]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("list", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.col.list(), nil
}

func (r *repository[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("get", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.col.get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (r *repository[T, PT]) Update(ctx context.Context, id string, apply func(*T)) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("update", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.col.get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	next := r.col.clone(prev)
	apply(&next)
	keepIdentity[T, PT](&prev, &next)
	PT(&next).PrepareUpdate(r.s.now())
	if r.check != nil {
		if err := r.check(&next); err != nil {
			return nil, err
		}
	}
	r.col.replace(id, next)
	if err := r.s.commit("update", func() { r.col.replace(id, prev) }); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *repository[T, PT]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap("delete", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	removed, ok := r.col.remove(id)
	if !ok {
		return store.ErrNotFound
	}
	return r.s.commit("delete", func() { r.col.restore(id, removed) })
}

// keepIdentity copies id and createdAt from prev onto next.
func keepIdentity[T any, PT interface {
	*T
	models.Record
}](prev, next *T) {
	p := PT(prev)
	PT(next).SetIdentity(p.GetID(), p.GetCreatedAt())
}

type postRepository struct {
	repository[models.BlogPost, *models.BlogPost]
}

func (r *postRepository) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("list published", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.col.filter(func(p models.BlogPost) bool { return p.Published }), nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("get by slug", err)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *models.BlogPost
	r.col.each(func(p models.BlogPost) bool {
		if p.Slug == slug {
			post := clonePost(p)
			found = &post
			return false
		}
		return true
	})
	if found == nil {
		return nil, store.ErrNotFound
	}
	return found, nil
}

func (s *Store) checkSlug(post *models.BlogPost) error {
	var clash bool
	s.posts.each(func(p models.BlogPost) bool {
		if p.Slug == post.Slug && p.ID != post.ID {
			clash = true
			return false
		}
		return true
	})
	if clash {
		return store.ErrConflict
	}
	return nil
}
