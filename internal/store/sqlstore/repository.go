package sqlstore

import (
	"context"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
	"gorm.io/gorm"
)

type repository[T any, PT interface {
	*T
	models.Record
}] struct {
	s *Store
	// check runs inside the write transaction before the row is saved.
	check func(tx *gorm.DB, item *T) error
}

func (r *repository[T, PT]) Create(ctx context.Context, item *T) error {
	PT(item).PrepareCreate(r.s.now())
	err := r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.check != nil {
			if err := r.check(tx, item); err != nil {
				return err
			}
		}
		return tx.Create(item).Error
	})
	return translate("create", err)
}

func (r *repository[T, PT]) List(ctx context.Context) ([]T, error) {
	var items []T
	err := r.s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&items).Error
	if err != nil {
		return nil, translate("list", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *repository[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.s.db.WithContext(ctx).Where("id = ?", id).Take(&item).Error; err != nil {
		return nil, translate("get", err)
	}
	return &item, nil
}

func (r *repository[T, PT]) Update(ctx context.Context, id string, apply func(*T)) (*T, error) {
	var out T
	err := r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev T
		if err := forUpdate(tx).Where("id = ?", id).Take(&prev).Error; err != nil {
			return err
		}
		next := prev
		apply(&next)
		PT(&next).SetIdentity(PT(&prev).GetID(), PT(&prev).GetCreatedAt())
		PT(&next).PrepareUpdate(r.s.now())
		if r.check != nil {
			if err := r.check(tx, &next); err != nil {
				return err
			}
		}
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, translate("update", err)
	}
	return &out, nil
}

func (r *repository[T, PT]) Delete(ctx context.Context, id string) error {
	res := r.s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type postRepository struct {
	repository[models.BlogPost, *models.BlogPost]
}

func (r *postRepository) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	posts := []models.BlogPost{}
	err := r.s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, translate("list published", err)
	}
	return posts, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.s.db.WithContext(ctx).Where("slug = ?", slug).Take(&post).Error; err != nil {
		return nil, translate("get by slug", err)
	}
	return &post, nil
}

// checkSlug rejects a slug already held by another post. The unique index
// backs this up under concurrent writers.
func checkSlug(tx *gorm.DB, post *models.BlogPost) error {
	var n int64
	err := tx.Model(&models.BlogPost{}).
		Where("slug = ? AND id <> ?", post.Slug, post.ID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return store.ErrConflict
	}
	return nil
}
