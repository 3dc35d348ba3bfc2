package sqlstore

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// singleton keeps one row under a fixed primary key. Upsert writes with
// INSERT ... ON CONFLICT (id) DO UPDATE so two racing writers still leave a
// single row.
type singleton[T any, PT interface {
	*T
	models.Singleton
}] struct {
	s   *Store
	key string
}

func (r *singleton[T, PT]) Get(ctx context.Context) (*T, error) {
	var item T
	if err := r.s.db.WithContext(ctx).Where("id = ?", r.key).Take(&item).Error; err != nil {
		return nil, translate("get "+r.key, err)
	}
	return &item, nil
}

func (r *singleton[T, PT]) Upsert(ctx context.Context, apply func(*T)) (*T, error) {
	var out T
	err := r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		err := forUpdate(tx).Where("id = ?", r.key).Take(&current).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		apply(&current)
		PT(&current).Stamp(r.key, r.s.now())
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&current).Error; err != nil {
			return err
		}
		out = current
		return nil
	})
	if err != nil {
		return nil, translate("upsert "+r.key, err)
	}
	return &out, nil
}
