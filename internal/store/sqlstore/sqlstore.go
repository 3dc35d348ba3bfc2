// Package sqlstore implements store.Store on gorm. The dialect is whatever
// the *gorm.DB was opened with.
package sqlstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Options struct {
	Now func() time.Time
}

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB, opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, now: now}
}

// DB exposes the underlying handle for migrations and health checks.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Messages() store.Repository[models.ContactMessage] {
	return &repository[models.ContactMessage, *models.ContactMessage]{s: s}
}

func (s *Store) Posts() store.PostRepository {
	return &postRepository{
		repository: repository[models.BlogPost, *models.BlogPost]{s: s, check: checkSlug},
	}
}

func (s *Store) Skills() store.Repository[models.Skill] {
	return &repository[models.Skill, *models.Skill]{s: s}
}

func (s *Store) Projects() store.Repository[models.Project] {
	return &repository[models.Project, *models.Project]{s: s}
}

func (s *Store) Certificates() store.Repository[models.Certificate] {
	return &repository[models.Certificate, *models.Certificate]{s: s}
}

func (s *Store) Home() store.Singleton[models.HomeContent] {
	return &singleton[models.HomeContent, *models.HomeContent]{s: s, key: models.HomeContentKey}
}

func (s *Store) About() store.Singleton[models.AboutContent] {
	return &singleton[models.AboutContent, *models.AboutContent]{s: s, key: models.AboutContentKey}
}

func (s *Store) Events() store.EventLog {
	return &eventLog{s: s}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return store.Wrap("ping", err)
	}
	return store.Wrap("ping", sqlDB.PingContext(ctx))
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return store.Wrap("close", err)
	}
	return store.Wrap("close", sqlDB.Close())
}

// forUpdate adds a row lock where the dialect has one. SQLite serializes
// writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// translate maps gorm errors onto the store taxonomy.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isDuplicate(err):
		return store.ErrConflict
	}
	return store.Wrap(op, err)
}

// isDuplicate catches unique violations from drivers that do not translate.
func isDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
