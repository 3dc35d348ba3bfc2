// Package store defines the persistence contract shared by the memory and
// SQL backends.
package store

import (
	"context"
	"time"

	"github.com/folio-space/core/internal/models"
)

// Repository is CRUD over one collection entity. List is newest first.
type Repository[T any] interface {
	Create(ctx context.Context, item *T) error
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	// Update loads the row, applies the change and writes it back atomically.
	// Identity and creation time are preserved whatever apply does.
	Update(ctx context.Context, id string, apply func(*T)) (*T, error)
	Delete(ctx context.Context, id string) error
}

// PostRepository adds the public blog lookups. Slugs are unique.
type PostRepository interface {
	Repository[models.BlogPost]
	ListPublished(ctx context.Context) ([]models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

// Singleton holds at most one row of a content kind.
type Singleton[T any] interface {
	Get(ctx context.Context) (*T, error)
	// Upsert creates the row when absent or applies the change in place, as
	// one atomic step.
	Upsert(ctx context.Context, apply func(*T)) (*T, error)
}

// Summary aggregates the analytics event log.
type Summary struct {
	TotalViews     int64            `json:"totalViews"`
	UniqueVisitors int64            `json:"uniqueVisitors"`
	SectionViews   map[string]int64 `json:"sectionViews"`
	PageViews      map[string]int64 `json:"pageViews"`
}

// EventLog is the append-only analytics log.
type EventLog interface {
	Append(ctx context.Context, event *models.AnalyticsEvent) error
	Recent(ctx context.Context, limit int) ([]models.AnalyticsEvent, error)
	Summarize(ctx context.Context) (Summary, error)
	// Prune drops events created before cutoff and returns how many went.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// Store is the full persistence surface used by the API.
type Store interface {
	Messages() Repository[models.ContactMessage]
	Posts() PostRepository
	Skills() Repository[models.Skill]
	Projects() Repository[models.Project]
	Certificates() Repository[models.Certificate]
	Home() Singleton[models.HomeContent]
	About() Singleton[models.AboutContent]
	Events() EventLog
	Ping(ctx context.Context) error
	Close() error
}

// NewSummary returns a zero summary with non-nil maps.
func NewSummary() Summary {
	return Summary{
		SectionViews: map[string]int64{},
		PageViews:    map[string]int64{},
	}
}
