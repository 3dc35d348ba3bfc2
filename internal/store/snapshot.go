package store

import (
	"context"
	"errors"
	"time"

	"github.com/folio-space/core/internal/models"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is a full copy of the content. Events are only filled by the
// memory backend's own file.
type Snapshot struct {
	Version      int                     `json:"version"`
	ExportedAt   time.Time               `json:"exportedAt"`
	Messages     []models.ContactMessage `json:"messages"`
	Posts        []models.BlogPost       `json:"posts"`
	Skills       []models.Skill          `json:"skills"`
	Projects     []models.Project        `json:"projects"`
	Certificates []models.Certificate    `json:"certificates"`
	Home         *models.HomeContent     `json:"home,omitempty"`
	About        *models.AboutContent    `json:"about,omitempty"`
	Events       []models.AnalyticsEvent `json:"events,omitempty"`
}

// Export reads every content collection of s into one snapshot.
func Export(ctx context.Context, s Store, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, ExportedAt: now}
	var err error
	if snap.Messages, err = s.Messages().List(ctx); err != nil {
		return nil, err
	}
	if snap.Posts, err = s.Posts().List(ctx); err != nil {
		return nil, err
	}
	if snap.Skills, err = s.Skills().List(ctx); err != nil {
		return nil, err
	}
	if snap.Projects, err = s.Projects().List(ctx); err != nil {
		return nil, err
	}
	if snap.Certificates, err = s.Certificates().List(ctx); err != nil {
		return nil, err
	}
	if snap.Home, err = optional(s.Home().Get(ctx)); err != nil {
		return nil, err
	}
	if snap.About, err = optional(s.About().Get(ctx)); err != nil {
		return nil, err
	}
	return snap, nil
}

func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return v, err
}
