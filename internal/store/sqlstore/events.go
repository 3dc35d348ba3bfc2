package sqlstore

import (
	"context"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

type eventLog struct {
	s *Store
}

type bucket struct {
	Label string
	Total int64
}

func (l *eventLog) Append(ctx context.Context, event *models.AnalyticsEvent) error {
	event.PrepareCreate(l.s.now())
	return translate("append event", l.s.db.WithContext(ctx).Create(event).Error)
}

func (l *eventLog) Recent(ctx context.Context, limit int) ([]models.AnalyticsEvent, error) {
	events := []models.AnalyticsEvent{}
	q := l.s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, translate("recent events", err)
	}
	return events, nil
}

// Summarize aggregates in the database. All four reads share one
// transaction so the numbers describe the same log.
func (l *eventLog) Summarize(ctx context.Context) (store.Summary, error) {
	sum := store.NewSummary()
	tx := l.s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return sum, translate("summarize", tx.Error)
	}
	defer tx.Rollback()

	model := &models.AnalyticsEvent{}
	if err := tx.Model(model).Count(&sum.TotalViews).Error; err != nil {
		return sum, translate("summarize", err)
	}
	if err := tx.Model(model).
		Where("visitor_id IS NOT NULL AND visitor_id <> ''").
		Distinct("visitor_id").
		Count(&sum.UniqueVisitors).Error; err != nil {
		return sum, translate("summarize", err)
	}

	var sections []bucket
	if err := tx.Model(model).
		Select("section AS label, COUNT(*) AS total").
		Where("section IS NOT NULL AND section <> ''").
		Group("section").
		Scan(&sections).Error; err != nil {
		return sum, translate("summarize", err)
	}
	for _, b := range sections {
		sum.SectionViews[b.Label] = b.Total
	}

	var pages []bucket
	if err := tx.Model(model).
		Select("page AS label, COUNT(*) AS total").
		Group("page").
		Scan(&pages).Error; err != nil {
		return sum, translate("summarize", err)
	}
	for _, b := range pages {
		sum.PageViews[b.Label] = b.Total
	}
	return sum, nil
}

func (l *eventLog) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res := l.s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AnalyticsEvent{})
	if res.Error != nil {
		return 0, translate("prune events", res.Error)
	}
	return res.RowsAffected, nil
}
