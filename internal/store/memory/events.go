package memory

import (
	"context"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

type eventLog struct {
	s *Store
}

func (l *eventLog) Append(ctx context.Context, event *models.AnalyticsEvent) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap("append event", err)
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	event.PrepareCreate(l.s.now())
	n := len(l.s.events)
	l.s.events = append(l.s.events, *event)
	return l.s.commit("append event", func() { l.s.events = l.s.events[:n] })
}

// Recent walks the log backwards; appends arrive in time order.
func (l *eventLog) Recent(ctx context.Context, limit int) ([]models.AnalyticsEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("recent events", err)
	}
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	if limit <= 0 || limit > len(l.s.events) {
		limit = len(l.s.events)
	}
	out := make([]models.AnalyticsEvent, 0, limit)
	for i := len(l.s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.s.events[i])
	}
	return out, nil
}

func (l *eventLog) Summarize(ctx context.Context) (store.Summary, error) {
	if err := ctx.Err(); err != nil {
		return store.Summary{}, store.Wrap("summarize", err)
	}
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	return Summarize(l.s.events), nil
}

func (l *eventLog) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, store.Wrap("prune events", err)
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	prev := l.s.events
	kept := make([]models.AnalyticsEvent, 0, len(prev))
	for _, e := range prev {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	removed := int64(len(prev) - len(kept))
	if removed == 0 {
		return 0, nil
	}
	l.s.events = kept
	if err := l.s.commit("prune events", func() { l.s.events = prev }); err != nil {
		return 0, err
	}
	return removed, nil
}

// Summarize folds events into totals in one pass.
func Summarize(events []models.AnalyticsEvent) store.Summary {
	sum := store.NewSummary()
	visitors := make(map[string]struct{})
	for _, e := range events {
		sum.TotalViews++
		if e.VisitorID != "" {
			visitors[e.VisitorID] = struct{}{}
		}
		if e.Section != "" {
			sum.SectionViews[e.Section]++
		}
		sum.PageViews[e.Page]++
	}
	sum.UniqueVisitors = int64(len(visitors))
	return sum
}
