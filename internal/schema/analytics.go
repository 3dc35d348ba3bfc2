package schema

import "github.com/folio-space/core/internal/models"

// CreateAnalyticsEvent is one visitor event sent by the site.
type CreateAnalyticsEvent struct {
	EventType string `json:"eventType" validate:"required,max=64"`
	Page      string `json:"page"      validate:"required,max=512"`
	Section   string `json:"section"   validate:"max=191"`
	VisitorID string `json:"visitorId" validate:"max=191"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
}

func (p CreateAnalyticsEvent) Model() models.AnalyticsEvent {
	return models.AnalyticsEvent{
		EventType: p.EventType,
		Page:      p.Page,
		Section:   p.Section,
		VisitorID: p.VisitorID,
		UserAgent: p.UserAgent,
		Referrer:  p.Referrer,
	}
}
