package models

// Analytics event types sent by the site.
const (
	EventPageView    = "page_view"
	EventSectionView = "section_view"
)

// AnalyticsEvent is one append-only visitor event.
type AnalyticsEvent struct {
	Base
	EventType string `json:"eventType"           gorm:"size:64;not null"`
	Page      string `json:"page"                gorm:"size:512;not null"`
	Section   string `json:"section,omitempty"   gorm:"size:191"`
	VisitorID string `json:"visitorId,omitempty" gorm:"size:191"`
	UserAgent string `json:"userAgent,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
}

func (AnalyticsEvent) TableName() string { return "analytics_events" }
