package models

// All lists every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&ContactMessage{},
		&BlogPost{},
		&AnalyticsEvent{},
		&HomeContent{},
		&AboutContent{},
		&Skill{},
		&Project{},
		&Certificate{},
	}
}
