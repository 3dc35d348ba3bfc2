package models

// Project is a portfolio entry.
type Project struct {
	TrackedBase
	Title       string      `json:"title"               gorm:"size:255;not null"`
	Description string      `json:"description"         gorm:"not null"`
	Image       string      `json:"image,omitempty"`
	TechStack   StringArray `json:"techStack"           gorm:"type:text"`
	Category    string      `json:"category,omitempty"  gorm:"size:64"`
	GithubURL   string      `json:"githubUrl,omitempty"`
	LiveURL     string      `json:"liveUrl,omitempty"`
	Featured    bool        `json:"featured"            gorm:"not null;default:false"`
}

func (Project) TableName() string { return "projects" }
