package models

// BlogPost is a markdown article. Only published posts are visible publicly.
type BlogPost struct {
	TrackedBase
	Title      string      `json:"title"                gorm:"size:255;not null"`
	Slug       string      `json:"slug"                 gorm:"size:191;not null;uniqueIndex"`
	Excerpt    string      `json:"excerpt"              gorm:"not null"`
	Content    string      `json:"content"              gorm:"not null"`
	CoverImage string      `json:"coverImage,omitempty"`
	Tags       StringArray `json:"tags"                 gorm:"type:text"`
	Published  bool        `json:"published"            gorm:"not null;default:false;index"`
}

func (BlogPost) TableName() string { return "blog_posts" }
