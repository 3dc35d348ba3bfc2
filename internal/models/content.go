package models

// Fixed keys of the singleton content rows.
const (
	HomeContentKey  = "home"
	AboutContentKey = "about"
)

// HomeContent holds the editable hero copy.
type HomeContent struct {
	SingletonBase
	HeroTitle    string `json:"heroTitle,omitempty"`
	HeroSubtitle string `json:"heroSubtitle,omitempty"`
	CtaText      string `json:"ctaText,omitempty"`
}

func (HomeContent) TableName() string { return "home_content" }

// AboutContent holds the editable about section copy.
type AboutContent struct {
	SingletonBase
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

func (AboutContent) TableName() string { return "about_content" }
