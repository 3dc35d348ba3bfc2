package schema

import "github.com/folio-space/core/internal/models"

// HomeContentInput edits the hero copy. Every field is optional.
type HomeContentInput struct {
	HeroTitle    *string `json:"heroTitle"    validate:"omitempty,max=255"`
	HeroSubtitle *string `json:"heroSubtitle" validate:"omitempty,max=1000"`
	CtaText      *string `json:"ctaText"      validate:"omitempty,max=255"`
}

func (p HomeContentInput) Apply(home *models.HomeContent) {
	if p.HeroTitle != nil {
		home.HeroTitle = *p.HeroTitle
	}
	if p.HeroSubtitle != nil {
		home.HeroSubtitle = *p.HeroSubtitle
	}
	if p.CtaText != nil {
		home.CtaText = *p.CtaText
	}
}

// AboutContentInput edits the about section. Every field is optional.
type AboutContentInput struct {
	Title       *string `json:"title"       validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Bio         *string `json:"bio"`
}

func (p AboutContentInput) Apply(about *models.AboutContent) {
	if p.Title != nil {
		about.Title = *p.Title
	}
	if p.Description != nil {
		about.Description = *p.Description
	}
	if p.Bio != nil {
		about.Bio = *p.Bio
	}
}
