package schema

import "github.com/folio-space/core/internal/models"

type CreateBlogPost struct {
	Title      string   `json:"title"      validate:"required,min=3,max=255"`
	Slug       string   `json:"slug"       validate:"required,min=3,max=191,slug"`
	Excerpt    string   `json:"excerpt"    validate:"required,min=10"`
	Content    string   `json:"content"    validate:"required,min=50"`
	CoverImage string   `json:"coverImage" validate:"max=2048"`
	Tags       []string `json:"tags"       validate:"max=32,dive,required,max=64"`
	Published  bool     `json:"published"`
}

func (p CreateBlogPost) Model() models.BlogPost {
	return models.BlogPost{
		Title:      p.Title,
		Slug:       p.Slug,
		Excerpt:    p.Excerpt,
		Content:    p.Content,
		CoverImage: p.CoverImage,
		Tags:       models.StringArray(p.Tags).Clone(),
		Published:  p.Published,
	}
}

// UpdateBlogPost merges only the fields present in the payload.
type UpdateBlogPost struct {
	Title      *string   `json:"title"      validate:"omitempty,min=3,max=255"`
	Slug       *string   `json:"slug"       validate:"omitempty,min=3,max=191,slug"`
	Excerpt    *string   `json:"excerpt"    validate:"omitempty,min=10"`
	Content    *string   `json:"content"    validate:"omitempty,min=50"`
	CoverImage *string   `json:"coverImage" validate:"omitempty,max=2048"`
	Tags       *[]string `json:"tags"       validate:"omitempty,max=32,dive,required,max=64"`
	Published  *bool     `json:"published"`
}

func (p UpdateBlogPost) Apply(post *models.BlogPost) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Slug != nil {
		post.Slug = *p.Slug
	}
	if p.Excerpt != nil {
		post.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.CoverImage != nil {
		post.CoverImage = *p.CoverImage
	}
	if p.Tags != nil {
		post.Tags = models.StringArray(*p.Tags).Clone()
	}
	if p.Published != nil {
		post.Published = *p.Published
	}
}
