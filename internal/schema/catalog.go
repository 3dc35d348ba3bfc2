package schema

import "github.com/folio-space/core/internal/models"

// DefaultProficiency is stored when a skill payload omits proficiency.
const DefaultProficiency = 50

// Creator builds a new entity from a validated create payload.
type Creator[T any] interface {
	Model() T
}

// Patcher merges a validated partial payload into an existing entity.
type Patcher[T any] interface {
	Apply(*T)
}

type CreateSkill struct {
	Name        string `json:"name"        validate:"required,min=2,max=255"`
	Icon        string `json:"icon"        validate:"max=255"`
	Category    string `json:"category"    validate:"required,max=64"`
	Proficiency *int   `json:"proficiency" validate:"omitempty,min=0,max=100"`
}

func (p CreateSkill) Model() models.Skill {
	proficiency := DefaultProficiency
	if p.Proficiency != nil {
		proficiency = *p.Proficiency
	}
	return models.Skill{
		Name:        p.Name,
		Icon:        p.Icon,
		Category:    p.Category,
		Proficiency: proficiency,
	}
}

type UpdateSkill struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=255"`
	Icon        *string `json:"icon"        validate:"omitempty,max=255"`
	Category    *string `json:"category"    validate:"omitempty,min=1,max=64"`
	Proficiency *int    `json:"proficiency" validate:"omitempty,min=0,max=100"`
}

func (p UpdateSkill) Apply(skill *models.Skill) {
	if p.Name != nil {
		skill.Name = *p.Name
	}
	if p.Icon != nil {
		skill.Icon = *p.Icon
	}
	if p.Category != nil {
		skill.Category = *p.Category
	}
	if p.Proficiency != nil {
		skill.Proficiency = *p.Proficiency
	}
}

type CreateProject struct {
	Title       string   `json:"title"       validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Image       string   `json:"image"       validate:"max=2048"`
	TechStack   []string `json:"techStack"   validate:"max=32,dive,required,max=64"`
	Category    string   `json:"category"    validate:"max=64"`
	GithubURL   string   `json:"githubUrl"   validate:"url_optional"`
	LiveURL     string   `json:"liveUrl"     validate:"url_optional"`
	Featured    bool     `json:"featured"`
}

func (p CreateProject) Model() models.Project {
	return models.Project{
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		TechStack:   models.StringArray(p.TechStack).Clone(),
		Category:    p.Category,
		GithubURL:   p.GithubURL,
		LiveURL:     p.LiveURL,
		Featured:    p.Featured,
	}
}

type UpdateProject struct {
	Title       *string   `json:"title"       validate:"omitempty,min=3,max=255"`
	Description *string   `json:"description" validate:"omitempty,min=10"`
	Image       *string   `json:"image"       validate:"omitempty,max=2048"`
	TechStack   *[]string `json:"techStack"   validate:"omitempty,max=32,dive,required,max=64"`
	Category    *string   `json:"category"    validate:"omitempty,max=64"`
	GithubURL   *string   `json:"githubUrl"   validate:"omitempty,url_optional"`
	LiveURL     *string   `json:"liveUrl"     validate:"omitempty,url_optional"`
	Featured    *bool     `json:"featured"`
}

func (p UpdateProject) Apply(project *models.Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.Image != nil {
		project.Image = *p.Image
	}
	if p.TechStack != nil {
		project.TechStack = models.StringArray(*p.TechStack).Clone()
	}
	if p.Category != nil {
		project.Category = *p.Category
	}
	if p.GithubURL != nil {
		project.GithubURL = *p.GithubURL
	}
	if p.LiveURL != nil {
		project.LiveURL = *p.LiveURL
	}
	if p.Featured != nil {
		project.Featured = *p.Featured
	}
}

type CreateCertificate struct {
	Title         string `json:"title"         validate:"required,min=3,max=255"`
	Issuer        string `json:"issuer"        validate:"required,min=2,max=255"`
	IssueDate     string `json:"issueDate"     validate:"required,max=32"`
	ExpiryDate    string `json:"expiryDate"    validate:"max=32"`
	CredentialURL string `json:"credentialUrl" validate:"url_optional"`
	Image         string `json:"image"         validate:"max=2048"`
}

func (p CreateCertificate) Model() models.Certificate {
	return models.Certificate{
		Title:         p.Title,
		Issuer:        p.Issuer,
		IssueDate:     p.IssueDate,
		ExpiryDate:    p.ExpiryDate,
		CredentialURL: p.CredentialURL,
		Image:         p.Image,
	}
}

type UpdateCertificate struct {
	Title         *string `json:"title"         validate:"omitempty,min=3,max=255"`
	Issuer        *string `json:"issuer"        validate:"omitempty,min=2,max=255"`
	IssueDate     *string `json:"issueDate"     validate:"omitempty,min=1,max=32"`
	ExpiryDate    *string `json:"expiryDate"    validate:"omitempty,max=32"`
	CredentialURL *string `json:"credentialUrl" validate:"omitempty,url_optional"`
	Image         *string `json:"image"         validate:"omitempty,max=2048"`
}

func (p UpdateCertificate) Apply(cert *models.Certificate) {
	if p.Title != nil {
		cert.Title = *p.Title
	}
	if p.Issuer != nil {
		cert.Issuer = *p.Issuer
	}
	if p.IssueDate != nil {
		cert.IssueDate = *p.IssueDate
	}
	if p.ExpiryDate != nil {
		cert.ExpiryDate = *p.ExpiryDate
	}
	if p.CredentialURL != nil {
		cert.CredentialURL = *p.CredentialURL
	}
	if p.Image != nil {
		cert.Image = *p.Image
	}
}
