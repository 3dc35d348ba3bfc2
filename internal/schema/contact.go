package schema

import "github.com/folio-space/core/internal/models"

// CreateContactMessage is the public contact form payload.
type CreateContactMessage struct {
	Name    string `json:"name"    validate:"required,min=2,max=255"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,min=10,max=10000"`
}

func (p CreateContactMessage) Model() models.ContactMessage {
	return models.ContactMessage{
		Name:    p.Name,
		Email:   p.Email,
		Message: p.Message,
	}
}
