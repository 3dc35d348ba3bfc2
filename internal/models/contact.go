package models

// ContactMessage is a public contact form submission.
type ContactMessage struct {
	Base
	Name    string `json:"name"    gorm:"size:255;not null"`
	Email   string `json:"email"   gorm:"size:255;not null"`
	Message string `json:"message" gorm:"not null"`
	IsRead  bool   `json:"isRead"  gorm:"not null;default:false"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
