package models

type Certificate struct {
	Base
	Title         string `json:"title"                   gorm:"size:255;not null"`
	Issuer        string `json:"issuer"                  gorm:"size:255;not null"`
	IssueDate     string `json:"issueDate"               gorm:"size:32;not null"`
	ExpiryDate    string `json:"expiryDate,omitempty"    gorm:"size:32"`
	CredentialURL string `json:"credentialUrl,omitempty"`
	Image         string `json:"image,omitempty"`
}

func (Certificate) TableName() string { return "certificates" }
