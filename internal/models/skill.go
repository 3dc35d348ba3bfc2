package models

type Skill struct {
	Base
	Name        string `json:"name"        gorm:"size:255;not null"`
	Icon        string `json:"icon"        gorm:"size:255"`
	Category    string `json:"category"    gorm:"size:64;not null"`
	Proficiency int    `json:"proficiency" gorm:"not null;default:50"`
}

func (Skill) TableName() string { return "skills" }
