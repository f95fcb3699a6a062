package models

import "time"

// ContactModel represents the database persistence model for contact-form
// submissions
type ContactModel struct {
	ID        uint   `gorm:"primarykey"`
	UUID      string `gorm:"uniqueIndex;not null;size:36"`
	Name      string `gorm:"not null;size:100"`
	Email     string `gorm:"not null;size:160"`
	Phone     string `gorm:"size:40"`
	Comments  string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ContactModel) TableName() string {
	return "contacts"
}
