package models

import "time"

// UserModel represents the database persistence model for accounts
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	UUID         string `gorm:"uniqueIndex;not null;size:36"`
	Name         string `gorm:"not null;size:100"`
	Email        string `gorm:"uniqueIndex;not null;size:160"`
	Role         string `gorm:"not null;default:standard;size:20"`
	PasswordHash string `gorm:"not null;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}
