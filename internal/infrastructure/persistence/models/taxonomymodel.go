package models

import "time"

// CategoryModel represents the database persistence model for categories
type CategoryModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"uniqueIndex;not null;size:80"`
	Slug        string `gorm:"uniqueIndex;not null;size:80"`
	Description string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// TagModel represents the database persistence model for tags
type TagModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"uniqueIndex;not null;size:80"`
	Slug      string `gorm:"uniqueIndex;not null;size:80"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TagModel) TableName() string {
	return "tags"
}
