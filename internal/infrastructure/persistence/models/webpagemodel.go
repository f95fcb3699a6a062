package models

import "time"

// WebPageModel represents the database persistence model for standalone web
// pages addressed by path.
type WebPageModel struct {
	ID          uint   `gorm:"primarykey"`
	Title       string `gorm:"not null;size:160"`
	Path        string `gorm:"uniqueIndex;not null;size:255"`
	Description string `gorm:"size:500"`
	Live        bool   `gorm:"default:false;index:idx_webpages_live"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (WebPageModel) TableName() string {
	return "webpages"
}
