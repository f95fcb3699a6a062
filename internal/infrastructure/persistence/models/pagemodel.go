package models

import (
	"time"

	"gorm.io/datatypes"
)

// PageModel represents the database persistence model for content pages.
// The slug is unique per page type, not globally.
type PageModel struct {
	ID        uint   `gorm:"primarykey"`
	Title     string `gorm:"not null;size:160"`
	Slug      string `gorm:"not null;size:160;uniqueIndex:idx_pages_slug_type"`
	Type      string `gorm:"not null;size:40;uniqueIndex:idx_pages_slug_type"`
	Body      string `gorm:"type:text"`
	BodyHTML  string `gorm:"type:text"`
	Live      bool   `gorm:"default:false;index:idx_pages_live"`
	Meta      datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PageModel) TableName() string {
	return "pages"
}
