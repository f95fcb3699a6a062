// Package models holds the database persistence models. They are the
// anti-corruption layer between domain entities and tables; repositories map
// in both directions.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// PostModel represents the database persistence model for blog posts
type PostModel struct {
	ID          uint   `gorm:"primarykey"`
	Title       string `gorm:"not null;size:160"`
	Slug        string `gorm:"uniqueIndex;not null;size:160"`
	Summary     string `gorm:"size:500"`
	Body        string `gorm:"type:text"`
	BodyHTML    string `gorm:"type:text"`
	Live        bool   `gorm:"default:false;index:idx_posts_live"`
	PublishedAt *time.Time
	CategoryID  *uint          `gorm:"index:idx_posts_category"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID"`
	Tags        []TagModel     `gorm:"many2many:post_tags"`
	Meta        datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PostModel) TableName() string {
	return "posts"
}
