// Package content holds the domain entities of the publishing backend and the
// repository contracts their capabilities depend on. Entities are plain data
// owned by their repositories; business fields never leak into the dispatch
// engine, which sees only attribute maps.
package content

import (
	"context"
	"time"
)

// Post is a blog post. Body holds the markdown source, BodyHTML the rendered
// and sanitized output. A post with Live false is a draft.
type Post struct {
	ID           uint
	Title        string
	Slug         string
	Summary      string
	Body         string
	BodyHTML     string
	Live         bool
	PublishedAt  *time.Time
	CategorySlug string
	TagSlugs     []string
	Meta         map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PostListOptions narrows a post listing.
type PostListOptions struct {
	Page     int
	Size     int
	Category string
	Tag      string
	// Live limits to live or draft posts when set.
	Live *bool
}

type PostRepository interface {
	FindByIDOrSlug(ctx context.Context, identifier string) (*Post, error)
	List(ctx context.Context, opts PostListOptions) ([]*Post, int64, error)
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id uint) error
}
