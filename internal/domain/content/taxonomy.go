package content

import (
	"context"
	"time"
)

// Category is a post taxonomy term. Names and slugs are unique.
type Category struct {
	ID          uint
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tag is a flat label attached to posts.
type Tag struct {
	ID        uint
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TaxonomyListOptions struct {
	Page int
	Size int
}

type CategoryRepository interface {
	FindByIDOrSlug(ctx context.Context, identifier string) (*Category, error)
	List(ctx context.Context, opts TaxonomyListOptions) ([]*Category, int64, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
}

type TagRepository interface {
	FindByIDOrSlug(ctx context.Context, identifier string) (*Tag, error)
	List(ctx context.Context, opts TaxonomyListOptions) ([]*Tag, int64, error)
	Create(ctx context.Context, tag *Tag) error
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id uint) error
}
