package content

import (
	"context"
	"time"
)

// Page is a structured content page. Type groups pages ("about", "legal",
// "help", ...); a slug is unique only within its type.
type Page struct {
	ID        uint
	Title     string
	Slug      string
	Type      string
	Body      string
	BodyHTML  string
	Live      bool
	Meta      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PageListOptions struct {
	Page int
	Size int
	Type string
	Live *bool
}

type PageRepository interface {
	FindByIDOrSlug(ctx context.Context, identifier string) (*Page, error)
	List(ctx context.Context, opts PageListOptions) ([]*Page, int64, error)
	Create(ctx context.Context, page *Page) error
	Update(ctx context.Context, page *Page) error
	Delete(ctx context.Context, id uint) error
}
