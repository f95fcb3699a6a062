package content

import (
	"context"
	"time"
)

// WebPage is a standalone site page addressed by a path that may contain
// slashes ("guides/getting-started"). Listings only ever show live pages.
type WebPage struct {
	ID          uint
	Title       string
	Path        string
	Description string
	Live        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WebPageListOptions struct {
	Page int
	Size int
}

type WebPageRepository interface {
	FindByIDOrPath(ctx context.Context, identifier string) (*WebPage, error)
	// List returns live web pages only.
	List(ctx context.Context, opts WebPageListOptions) ([]*WebPage, int64, error)
	Create(ctx context.Context, webPage *WebPage) error
	Update(ctx context.Context, webPage *WebPage) error
	Delete(ctx context.Context, id uint) error
}
