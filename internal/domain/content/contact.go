package content

import (
	"context"
	"time"
)

// Contact is a submitted contact-form message. Submission is open to guests;
// reading and deleting are administrative.
type Contact struct {
	ID        uint
	UUID      string
	Name      string
	Email     string
	Phone     string
	Comments  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContactListOptions struct {
	Page int
	Size int
}

type ContactRepository interface {
	FindByID(ctx context.Context, identifier string) (*Contact, error)
	List(ctx context.Context, opts ContactListOptions) ([]*Contact, int64, error)
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id uint) error
}
