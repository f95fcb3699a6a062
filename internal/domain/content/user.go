package content

import (
	"context"
	"time"

	"inkwell/internal/shared/authorization"
)

// User is an account that can authenticate and, depending on role, manage
// content. PasswordHash never appears in encoded attributes.
type User struct {
	ID           uint
	UUID         string
	Name         string
	Email        string
	Role         authorization.UserRole
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Principal() *authorization.Principal {
	return &authorization.Principal{
		ID:    u.ID,
		UUID:  u.UUID,
		Email: u.Email,
		Role:  u.Role,
	}
}

type UserListOptions struct {
	Page int
	Size int
}

type UserRepository interface {
	FindByID(ctx context.Context, identifier string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUUID(ctx context.Context, uuid string) (*User, error)
	List(ctx context.Context, opts UserListOptions) ([]*User, int64, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}
