package resources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/auth"
	"inkwell/internal/resource"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

const usersType = "users"

// UsersCapability manages accounts. Every operation is administrative.
// Password hashes never leave the capability.
type UsersCapability struct {
	repo   content.UserRepository
	hasher *auth.PasswordHasher
	logger logger.Interface
}

func NewUsersCapability(repo content.UserRepository, hasher *auth.PasswordHasher, log logger.Interface) *UsersCapability {
	return &UsersCapability{
		repo:   repo,
		hasher: hasher,
		logger: log.Named(usersType),
	}
}

func (c *UsersCapability) Type() string {
	return usersType
}

func (c *UsersCapability) FindOne(ctx context.Context, identifier string, _ url.Values) (resource.Object, error) {
	user, err := c.repo.FindByID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return userObject{user: user}, nil
}

func (c *UsersCapability) FindMany(ctx context.Context, params url.Values) ([]resource.Object, resource.PageState, error) {
	p := utils.ParsePageParams(params)

	users, total, err := c.repo.List(ctx, content.UserListOptions{Page: p.Page, Size: p.Size})
	if err != nil {
		return nil, resource.PageState{}, err
	}

	objects := make([]resource.Object, 0, len(users))
	for _, user := range users {
		objects = append(objects, userObject{user: user})
	}

	return objects, resource.PageState{
		Page:     p.Page,
		Size:     p.Size,
		Total:    total,
		LastPage: utils.TotalPages(total, p.Size),
	}, nil
}

func (c *UsersCapability) Create(ctx context.Context, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	hash, err := c.hasher.Hash(attrs["password"])
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := authorization.ParseUserRole(attrs["role"])
	if !role.IsValid() {
		role = authorization.RoleStandard
	}

	user := &content.User{
		UUID:         uuid.NewString(),
		Name:         attrs["name"],
		Email:        attrs["email"],
		Role:         role,
		PasswordHash: hash,
	}

	if err := c.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return userObject{user: user}, nil
}

func (c *UsersCapability) Update(ctx context.Context, obj resource.Object, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	user, err := c.entity(obj)
	if err != nil {
		return nil, err
	}

	if name, ok := attrs["name"]; ok {
		user.Name = name
	}
	if email, ok := attrs["email"]; ok {
		user.Email = email
	}
	if roleStr, ok := attrs["role"]; ok {
		if role := authorization.ParseUserRole(roleStr); role.IsValid() {
			user.Role = role
		}
	}
	if password, ok := attrs["password"]; ok && password != "" {
		hash, err := c.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := c.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return userObject{user: user}, nil
}

func (c *UsersCapability) Delete(ctx context.Context, obj resource.Object) (bool, error) {
	user, err := c.entity(obj)
	if err != nil {
		return false, err
	}

	if err := c.repo.Delete(ctx, user.ID); err != nil {
		return false, err
	}

	return true, nil
}

func (c *UsersCapability) StoreRules(_ map[string]string) validation.RuleSet {
	return validation.RuleSet{
		"name":     {"required", "max:120"},
		"email":    {"required", "email", "max:160", "unique:users,email"},
		"password": {"required", "max:200", "confirmed"},
		"role":     {"max:20"},
	}
}

func (c *UsersCapability) UpdateRules(obj resource.Object, attrs map[string]string) validation.RuleSet {
	rules := c.StoreRules(attrs).ForUpdate(attrs)
	if user, err := c.entity(obj); err == nil && attrs["email"] == user.Email {
		rules.DropRule("email", "unique")
	}
	return rules
}

func (c *UsersCapability) AuthorizeIndex() bool                 { return true }
func (c *UsersCapability) AuthorizeShow(resource.Object) bool   { return true }
func (c *UsersCapability) AuthorizeStore() bool                 { return true }
func (c *UsersCapability) AuthorizeUpdate(resource.Object) bool { return true }
func (c *UsersCapability) AuthorizeDelete(resource.Object) bool { return true }

func (c *UsersCapability) entity(obj resource.Object) (*content.User, error) {
	uo, ok := obj.(userObject)
	if !ok {
		return nil, fmt.Errorf("unexpected object type %T for users", obj)
	}
	return uo.user, nil
}

type userObject struct {
	user *content.User
}

func (o userObject) ResourceID() string {
	return idString(o.user.ID)
}

func (o userObject) Attributes() map[string]any {
	return map[string]any{
		"uuid":       o.user.UUID,
		"name":       o.user.Name,
		"email":      o.user.Email,
		"role":       o.user.Role.String(),
		"created_at": o.user.CreatedAt,
		"updated_at": o.user.UpdatedAt,
	}
}

func (o userObject) ViewRestricted() bool {
	return true
}
