package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/auth"
	"inkwell/internal/shared/authorization"
)

type fakeUserRepo struct {
	users   map[string]*content.User
	created *content.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*content.User)}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, identifier string) (*content.User, error) {
	for _, u := range r.users {
		if idString(u.ID) == identifier {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*content.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) FindByUUID(ctx context.Context, uuid string) (*content.User, error) {
	for _, u := range r.users {
		if u.UUID == uuid {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context, opts content.UserListOptions) ([]*content.User, int64, error) {
	var out []*content.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *content.User) error {
	user.ID = uint(len(r.users) + 1)
	r.users[user.Email] = user
	r.created = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *content.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	return nil
}

func newUsersCapability(repo *fakeUserRepo) *UsersCapability {
	return NewUsersCapability(repo, auth.NewPasswordHasher(bcrypt.MinCost), discardLogger())
}

func TestUsersCapability_CreateHashesPasswordAndAssignsUUID(t *testing.T) {
	repo := newFakeUserRepo()
	c := newUsersCapability(repo)

	obj, err := c.Create(context.Background(), map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret-password",
		"role":     "administrator",
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.NotEmpty(t, repo.created.UUID)
	assert.Equal(t, authorization.RoleAdministrator, repo.created.Role)
	assert.NotEqual(t, "secret-password", repo.created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("secret-password")))

	// The hash never appears in encoded attributes.
	attrs := obj.Attributes()
	for key, value := range attrs {
		assert.NotEqual(t, repo.created.PasswordHash, value, "attribute %s leaks the hash", key)
	}
	_, exposed := attrs["password_hash"]
	assert.False(t, exposed)
}

func TestUsersCapability_CreateUnknownRoleFallsBackToStandard(t *testing.T) {
	repo := newFakeUserRepo()
	c := newUsersCapability(repo)

	_, err := c.Create(context.Background(), map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret-password",
		"role":     "superuser",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, authorization.RoleStandard, repo.created.Role)
}

func TestUsersCapability_StoreRulesRequireConfirmation(t *testing.T) {
	c := newUsersCapability(newFakeUserRepo())

	rules := c.StoreRules(nil)
	assert.Contains(t, rules["password"], "confirmed")
	assert.Contains(t, rules["email"], "unique:users,email")
}

func TestUsersCapability_UpdateRulesRelaxEmailUniqueWhenUnchanged(t *testing.T) {
	repo := newFakeUserRepo()
	c := newUsersCapability(repo)

	_, err := c.Create(context.Background(), map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret-password",
	}, nil)
	require.NoError(t, err)

	obj, err := c.FindOne(context.Background(), "1", nil)
	require.NoError(t, err)
	require.NotNil(t, obj)

	rules := c.UpdateRules(obj, map[string]string{"email": "ada@example.com", "name": "Ada L."})
	assert.NotContains(t, rules["email"], "unique:users,email")

	rules = c.UpdateRules(obj, map[string]string{"email": "new@example.com"})
	assert.Contains(t, rules["email"], "unique:users,email")
}
