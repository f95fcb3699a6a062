package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/email"
	"inkwell/internal/shared/config"
)

type fakeContactRepo struct {
	contacts map[uint]*content.Contact
	created  *content.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[uint]*content.Contact)}
}

func (r *fakeContactRepo) FindByID(ctx context.Context, identifier string) (*content.Contact, error) {
	for _, c := range r.contacts {
		if idString(c.ID) == identifier {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeContactRepo) List(ctx context.Context, opts content.ContactListOptions) ([]*content.Contact, int64, error) {
	var out []*content.Contact
	for _, c := range r.contacts {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeContactRepo) Create(ctx context.Context, contact *content.Contact) error {
	contact.ID = uint(len(r.contacts) + 1)
	r.contacts[contact.ID] = contact
	r.created = contact
	return nil
}

func (r *fakeContactRepo) Update(ctx context.Context, contact *content.Contact) error {
	r.contacts[contact.ID] = contact
	return nil
}

func (r *fakeContactRepo) Delete(ctx context.Context, id uint) error {
	delete(r.contacts, id)
	return nil
}

func newContactsCapability(repo *fakeContactRepo) *ContactsCapability {
	mailer := email.NewMailer(&config.EmailConfig{Enabled: false}, discardLogger())
	return NewContactsCapability(repo, mailer, discardLogger())
}

func TestContactsCapability_StoreIsOpenReadIsNot(t *testing.T) {
	c := newContactsCapability(newFakeContactRepo())

	assert.False(t, c.AuthorizeStore())
	assert.True(t, c.AuthorizeIndex())
	assert.True(t, c.AuthorizeShow(contactObject{contact: &content.Contact{}}))
	assert.True(t, c.AuthorizeDelete(contactObject{contact: &content.Contact{}}))
}

func TestContactsCapability_CreateAssignsUUID(t *testing.T) {
	repo := newFakeContactRepo()
	c := newContactsCapability(repo)

	obj, err := c.Create(context.Background(), map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"comments": "Hello there",
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.NotEmpty(t, repo.created.UUID)
	assert.Equal(t, "Ada", repo.created.Name)
	assert.Equal(t, repo.created.UUID, obj.Attributes()["uuid"])
}

func TestContactsCapability_StoreRulesRequireTheMessage(t *testing.T) {
	c := newContactsCapability(newFakeContactRepo())

	rules := c.StoreRules(nil)
	assert.Contains(t, rules["name"], "required")
	assert.Contains(t, rules["email"], "email")
	assert.Contains(t, rules["comments"], "required")
}
