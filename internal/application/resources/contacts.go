package resources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/email"
	"inkwell/internal/resource"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

const contactsType = "contacts"

// ContactsCapability handles contact-form submissions. Storing is open to
// guests; everything else is administrative. Each stored contact triggers a
// notification email when the mailer is enabled.
type ContactsCapability struct {
	repo   content.ContactRepository
	mailer *email.Mailer
	logger logger.Interface
}

func NewContactsCapability(repo content.ContactRepository, mailer *email.Mailer, log logger.Interface) *ContactsCapability {
	return &ContactsCapability{
		repo:   repo,
		mailer: mailer,
		logger: log.Named(contactsType),
	}
}

func (c *ContactsCapability) Type() string {
	return contactsType
}

func (c *ContactsCapability) FindOne(ctx context.Context, identifier string, _ url.Values) (resource.Object, error) {
	contact, err := c.repo.FindByID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, nil
	}
	return contactObject{contact: contact}, nil
}

func (c *ContactsCapability) FindMany(ctx context.Context, params url.Values) ([]resource.Object, resource.PageState, error) {
	p := utils.ParsePageParams(params)

	contacts, total, err := c.repo.List(ctx, content.ContactListOptions{Page: p.Page, Size: p.Size})
	if err != nil {
		return nil, resource.PageState{}, err
	}

	objects := make([]resource.Object, 0, len(contacts))
	for _, contact := range contacts {
		objects = append(objects, contactObject{contact: contact})
	}

	return objects, resource.PageState{
		Page:     p.Page,
		Size:     p.Size,
		Total:    total,
		LastPage: utils.TotalPages(total, p.Size),
	}, nil
}

func (c *ContactsCapability) Create(ctx context.Context, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	contact := &content.Contact{
		UUID:     uuid.NewString(),
		Name:     attrs["name"],
		Email:    attrs["email"],
		Phone:    attrs["phone"],
		Comments: attrs["comments"],
	}

	if err := c.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	// Delivery failures are logged by the mailer and never surface to the
	// submitter.
	go c.mailer.NotifyContact(contact)

	return contactObject{contact: contact}, nil
}

func (c *ContactsCapability) Update(ctx context.Context, obj resource.Object, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	contact, err := c.entity(obj)
	if err != nil {
		return nil, err
	}

	if name, ok := attrs["name"]; ok {
		contact.Name = name
	}
	if mail, ok := attrs["email"]; ok {
		contact.Email = mail
	}
	if phone, ok := attrs["phone"]; ok {
		contact.Phone = phone
	}
	if comments, ok := attrs["comments"]; ok {
		contact.Comments = comments
	}

	if err := c.repo.Update(ctx, contact); err != nil {
		return nil, err
	}

	return contactObject{contact: contact}, nil
}

func (c *ContactsCapability) Delete(ctx context.Context, obj resource.Object) (bool, error) {
	contact, err := c.entity(obj)
	if err != nil {
		return false, err
	}

	if err := c.repo.Delete(ctx, contact.ID); err != nil {
		return false, err
	}

	return true, nil
}

func (c *ContactsCapability) StoreRules(_ map[string]string) validation.RuleSet {
	return validation.RuleSet{
		"name":     {"required", "max:120"},
		"email":    {"required", "email", "max:160"},
		"phone":    {"max:40"},
		"comments": {"required", "max:2000"},
	}
}

func (c *ContactsCapability) UpdateRules(_ resource.Object, attrs map[string]string) validation.RuleSet {
	return c.StoreRules(attrs).ForUpdate(attrs)
}

func (c *ContactsCapability) AuthorizeIndex() bool                 { return true }
func (c *ContactsCapability) AuthorizeShow(resource.Object) bool   { return true }
func (c *ContactsCapability) AuthorizeStore() bool                 { return false }
func (c *ContactsCapability) AuthorizeUpdate(resource.Object) bool { return true }
func (c *ContactsCapability) AuthorizeDelete(resource.Object) bool { return true }

func (c *ContactsCapability) entity(obj resource.Object) (*content.Contact, error) {
	co, ok := obj.(contactObject)
	if !ok {
		return nil, fmt.Errorf("unexpected object type %T for contacts", obj)
	}
	return co.contact, nil
}

type contactObject struct {
	contact *content.Contact
}

func (o contactObject) ResourceID() string {
	return idString(o.contact.ID)
}

func (o contactObject) Attributes() map[string]any {
	return map[string]any{
		"uuid":       o.contact.UUID,
		"name":       o.contact.Name,
		"email":      o.contact.Email,
		"phone":      o.contact.Phone,
		"comments":   o.contact.Comments,
		"created_at": o.contact.CreatedAt,
		"updated_at": o.contact.UpdatedAt,
	}
}

func (o contactObject) ViewRestricted() bool {
	return true
}
