package repository

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/persistence/models"
	"inkwell/internal/shared/errors"
)

type ContactRepositoryImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) content.ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

func (r *ContactRepositoryImpl) FindByID(ctx context.Context, identifier string) (*content.Contact, error) {
	var model models.ContactModel

	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = r.db.WithContext(ctx).First(&model, id).Error
	} else {
		err = r.db.WithContext(ctx).Where("uuid = ?", identifier).First(&model).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contact %q: %w", identifier, err)
	}

	return toContactEntity(&model), nil
}

func (r *ContactRepositoryImpl) List(ctx context.Context, opts content.ContactListOptions) ([]*content.Contact, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ContactModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var modelList []*models.ContactModel
	err := r.db.WithContext(ctx).Order("created_at DESC").
		Limit(opts.Size).
		Offset((opts.Page - 1) * opts.Size).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts := make([]*content.Contact, 0, len(modelList))
	for _, m := range modelList {
		contacts = append(contacts, toContactEntity(m))
	}

	return contacts, total, nil
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *content.Contact) error {
	model := toContactModel(contact)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	contact.ID = model.ID
	return nil
}

func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *content.Contact) error {
	result := r.db.WithContext(ctx).Save(toContactModel(contact))
	if result.Error != nil {
		return fmt.Errorf("failed to update contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("contact not found")
	}
	return nil
}

func (r *ContactRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("contact not found")
	}
	return nil
}

func toContactModel(c *content.Contact) *models.ContactModel {
	return &models.ContactModel{
		ID:        c.ID,
		UUID:      c.UUID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Comments:  c.Comments,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toContactEntity(m *models.ContactModel) *content.Contact {
	return &content.Contact{
		ID:        m.ID,
		UUID:      m.UUID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Comments:  m.Comments,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
