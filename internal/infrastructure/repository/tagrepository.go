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

type TagRepositoryImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) content.TagRepository {
	return &TagRepositoryImpl{db: db}
}

func (r *TagRepositoryImpl) FindByIDOrSlug(ctx context.Context, identifier string) (*content.Tag, error) {
	var model models.TagModel

	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = r.db.WithContext(ctx).First(&model, id).Error
	} else {
		err = r.db.WithContext(ctx).Where("slug = ?", identifier).First(&model).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find tag %q: %w", identifier, err)
	}

	return toTagEntity(&model), nil
}

func (r *TagRepositoryImpl) List(ctx context.Context, opts content.TaxonomyListOptions) ([]*content.Tag, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.TagModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	var modelList []*models.TagModel
	err := r.db.WithContext(ctx).Order("name ASC").
		Limit(opts.Size).
		Offset((opts.Page - 1) * opts.Size).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]*content.Tag, 0, len(modelList))
	for _, m := range modelList {
		tags = append(tags, toTagEntity(m))
	}

	return tags, total, nil
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *content.Tag) error {
	model := toTagModel(tag)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	tag.ID = model.ID
	return nil
}

func (r *TagRepositoryImpl) Update(ctx context.Context, tag *content.Tag) error {
	result := r.db.WithContext(ctx).Save(toTagModel(tag))
	if result.Error != nil {
		return fmt.Errorf("failed to update tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("tag not found")
	}
	return nil
}

func (r *TagRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.TagModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("tag not found")
	}
	return nil
}

func toTagModel(t *content.Tag) *models.TagModel {
	return &models.TagModel{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTagEntity(m *models.TagModel) *content.Tag {
	return &content.Tag{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
