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

type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) content.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) FindByIDOrSlug(ctx context.Context, identifier string) (*content.Category, error) {
	var model models.CategoryModel

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
		return nil, fmt.Errorf("failed to find category %q: %w", identifier, err)
	}

	return toCategoryEntity(&model), nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context, opts content.TaxonomyListOptions) ([]*content.Category, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	var modelList []*models.CategoryModel
	err := r.db.WithContext(ctx).Order("name ASC").
		Limit(opts.Size).
		Offset((opts.Page - 1) * opts.Size).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*content.Category, 0, len(modelList))
	for _, m := range modelList {
		categories = append(categories, toCategoryEntity(m))
	}

	return categories, total, nil
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *content.Category) error {
	model := toCategoryModel(category)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	category.ID = model.ID
	return nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *content.Category) error {
	result := r.db.WithContext(ctx).Save(toCategoryModel(category))
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("category not found")
	}
	return nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("category not found")
	}
	return nil
}

func toCategoryModel(c *content.Category) *models.CategoryModel {
	return &models.CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryEntity(m *models.CategoryModel) *content.Category {
	return &content.Category{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
