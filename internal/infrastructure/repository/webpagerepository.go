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

type WebPageRepositoryImpl struct {
	db *gorm.DB
}

func NewWebPageRepository(db *gorm.DB) content.WebPageRepository {
	return &WebPageRepositoryImpl{db: db}
}

func (r *WebPageRepositoryImpl) FindByIDOrPath(ctx context.Context, identifier string) (*content.WebPage, error) {
	var model models.WebPageModel

	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = r.db.WithContext(ctx).First(&model, id).Error
	} else {
		err = r.db.WithContext(ctx).Where("path = ?", identifier).First(&model).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find webpage %q: %w", identifier, err)
	}

	return toWebPageEntity(&model), nil
}

func (r *WebPageRepositoryImpl) List(ctx context.Context, opts content.WebPageListOptions) ([]*content.WebPage, int64, error) {
	// Listings never expose drafts, regardless of caller.
	query := r.db.WithContext(ctx).Model(&models.WebPageModel{}).Where("live = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count webpages: %w", err)
	}

	var modelList []*models.WebPageModel
	err := query.Order("path ASC").
		Limit(opts.Size).
		Offset((opts.Page - 1) * opts.Size).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list webpages: %w", err)
	}

	webPages := make([]*content.WebPage, 0, len(modelList))
	for _, m := range modelList {
		webPages = append(webPages, toWebPageEntity(m))
	}

	return webPages, total, nil
}

func (r *WebPageRepositoryImpl) Create(ctx context.Context, webPage *content.WebPage) error {
	model := toWebPageModel(webPage)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create webpage: %w", err)
	}

	webPage.ID = model.ID
	return nil
}

func (r *WebPageRepositoryImpl) Update(ctx context.Context, webPage *content.WebPage) error {
	result := r.db.WithContext(ctx).Save(toWebPageModel(webPage))
	if result.Error != nil {
		return fmt.Errorf("failed to update webpage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("webpage not found")
	}
	return nil
}

func (r *WebPageRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.WebPageModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete webpage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("webpage not found")
	}
	return nil
}

func toWebPageModel(w *content.WebPage) *models.WebPageModel {
	return &models.WebPageModel{
		ID:          w.ID,
		Title:       w.Title,
		Path:        w.Path,
		Description: w.Description,
		Live:        w.Live,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toWebPageEntity(m *models.WebPageModel) *content.WebPage {
	return &content.WebPage{
		ID:          m.ID,
		Title:       m.Title,
		Path:        m.Path,
		Description: m.Description,
		Live:        m.Live,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
