package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/persistence/models"
	"inkwell/internal/shared/errors"
)

type PageRepositoryImpl struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) content.PageRepository {
	return &PageRepositoryImpl{db: db}
}

func (r *PageRepositoryImpl) FindByIDOrSlug(ctx context.Context, identifier string) (*content.Page, error) {
	var model models.PageModel

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
		return nil, fmt.Errorf("failed to find page %q: %w", identifier, err)
	}

	return toPageEntity(&model), nil
}

func (r *PageRepositoryImpl) List(ctx context.Context, opts content.PageListOptions) ([]*content.Page, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PageModel{})

	if opts.Type != "" {
		query = query.Where("type = ?", opts.Type)
	}
	if opts.Live != nil {
		query = query.Where("live = ?", *opts.Live)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pages: %w", err)
	}

	var modelList []*models.PageModel
	err := query.Order("type ASC, title ASC").
		Limit(opts.Size).
		Offset((opts.Page - 1) * opts.Size).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pages: %w", err)
	}

	pages := make([]*content.Page, 0, len(modelList))
	for _, m := range modelList {
		pages = append(pages, toPageEntity(m))
	}

	return pages, total, nil
}

func (r *PageRepositoryImpl) Create(ctx context.Context, page *content.Page) error {
	model, err := toPageModel(page)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	page.ID = model.ID
	return nil
}

func (r *PageRepositoryImpl) Update(ctx context.Context, page *content.Page) error {
	model, err := toPageModel(page)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update page: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("page not found")
	}

	return nil
}

func (r *PageRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PageModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete page: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("page not found")
	}
	return nil
}

func toPageModel(page *content.Page) (*models.PageModel, error) {
	model := &models.PageModel{
		ID:        page.ID,
		Title:     page.Title,
		Slug:      page.Slug,
		Type:      page.Type,
		Body:      page.Body,
		BodyHTML:  page.BodyHTML,
		Live:      page.Live,
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.UpdatedAt,
	}

	if len(page.Meta) > 0 {
		data, err := json.Marshal(page.Meta)
		if err != nil {
			return nil, fmt.Errorf("failed to encode page meta: %w", err)
		}
		model.Meta = datatypes.JSON(data)
	}

	return model, nil
}

func toPageEntity(m *models.PageModel) *content.Page {
	page := &content.Page{
		ID:        m.ID,
		Title:     m.Title,
		Slug:      m.Slug,
		Type:      m.Type,
		Body:      m.Body,
		BodyHTML:  m.BodyHTML,
		Live:      m.Live,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if len(m.Meta) > 0 {
		_ = json.Unmarshal(m.Meta, &page.Meta)
	}
	return page
}
