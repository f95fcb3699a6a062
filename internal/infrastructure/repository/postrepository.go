// Package repository implements the domain repository contracts on GORM.
// Absence is returned as (nil, nil), never as an error; unexpected datastore
// failures are wrapped with context.
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

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) content.PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) FindByIDOrSlug(ctx context.Context, identifier string) (*content.Post, error) {
	var model models.PostModel

	query := r.db.WithContext(ctx).Preload("Category").Preload("Tags")
	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = query.First(&model, id).Error
	} else {
		err = query.Where("slug = ?", identifier).First(&model).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find post %q: %w", identifier, err)
	}

	return toPostEntity(&model), nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, opts content.PostListOptions) ([]*content.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PostModel{})

	if opts.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", opts.Category)
	}
	if opts.Tag != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_model_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_model_id").
			Where("tags.slug = ?", opts.Tag)
	}
	if opts.Live != nil {
		query = query.Where("posts.live = ?", *opts.Live)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var modelList []*models.PostModel
	err := query.Preload("Category").Preload("Tags").
		Order("posts.published_at DESC, posts.id DESC").
		Limit(opts.Size).
		Offset((opts.Page - 1) * opts.Size).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*content.Post, 0, len(modelList))
	for _, m := range modelList {
		posts = append(posts, toPostEntity(m))
	}

	return posts, total, nil
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *content.Post) error {
	model, err := r.toPostModel(ctx, post)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	post.ID = model.ID
	return nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *content.Post) error {
	model, err := r.toPostModel(ctx, post)
	if err != nil {
		return err
	}

	tags := model.Tags
	model.Tags = nil

	result := r.db.WithContext(ctx).Omit("Tags").Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("post not found")
	}

	if err := r.db.WithContext(ctx).Model(model).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("failed to update post tags: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Tags").Delete(&models.PostModel{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("post not found")
	}
	return nil
}

func (r *PostRepositoryImpl) toPostModel(ctx context.Context, post *content.Post) (*models.PostModel, error) {
	model := &models.PostModel{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Summary:     post.Summary,
		Body:        post.Body,
		BodyHTML:    post.BodyHTML,
		Live:        post.Live,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}

	if post.CategorySlug != "" {
		var category models.CategoryModel
		err := r.db.WithContext(ctx).Where("slug = ?", post.CategorySlug).First(&category).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.NewValidationError("Validation failed", "unknown category "+post.CategorySlug)
			}
			return nil, fmt.Errorf("failed to resolve category %q: %w", post.CategorySlug, err)
		}
		model.CategoryID = &category.ID
	}

	for _, slug := range post.TagSlugs {
		var tag models.TagModel
		err := r.db.WithContext(ctx).Where(models.TagModel{Slug: slug}).
			Attrs(models.TagModel{Name: slug}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", slug, err)
		}
		model.Tags = append(model.Tags, tag)
	}

	if len(post.Meta) > 0 {
		data, err := json.Marshal(post.Meta)
		if err != nil {
			return nil, fmt.Errorf("failed to encode post meta: %w", err)
		}
		model.Meta = datatypes.JSON(data)
	}

	return model, nil
}

func toPostEntity(m *models.PostModel) *content.Post {
	post := &content.Post{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Summary:     m.Summary,
		Body:        m.Body,
		BodyHTML:    m.BodyHTML,
		Live:        m.Live,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.Category != nil {
		post.CategorySlug = m.Category.Slug
	}
	for _, tag := range m.Tags {
		post.TagSlugs = append(post.TagSlugs, tag.Slug)
	}
	if len(m.Meta) > 0 {
		_ = json.Unmarshal(m.Meta, &post.Meta)
	}

	return post
}
