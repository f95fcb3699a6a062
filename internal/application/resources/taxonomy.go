package resources

import (
	"context"
	"fmt"
	"net/url"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/cache"
	"inkwell/internal/resource"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

const (
	categoriesType = "categories"
	tagsType       = "tags"
)

// CategoriesCapability serves post categories. Everything is public to read;
// mutation is gated by policy.
type CategoriesCapability struct {
	repo   content.CategoryRepository
	cache  *cache.ResponseCache
	logger logger.Interface
}

func NewCategoriesCapability(repo content.CategoryRepository, responseCache *cache.ResponseCache, log logger.Interface) *CategoriesCapability {
	return &CategoriesCapability{
		repo:   repo,
		cache:  responseCache,
		logger: log.Named(categoriesType),
	}
}

func (c *CategoriesCapability) Type() string {
	return categoriesType
}

func (c *CategoriesCapability) FindOne(ctx context.Context, identifier string, _ url.Values) (resource.Object, error) {
	category, err := cache.Remember(ctx, c.cache, cache.ItemKey(categoriesType, identifier), func() (*content.Category, error) {
		return c.repo.FindByIDOrSlug(ctx, identifier)
	})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return categoryObject{category: category}, nil
}

func (c *CategoriesCapability) FindMany(ctx context.Context, params url.Values) ([]resource.Object, resource.PageState, error) {
	p := utils.ParsePageParams(params)

	type listing struct {
		Categories []*content.Category
		Total      int64
	}

	result, err := cache.Remember(ctx, c.cache, cache.ListKey(categoriesType, p.Page, p.Size, params), func() (listing, error) {
		categories, total, err := c.repo.List(ctx, content.TaxonomyListOptions{Page: p.Page, Size: p.Size})
		return listing{Categories: categories, Total: total}, err
	})
	if err != nil {
		return nil, resource.PageState{}, err
	}

	objects := make([]resource.Object, 0, len(result.Categories))
	for _, category := range result.Categories {
		objects = append(objects, categoryObject{category: category})
	}

	return objects, resource.PageState{
		Page:     p.Page,
		Size:     p.Size,
		Total:    result.Total,
		LastPage: utils.TotalPages(result.Total, p.Size),
	}, nil
}

func (c *CategoriesCapability) Create(ctx context.Context, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	category := &content.Category{
		Name:        attrs["name"],
		Slug:        slugOr(attrs["slug"], attrs["name"]),
		Description: attrs["description"],
	}

	if err := c.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, categoriesType)
	return categoryObject{category: category}, nil
}

func (c *CategoriesCapability) Update(ctx context.Context, obj resource.Object, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	category, err := c.categoryEntity(obj)
	if err != nil {
		return nil, err
	}

	if name, ok := attrs["name"]; ok {
		category.Name = name
	}
	if slug, ok := attrs["slug"]; ok {
		category.Slug = slugOr(slug, category.Name)
	}
	if description, ok := attrs["description"]; ok {
		category.Description = description
	}

	if err := c.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, categoriesType)
	return categoryObject{category: category}, nil
}

func (c *CategoriesCapability) Delete(ctx context.Context, obj resource.Object) (bool, error) {
	category, err := c.categoryEntity(obj)
	if err != nil {
		return false, err
	}

	if err := c.repo.Delete(ctx, category.ID); err != nil {
		return false, err
	}

	invalidate(ctx, c.cache, c.logger, categoriesType)
	// Posts embed the category slug in their cached listings.
	invalidate(ctx, c.cache, c.logger, postsType)
	return true, nil
}

func (c *CategoriesCapability) StoreRules(_ map[string]string) validation.RuleSet {
	return validation.RuleSet{
		"name":        {"required", "max:80", "unique:categories,name"},
		"slug":        {"max:80", "unique:categories,slug"},
		"description": {"max:500"},
	}
}

func (c *CategoriesCapability) UpdateRules(obj resource.Object, attrs map[string]string) validation.RuleSet {
	rules := c.StoreRules(attrs).ForUpdate(attrs)
	if category, err := c.categoryEntity(obj); err == nil {
		if attrs["name"] == category.Name {
			rules.DropRule("name", "unique")
		}
		if attrs["slug"] == category.Slug {
			rules.DropRule("slug", "unique")
		}
	}
	return rules
}

func (c *CategoriesCapability) AuthorizeIndex() bool                 { return false }
func (c *CategoriesCapability) AuthorizeShow(resource.Object) bool   { return false }
func (c *CategoriesCapability) AuthorizeStore() bool                 { return true }
func (c *CategoriesCapability) AuthorizeUpdate(resource.Object) bool { return true }
func (c *CategoriesCapability) AuthorizeDelete(resource.Object) bool { return true }

func (c *CategoriesCapability) categoryEntity(obj resource.Object) (*content.Category, error) {
	co, ok := obj.(categoryObject)
	if !ok {
		return nil, fmt.Errorf("unexpected object type %T for categories", obj)
	}
	return co.category, nil
}

type categoryObject struct {
	category *content.Category
}

func (o categoryObject) ResourceID() string {
	if o.category.Slug != "" {
		return o.category.Slug
	}
	return idString(o.category.ID)
}

func (o categoryObject) Attributes() map[string]any {
	return map[string]any{
		"name":        o.category.Name,
		"slug":        o.category.Slug,
		"description": o.category.Description,
		"created_at":  o.category.CreatedAt,
		"updated_at":  o.category.UpdatedAt,
	}
}

func (o categoryObject) ViewRestricted() bool {
	return false
}

// TagsCapability serves post tags, the flat half of the taxonomy.
type TagsCapability struct {
	repo   content.TagRepository
	cache  *cache.ResponseCache
	logger logger.Interface
}

func NewTagsCapability(repo content.TagRepository, responseCache *cache.ResponseCache, log logger.Interface) *TagsCapability {
	return &TagsCapability{
		repo:   repo,
		cache:  responseCache,
		logger: log.Named(tagsType),
	}
}

func (c *TagsCapability) Type() string {
	return tagsType
}

func (c *TagsCapability) FindOne(ctx context.Context, identifier string, _ url.Values) (resource.Object, error) {
	tag, err := cache.Remember(ctx, c.cache, cache.ItemKey(tagsType, identifier), func() (*content.Tag, error) {
		return c.repo.FindByIDOrSlug(ctx, identifier)
	})
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, nil
	}
	return tagObject{tag: tag}, nil
}

func (c *TagsCapability) FindMany(ctx context.Context, params url.Values) ([]resource.Object, resource.PageState, error) {
	p := utils.ParsePageParams(params)

	type listing struct {
		Tags  []*content.Tag
		Total int64
	}

	result, err := cache.Remember(ctx, c.cache, cache.ListKey(tagsType, p.Page, p.Size, params), func() (listing, error) {
		tags, total, err := c.repo.List(ctx, content.TaxonomyListOptions{Page: p.Page, Size: p.Size})
		return listing{Tags: tags, Total: total}, err
	})
	if err != nil {
		return nil, resource.PageState{}, err
	}

	objects := make([]resource.Object, 0, len(result.Tags))
	for _, tag := range result.Tags {
		objects = append(objects, tagObject{tag: tag})
	}

	return objects, resource.PageState{
		Page:     p.Page,
		Size:     p.Size,
		Total:    result.Total,
		LastPage: utils.TotalPages(result.Total, p.Size),
	}, nil
}

func (c *TagsCapability) Create(ctx context.Context, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	tag := &content.Tag{
		Name: attrs["name"],
		Slug: slugOr(attrs["slug"], attrs["name"]),
	}

	if err := c.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, tagsType)
	return tagObject{tag: tag}, nil
}

func (c *TagsCapability) Update(ctx context.Context, obj resource.Object, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	tag, err := c.tagEntity(obj)
	if err != nil {
		return nil, err
	}

	if name, ok := attrs["name"]; ok {
		tag.Name = name
	}
	if slug, ok := attrs["slug"]; ok {
		tag.Slug = slugOr(slug, tag.Name)
	}

	if err := c.repo.Update(ctx, tag); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, tagsType)
	return tagObject{tag: tag}, nil
}

func (c *TagsCapability) Delete(ctx context.Context, obj resource.Object) (bool, error) {
	tag, err := c.tagEntity(obj)
	if err != nil {
		return false, err
	}

	if err := c.repo.Delete(ctx, tag.ID); err != nil {
		return false, err
	}

	invalidate(ctx, c.cache, c.logger, tagsType)
	invalidate(ctx, c.cache, c.logger, postsType)
	return true, nil
}

func (c *TagsCapability) StoreRules(_ map[string]string) validation.RuleSet {
	return validation.RuleSet{
		"name": {"required", "max:80", "unique:tags,name"},
		"slug": {"max:80", "unique:tags,slug"},
	}
}

func (c *TagsCapability) UpdateRules(obj resource.Object, attrs map[string]string) validation.RuleSet {
	rules := c.StoreRules(attrs).ForUpdate(attrs)
	if tag, err := c.tagEntity(obj); err == nil {
		if attrs["name"] == tag.Name {
			rules.DropRule("name", "unique")
		}
		if attrs["slug"] == tag.Slug {
			rules.DropRule("slug", "unique")
		}
	}
	return rules
}

func (c *TagsCapability) AuthorizeIndex() bool                 { return false }
func (c *TagsCapability) AuthorizeShow(resource.Object) bool   { return false }
func (c *TagsCapability) AuthorizeStore() bool                 { return true }
func (c *TagsCapability) AuthorizeUpdate(resource.Object) bool { return true }
func (c *TagsCapability) AuthorizeDelete(resource.Object) bool { return true }

func (c *TagsCapability) tagEntity(obj resource.Object) (*content.Tag, error) {
	to, ok := obj.(tagObject)
	if !ok {
		return nil, fmt.Errorf("unexpected object type %T for tags", obj)
	}
	return to.tag, nil
}

type tagObject struct {
	tag *content.Tag
}

func (o tagObject) ResourceID() string {
	if o.tag.Slug != "" {
		return o.tag.Slug
	}
	return idString(o.tag.ID)
}

func (o tagObject) Attributes() map[string]any {
	return map[string]any{
		"name":       o.tag.Name,
		"slug":       o.tag.Slug,
		"created_at": o.tag.CreatedAt,
		"updated_at": o.tag.UpdatedAt,
	}
}

func (o tagObject) ViewRestricted() bool {
	return false
}
