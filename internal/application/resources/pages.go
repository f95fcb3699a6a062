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
	"inkwell/internal/shared/services/markdown"
	"inkwell/internal/shared/utils"
)

const pagesType = "pages"

// PagesCapability serves typed content pages. Slug uniqueness is scoped to
// the page type, so "about" may exist once per type.
type PagesCapability struct {
	repo     content.PageRepository
	renderer markdown.Renderer
	cache    *cache.ResponseCache
	logger   logger.Interface
}

func NewPagesCapability(repo content.PageRepository, renderer markdown.Renderer, responseCache *cache.ResponseCache, log logger.Interface) *PagesCapability {
	return &PagesCapability{
		repo:     repo,
		renderer: renderer,
		cache:    responseCache,
		logger:   log.Named(pagesType),
	}
}

func (c *PagesCapability) Type() string {
	return pagesType
}

func (c *PagesCapability) FindOne(ctx context.Context, identifier string, _ url.Values) (resource.Object, error) {
	page, err := cache.Remember(ctx, c.cache, cache.ItemKey(pagesType, identifier), func() (*content.Page, error) {
		return c.repo.FindByIDOrSlug(ctx, identifier)
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}
	return pageObject{page: page}, nil
}

func (c *PagesCapability) FindMany(ctx context.Context, params url.Values) ([]resource.Object, resource.PageState, error) {
	p := utils.ParsePageParams(params)
	live := true
	opts := content.PageListOptions{
		Page: p.Page,
		Size: p.Size,
		Type: params.Get("type"),
		Live: &live,
	}

	type listing struct {
		Pages []*content.Page
		Total int64
	}

	result, err := cache.Remember(ctx, c.cache, cache.ListKey(pagesType, p.Page, p.Size, params), func() (listing, error) {
		pages, total, err := c.repo.List(ctx, opts)
		return listing{Pages: pages, Total: total}, err
	})
	if err != nil {
		return nil, resource.PageState{}, err
	}

	objects := make([]resource.Object, 0, len(result.Pages))
	for _, page := range result.Pages {
		objects = append(objects, pageObject{page: page})
	}

	return objects, resource.PageState{
		Page:     p.Page,
		Size:     p.Size,
		Total:    result.Total,
		LastPage: utils.TotalPages(result.Total, p.Size),
	}, nil
}

func (c *PagesCapability) Create(ctx context.Context, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	bodyHTML, err := c.renderer.Render(attrs["body"])
	if err != nil {
		return nil, fmt.Errorf("failed to render page body: %w", err)
	}

	page := &content.Page{
		Title:    attrs["title"],
		Slug:     slugOr(attrs["slug"], attrs["title"]),
		Type:     attrs["type"],
		Body:     attrs["body"],
		BodyHTML: bodyHTML,
		Live:     utils.ParseBool(attrs["live"]),
	}

	if err := c.repo.Create(ctx, page); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, pagesType)
	return pageObject{page: page}, nil
}

func (c *PagesCapability) Update(ctx context.Context, obj resource.Object, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	page, err := c.entity(obj)
	if err != nil {
		return nil, err
	}

	if title, ok := attrs["title"]; ok {
		page.Title = title
	}
	if slug, ok := attrs["slug"]; ok {
		page.Slug = slugOr(slug, page.Title)
	}
	if pageType, ok := attrs["type"]; ok {
		page.Type = pageType
	}
	if body, ok := attrs["body"]; ok {
		bodyHTML, err := c.renderer.Render(body)
		if err != nil {
			return nil, fmt.Errorf("failed to render page body: %w", err)
		}
		page.Body = body
		page.BodyHTML = bodyHTML
	}
	if live, ok := attrs["live"]; ok {
		page.Live = utils.ParseBool(live)
	}

	if err := c.repo.Update(ctx, page); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, pagesType)
	return pageObject{page: page}, nil
}

func (c *PagesCapability) Delete(ctx context.Context, obj resource.Object) (bool, error) {
	page, err := c.entity(obj)
	if err != nil {
		return false, err
	}

	if err := c.repo.Delete(ctx, page.ID); err != nil {
		return false, err
	}

	invalidate(ctx, c.cache, c.logger, pagesType)
	return true, nil
}

func (c *PagesCapability) StoreRules(_ map[string]string) validation.RuleSet {
	return validation.RuleSet{
		"title": {"required", "max:160"},
		"slug":  {"max:160", "uniquepair:pages,slug,type"},
		"type":  {"required", "max:40"},
		"body":  {"required"},
		"live":  {"boolean"},
	}
}

func (c *PagesCapability) UpdateRules(obj resource.Object, attrs map[string]string) validation.RuleSet {
	rules := c.StoreRules(attrs).ForUpdate(attrs)
	page, err := c.entity(obj)
	if err != nil {
		return rules
	}
	// The pair check reads its scope value from the submitted attributes,
	// so an omitted type falls back to the stored one.
	if _, ok := attrs["type"]; !ok {
		attrs["type"] = page.Type
	}
	// An unchanged slug within an unchanged type cannot collide with itself.
	if attrs["slug"] == page.Slug && attrs["type"] == page.Type {
		rules.DropRule("slug", "uniquepair")
	}
	return rules
}

func (c *PagesCapability) AuthorizeIndex() bool                   { return false }
func (c *PagesCapability) AuthorizeShow(obj resource.Object) bool { return obj.ViewRestricted() }
func (c *PagesCapability) AuthorizeStore() bool                   { return true }
func (c *PagesCapability) AuthorizeUpdate(resource.Object) bool   { return true }
func (c *PagesCapability) AuthorizeDelete(resource.Object) bool   { return true }

func (c *PagesCapability) entity(obj resource.Object) (*content.Page, error) {
	po, ok := obj.(pageObject)
	if !ok {
		return nil, fmt.Errorf("unexpected object type %T for pages", obj)
	}
	return po.page, nil
}

type pageObject struct {
	page *content.Page
}

func (o pageObject) ResourceID() string {
	if o.page.Slug != "" {
		return o.page.Slug
	}
	return idString(o.page.ID)
}

func (o pageObject) Attributes() map[string]any {
	return map[string]any{
		"title":      o.page.Title,
		"slug":       o.page.Slug,
		"type":       o.page.Type,
		"body":       o.page.Body,
		"body_html":  o.page.BodyHTML,
		"live":       o.page.Live,
		"created_at": o.page.CreatedAt,
		"updated_at": o.page.UpdatedAt,
	}
}

func (o pageObject) ViewRestricted() bool {
	return !o.page.Live
}
