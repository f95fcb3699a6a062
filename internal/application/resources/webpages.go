package resources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/cache"
	"inkwell/internal/resource"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

const webPagesType = "webpages"

// WebPagesCapability serves standalone site pages addressed by path. Paths
// may contain slashes, which is why identifiers arrive as wildcard segments.
type WebPagesCapability struct {
	repo   content.WebPageRepository
	cache  *cache.ResponseCache
	logger logger.Interface
}

func NewWebPagesCapability(repo content.WebPageRepository, responseCache *cache.ResponseCache, log logger.Interface) *WebPagesCapability {
	return &WebPagesCapability{
		repo:   repo,
		cache:  responseCache,
		logger: log.Named(webPagesType),
	}
}

func (c *WebPagesCapability) Type() string {
	return webPagesType
}

func (c *WebPagesCapability) FindOne(ctx context.Context, identifier string, _ url.Values) (resource.Object, error) {
	webPage, err := cache.Remember(ctx, c.cache, cache.ItemKey(webPagesType, identifier), func() (*content.WebPage, error) {
		return c.repo.FindByIDOrPath(ctx, identifier)
	})
	if err != nil {
		return nil, err
	}
	if webPage == nil {
		return nil, nil
	}
	return webPageObject{webPage: webPage}, nil
}

func (c *WebPagesCapability) FindMany(ctx context.Context, params url.Values) ([]resource.Object, resource.PageState, error) {
	p := utils.ParsePageParams(params)
	opts := content.WebPageListOptions{Page: p.Page, Size: p.Size}

	type listing struct {
		WebPages []*content.WebPage
		Total    int64
	}

	result, err := cache.Remember(ctx, c.cache, cache.ListKey(webPagesType, p.Page, p.Size, params), func() (listing, error) {
		webPages, total, err := c.repo.List(ctx, opts)
		return listing{WebPages: webPages, Total: total}, err
	})
	if err != nil {
		return nil, resource.PageState{}, err
	}

	objects := make([]resource.Object, 0, len(result.WebPages))
	for _, webPage := range result.WebPages {
		objects = append(objects, webPageObject{webPage: webPage})
	}

	return objects, resource.PageState{
		Page:     p.Page,
		Size:     p.Size,
		Total:    result.Total,
		LastPage: utils.TotalPages(result.Total, p.Size),
	}, nil
}

func (c *WebPagesCapability) Create(ctx context.Context, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	webPage := &content.WebPage{
		Title:       attrs["title"],
		Path:        normalizePath(attrs["path"]),
		Description: attrs["description"],
		Live:        utils.ParseBool(attrs["live"]),
	}

	if err := c.repo.Create(ctx, webPage); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, webPagesType)
	return webPageObject{webPage: webPage}, nil
}

func (c *WebPagesCapability) Update(ctx context.Context, obj resource.Object, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	webPage, err := c.entity(obj)
	if err != nil {
		return nil, err
	}

	if title, ok := attrs["title"]; ok {
		webPage.Title = title
	}
	if path, ok := attrs["path"]; ok {
		webPage.Path = normalizePath(path)
	}
	if description, ok := attrs["description"]; ok {
		webPage.Description = description
	}
	if live, ok := attrs["live"]; ok {
		webPage.Live = utils.ParseBool(live)
	}

	if err := c.repo.Update(ctx, webPage); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, webPagesType)
	return webPageObject{webPage: webPage}, nil
}

func (c *WebPagesCapability) Delete(ctx context.Context, obj resource.Object) (bool, error) {
	webPage, err := c.entity(obj)
	if err != nil {
		return false, err
	}

	if err := c.repo.Delete(ctx, webPage.ID); err != nil {
		return false, err
	}

	invalidate(ctx, c.cache, c.logger, webPagesType)
	return true, nil
}

func (c *WebPagesCapability) StoreRules(attrs map[string]string) validation.RuleSet {
	// Paths are normalized before uniqueness is checked.
	if path, ok := attrs["path"]; ok {
		attrs["path"] = normalizePath(path)
	}
	return validation.RuleSet{
		"title":       {"required", "max:160"},
		"path":        {"required", "max:200", "unique:webpages,path"},
		"description": {"max:500"},
		"live":        {"boolean"},
	}
}

func (c *WebPagesCapability) UpdateRules(obj resource.Object, attrs map[string]string) validation.RuleSet {
	rules := c.StoreRules(attrs).ForUpdate(attrs)
	if webPage, err := c.entity(obj); err == nil && attrs["path"] == webPage.Path {
		rules.DropRule("path", "unique")
	}
	return rules
}

func (c *WebPagesCapability) AuthorizeIndex() bool                   { return false }
func (c *WebPagesCapability) AuthorizeShow(obj resource.Object) bool { return obj.ViewRestricted() }
func (c *WebPagesCapability) AuthorizeStore() bool                   { return true }
func (c *WebPagesCapability) AuthorizeUpdate(resource.Object) bool   { return true }
func (c *WebPagesCapability) AuthorizeDelete(resource.Object) bool   { return true }

func (c *WebPagesCapability) entity(obj resource.Object) (*content.WebPage, error) {
	wo, ok := obj.(webPageObject)
	if !ok {
		return nil, fmt.Errorf("unexpected object type %T for webpages", obj)
	}
	return wo.webPage, nil
}

func normalizePath(path string) string {
	return strings.Trim(strings.TrimSpace(path), "/")
}

type webPageObject struct {
	webPage *content.WebPage
}

func (o webPageObject) ResourceID() string {
	if o.webPage.Path != "" {
		return o.webPage.Path
	}
	return idString(o.webPage.ID)
}

func (o webPageObject) Attributes() map[string]any {
	return map[string]any{
		"title":       o.webPage.Title,
		"path":        o.webPage.Path,
		"description": o.webPage.Description,
		"live":        o.webPage.Live,
		"created_at":  o.webPage.CreatedAt,
		"updated_at":  o.webPage.UpdatedAt,
	}
}

func (o webPageObject) ViewRestricted() bool {
	return !o.webPage.Live
}
