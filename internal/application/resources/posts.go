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
	"inkwell/internal/shared/biztime"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/services/markdown"
	"inkwell/internal/shared/utils"
)

const postsType = "posts"

// PostsCapability serves blog posts. Listings are public and live-only;
// drafts are reachable by identifier but restricted to authorized viewers.
type PostsCapability struct {
	repo     content.PostRepository
	renderer markdown.Renderer
	cache    *cache.ResponseCache
	logger   logger.Interface
}

func NewPostsCapability(repo content.PostRepository, renderer markdown.Renderer, responseCache *cache.ResponseCache, log logger.Interface) *PostsCapability {
	return &PostsCapability{
		repo:     repo,
		renderer: renderer,
		cache:    responseCache,
		logger:   log.Named(postsType),
	}
}

func (c *PostsCapability) Type() string {
	return postsType
}

func (c *PostsCapability) FindOne(ctx context.Context, identifier string, _ url.Values) (resource.Object, error) {
	post, err := cache.Remember(ctx, c.cache, cache.ItemKey(postsType, identifier), func() (*content.Post, error) {
		return c.repo.FindByIDOrSlug(ctx, identifier)
	})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	return postObject{post: post}, nil
}

func (c *PostsCapability) FindMany(ctx context.Context, params url.Values) ([]resource.Object, resource.PageState, error) {
	p := utils.ParsePageParams(params)
	live := true
	opts := content.PostListOptions{
		Page:     p.Page,
		Size:     p.Size,
		Category: params.Get("category"),
		Tag:      params.Get("tag"),
		Live:     &live,
	}

	type listing struct {
		Posts []*content.Post
		Total int64
	}

	result, err := cache.Remember(ctx, c.cache, cache.ListKey(postsType, p.Page, p.Size, params), func() (listing, error) {
		posts, total, err := c.repo.List(ctx, opts)
		return listing{Posts: posts, Total: total}, err
	})
	if err != nil {
		return nil, resource.PageState{}, err
	}

	objects := make([]resource.Object, 0, len(result.Posts))
	for _, post := range result.Posts {
		objects = append(objects, postObject{post: post})
	}

	return objects, resource.PageState{
		Page:     p.Page,
		Size:     p.Size,
		Total:    result.Total,
		LastPage: utils.TotalPages(result.Total, p.Size),
	}, nil
}

func (c *PostsCapability) Create(ctx context.Context, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	bodyHTML, err := c.renderer.Render(attrs["body"])
	if err != nil {
		return nil, fmt.Errorf("failed to render post body: %w", err)
	}

	post := &content.Post{
		Title:        attrs["title"],
		Slug:         slugOr(attrs["slug"], attrs["title"]),
		Summary:      attrs["summary"],
		Body:         attrs["body"],
		BodyHTML:     bodyHTML,
		Live:         utils.ParseBool(attrs["live"]),
		CategorySlug: attrs["category"],
	}
	for _, tag := range splitCSV(attrs["tags"]) {
		post.TagSlugs = append(post.TagSlugs, utils.Slugify(tag))
	}
	if post.Live {
		now := biztime.NowUTC()
		post.PublishedAt = &now
	}

	if err := c.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, postsType)
	return postObject{post: post}, nil
}

func (c *PostsCapability) Update(ctx context.Context, obj resource.Object, attrs map[string]string, _ *authorization.Principal) (resource.Object, error) {
	post, err := c.entity(obj)
	if err != nil {
		return nil, err
	}

	if title, ok := attrs["title"]; ok {
		post.Title = title
	}
	if slug, ok := attrs["slug"]; ok {
		post.Slug = slugOr(slug, post.Title)
	}
	if summary, ok := attrs["summary"]; ok {
		post.Summary = summary
	}
	if body, ok := attrs["body"]; ok {
		bodyHTML, err := c.renderer.Render(body)
		if err != nil {
			return nil, fmt.Errorf("failed to render post body: %w", err)
		}
		post.Body = body
		post.BodyHTML = bodyHTML
	}
	if category, ok := attrs["category"]; ok {
		post.CategorySlug = category
	}
	if tags, ok := attrs["tags"]; ok {
		post.TagSlugs = nil
		for _, tag := range splitCSV(tags) {
			post.TagSlugs = append(post.TagSlugs, utils.Slugify(tag))
		}
	}
	if live, ok := attrs["live"]; ok {
		post.Live = utils.ParseBool(live)
		if post.Live && post.PublishedAt == nil {
			now := biztime.NowUTC()
			post.PublishedAt = &now
		}
	}

	if err := c.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, c.logger, postsType)
	return postObject{post: post}, nil
}

func (c *PostsCapability) Delete(ctx context.Context, obj resource.Object) (bool, error) {
	post, err := c.entity(obj)
	if err != nil {
		return false, err
	}

	if err := c.repo.Delete(ctx, post.ID); err != nil {
		return false, err
	}

	invalidate(ctx, c.cache, c.logger, postsType)
	return true, nil
}

func (c *PostsCapability) StoreRules(_ map[string]string) validation.RuleSet {
	return validation.RuleSet{
		"title":    {"required", "max:160"},
		"slug":     {"max:160", "unique:posts,slug"},
		"summary":  {"max:500"},
		"body":     {"required"},
		"live":     {"boolean"},
		"category": {"max:80"},
	}
}

func (c *PostsCapability) UpdateRules(obj resource.Object, attrs map[string]string) validation.RuleSet {
	rules := c.StoreRules(attrs).ForUpdate(attrs)
	if post, err := c.entity(obj); err == nil && attrs["slug"] == post.Slug {
		rules.DropRule("slug", "unique")
	}
	return rules
}

func (c *PostsCapability) AuthorizeIndex() bool                   { return false }
func (c *PostsCapability) AuthorizeShow(obj resource.Object) bool { return obj.ViewRestricted() }
func (c *PostsCapability) AuthorizeStore() bool                   { return true }
func (c *PostsCapability) AuthorizeUpdate(resource.Object) bool   { return true }
func (c *PostsCapability) AuthorizeDelete(resource.Object) bool   { return true }

func (c *PostsCapability) entity(obj resource.Object) (*content.Post, error) {
	po, ok := obj.(postObject)
	if !ok {
		return nil, fmt.Errorf("unexpected object type %T for posts", obj)
	}
	return po.post, nil
}

type postObject struct {
	post *content.Post
}

func (o postObject) ResourceID() string {
	if o.post.Slug != "" {
		return o.post.Slug
	}
	return idString(o.post.ID)
}

func (o postObject) Attributes() map[string]any {
	return map[string]any{
		"title":        o.post.Title,
		"slug":         o.post.Slug,
		"summary":      o.post.Summary,
		"body":         o.post.Body,
		"body_html":    o.post.BodyHTML,
		"live":         o.post.Live,
		"published_at": o.post.PublishedAt,
		"category":     o.post.CategorySlug,
		"tags":         o.post.TagSlugs,
		"created_at":   o.post.CreatedAt,
		"updated_at":   o.post.UpdatedAt,
	}
}

func (o postObject) ViewRestricted() bool {
	return !o.post.Live
}
