// Package resource defines the contract a content type implements to be
// served through the generic dispatch engine, plus the registry that resolves
// URL path segments to registered implementations.
package resource

import (
	"context"
	"net/url"

	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
)

// Object is a single domain entity as seen by the dispatch engine. The engine
// never inspects business fields; it only needs a stable identifier, the
// attribute map for encoding, and whether viewing requires authorization
// (drafts do, published content does not).
type Object interface {
	ResourceID() string
	Attributes() map[string]any
	ViewRestricted() bool
}

// PageState describes where a collection sits within its full result set.
type PageState struct {
	Page     int
	Size     int
	Total    int64
	LastPage int
}

// Capability is implemented once per content type and consumed generically by
// the dispatcher.
//
// FindOne returns (nil, nil) when nothing matches; absence is a result, not an
// error. Objects handed to Update and Delete are always ones the same
// capability returned from FindOne.
type Capability interface {
	// Type is the stable resource type name, used as the JSON:API type, the
	// authorization subject, and the cache key namespace.
	Type() string

	FindOne(ctx context.Context, identifier string, params url.Values) (Object, error)
	FindMany(ctx context.Context, params url.Values) ([]Object, PageState, error)

	Create(ctx context.Context, attrs map[string]string, principal *authorization.Principal) (Object, error)
	Update(ctx context.Context, obj Object, attrs map[string]string, principal *authorization.Principal) (Object, error)
	// Delete returns false for a non-fatal failure to delete; errors are
	// reserved for unexpected datastore conditions.
	Delete(ctx context.Context, obj Object) (bool, error)

	StoreRules(attrs map[string]string) validation.RuleSet
	// UpdateRules derives the rule set for updating obj with attrs. Uniqueness
	// rules must be dropped for fields whose submitted value matches the
	// object's stored value, so a no-op update of a unique field passes.
	UpdateRules(obj Object, attrs map[string]string) validation.RuleSet

	AuthorizeIndex() bool
	AuthorizeShow(obj Object) bool
	AuthorizeStore() bool
	AuthorizeUpdate(obj Object) bool
	AuthorizeDelete(obj Object) bool
}
