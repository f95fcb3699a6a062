package resource

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
)

type stubCapability struct {
	name string
}

func (s *stubCapability) Type() string { return s.name }

func (s *stubCapability) FindOne(ctx context.Context, identifier string, params url.Values) (Object, error) {
	return nil, nil
}

func (s *stubCapability) FindMany(ctx context.Context, params url.Values) ([]Object, PageState, error) {
	return nil, PageState{}, nil
}

func (s *stubCapability) Create(ctx context.Context, attrs map[string]string, principal *authorization.Principal) (Object, error) {
	return nil, nil
}

func (s *stubCapability) Update(ctx context.Context, obj Object, attrs map[string]string, principal *authorization.Principal) (Object, error) {
	return nil, nil
}

func (s *stubCapability) Delete(ctx context.Context, obj Object) (bool, error) {
	return false, nil
}

func (s *stubCapability) StoreRules(attrs map[string]string) validation.RuleSet { return nil }

func (s *stubCapability) UpdateRules(obj Object, attrs map[string]string) validation.RuleSet {
	return nil
}

func (s *stubCapability) AuthorizeIndex() bool          { return false }
func (s *stubCapability) AuthorizeShow(obj Object) bool { return false }
func (s *stubCapability) AuthorizeStore() bool          { return true }
func (s *stubCapability) AuthorizeUpdate(Object) bool   { return true }
func (s *stubCapability) AuthorizeDelete(Object) bool   { return true }

func TestRegistry_ResolveRegistered(t *testing.T) {
	registry := NewRegistry()
	posts := &stubCapability{name: "posts"}
	registry.Register(posts)

	resolved, ok := registry.Resolve("posts")
	require.True(t, ok)
	assert.Same(t, posts, resolved.(*stubCapability))
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Resolve("widgets")
	assert.False(t, ok)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	registry := NewRegistry()
	first := &stubCapability{name: "posts"}
	second := &stubCapability{name: "posts"}
	registry.Register(first)
	registry.Register(second)

	resolved, ok := registry.Resolve("posts")
	require.True(t, ok)
	assert.Same(t, second, resolved.(*stubCapability))
}

func TestRegistry_TypesSorted(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubCapability{name: "tags"})
	registry.Register(&stubCapability{name: "posts"})
	registry.Register(&stubCapability{name: "categories"})

	assert.Equal(t, []string{"categories", "posts", "tags"}, registry.Types())
}
