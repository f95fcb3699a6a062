package jsonapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/resource"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestCollectionLinks_MiddlePage(t *testing.T) {
	links := CollectionLinks(mustParse(t, "/v1/posts?page=2&size=10"), resource.PageState{
		Page: 2, Size: 10, Total: 45, LastPage: 5,
	})

	assert.Equal(t, "/v1/posts?page=1&size=10", links.First)
	assert.Equal(t, "/v1/posts?page=5&size=10", links.Last)
	assert.Equal(t, "/v1/posts?page=1&size=10", links.Prev)
	assert.Equal(t, "/v1/posts?page=3&size=10", links.Next)
}

func TestCollectionLinks_FirstPageHasNoPrev(t *testing.T) {
	links := CollectionLinks(mustParse(t, "/v1/posts"), resource.PageState{
		Page: 1, Size: 15, Total: 30, LastPage: 2,
	})

	assert.Empty(t, links.Prev)
	assert.Equal(t, "/v1/posts?page=2&size=15", links.Next)
}

func TestCollectionLinks_LastPageHasNoNext(t *testing.T) {
	links := CollectionLinks(mustParse(t, "/v1/posts?page=2&size=15"), resource.PageState{
		Page: 2, Size: 15, Total: 30, LastPage: 2,
	})

	assert.Equal(t, "/v1/posts?page=1&size=15", links.Prev)
	assert.Empty(t, links.Next)
}

func TestCollectionLinks_SinglePageHasNeither(t *testing.T) {
	links := CollectionLinks(mustParse(t, "/v1/posts"), resource.PageState{
		Page: 1, Size: 15, Total: 3, LastPage: 1,
	})

	assert.Equal(t, "/v1/posts?page=1&size=15", links.First)
	assert.Equal(t, "/v1/posts?page=1&size=15", links.Last)
	assert.Empty(t, links.Prev)
	assert.Empty(t, links.Next)
}

func TestCollectionLinks_CarriesFilterParams(t *testing.T) {
	links := CollectionLinks(mustParse(t, "/v1/posts?category=go&page=1&size=10"), resource.PageState{
		Page: 1, Size: 10, Total: 20, LastPage: 2,
	})

	assert.Equal(t, "/v1/posts?category=go&page=2&size=10", links.Next)
}

func TestSelfLink(t *testing.T) {
	assert.Equal(t, "/v1/posts/hello-world", SelfLink("posts", "hello-world"))
}
