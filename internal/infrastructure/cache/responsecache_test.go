package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/shared/logger"
)

func newTestCache(t *testing.T) (*ResponseCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewResponseCache(client, time.Minute, true, log), mr
}

func TestListKey_SortsFiltersAndStripsPaging(t *testing.T) {
	filters := url.Values{
		"tag":      {"go"},
		"category": {"news"},
		"page":     {"2"},
		"size":     {"10"},
	}

	key := ListKey("posts", 2, 10, filters)

	assert.Equal(t, "inkwell:content:posts:list:p2:s10:category=news:tag=go", key)
	// Equivalent queries share an entry regardless of parameter order.
	assert.Equal(t, key, ListKey("posts", 2, 10, url.Values{
		"size":     {"10"},
		"tag":      {"go"},
		"page":     {"2"},
		"category": {"news"},
	}))
}

func TestItemKey(t *testing.T) {
	assert.Equal(t, "inkwell:content:posts:item:hello-world", ItemKey("posts", "hello-world"))
}

func TestRemember_ProducesThenServesFromCache(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	producer := func() (string, error) {
		calls++
		return "value", nil
	}

	first, err := Remember(ctx, c, ItemKey("posts", "one"), producer)
	require.NoError(t, err)
	assert.Equal(t, "value", first)
	assert.Equal(t, 1, calls)

	second, err := Remember(ctx, c, ItemKey("posts", "one"), producer)
	require.NoError(t, err)
	assert.Equal(t, "value", second)
	assert.Equal(t, 1, calls, "second read must come from the cache")
}

func TestRemember_ProducerErrorIsNotCached(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	producer := func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("datastore down")
		}
		return "recovered", nil
	}

	_, err := Remember(ctx, c, ItemKey("posts", "two"), producer)
	require.Error(t, err)

	value, err := Remember(ctx, c, ItemKey("posts", "two"), producer)
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, 2, calls)
}

func TestRemember_NilAndDisabledPassThrough(t *testing.T) {
	ctx := context.Background()
	calls := 0
	producer := func() (int, error) {
		calls++
		return calls, nil
	}

	var nilCache *ResponseCache
	v, err := Remember(ctx, nilCache, "whatever", producer)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	disabled := NewResponseCache(nil, time.Minute, false, log)
	v, err = Remember(ctx, disabled, "whatever", producer)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "disabled cache must always call the producer")
}

func TestRemember_UndecodableEntryIsDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := ItemKey("posts", "three")
	require.NoError(t, mr.Set(key, "{not json"))

	type payload struct {
		Title string
	}
	value, err := Remember(ctx, c, key, func() (payload, error) {
		return payload{Title: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", value.Title)

	// The bad entry was replaced by the produced value.
	stored, err := mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, stored, "fresh")
}

func TestForgetByPrefix_DropsOnlyTheResourceNamespace(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	seed := func(key string) {
		_, err := Remember(ctx, c, key, func() (string, error) { return "x", nil })
		require.NoError(t, err)
	}
	seed(ListKey("posts", 1, 15, nil))
	seed(ListKey("posts", 2, 15, nil))
	seed(ItemKey("posts", "hello"))
	seed(ItemKey("pages", "about"))

	require.NoError(t, c.ForgetByPrefix(ctx, "posts"))

	assert.False(t, mr.Exists(ListKey("posts", 1, 15, nil)))
	assert.False(t, mr.Exists(ListKey("posts", 2, 15, nil)))
	assert.False(t, mr.Exists(ItemKey("posts", "hello")))
	assert.True(t, mr.Exists(ItemKey("pages", "about")))
}

func TestForgetByPrefix_EmptyNamespaceIsFine(t *testing.T) {
	c, _ := newTestCache(t)

	assert.NoError(t, c.ForgetByPrefix(context.Background(), "posts"))
}
