package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"inkwell/internal/shared/logger"
)

const keyRoot = "inkwell:content:"

// ResponseCache is a read-through cache over query results. A nil or disabled
// cache degrades to calling the producer directly; redis failures on the read
// path are logged, never surfaced.
type ResponseCache struct {
	client  *redis.Client
	ttl     time.Duration
	enabled bool
	logger  logger.Interface
}

func NewResponseCache(client *redis.Client, ttl time.Duration, enabled bool, log logger.Interface) *ResponseCache {
	return &ResponseCache{
		client:  client,
		ttl:     ttl,
		enabled: enabled,
		logger:  log,
	}
}

// ListKey builds the cache key for a listing. Filters are encoded in sorted
// order so equivalent queries share an entry. page and size are stripped from
// filters and added explicitly.
func ListKey(resourceType string, page, size int, filters url.Values) string {
	parts := make([]string, 0, len(filters))
	keys := make([]string, 0, len(filters))
	for k := range filters {
		if k == "page" || k == "size" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(filters[k], ","))
	}

	key := fmt.Sprintf("%s%s:list:p%d:s%d", keyRoot, resourceType, page, size)
	if len(parts) > 0 {
		key += ":" + strings.Join(parts, ":")
	}
	return key
}

// ItemKey builds the cache key for a single object lookup.
func ItemKey(resourceType, identifier string) string {
	return fmt.Sprintf("%s%s:item:%s", keyRoot, resourceType, identifier)
}

// Remember returns the cached value under key, or runs the producer and
// stores its result. The zero ResponseCache pointer and a disabled cache both
// pass straight through.
func Remember[T any](ctx context.Context, c *ResponseCache, key string, producer func() (T, error)) (T, error) {
	if c == nil || !c.enabled || c.client == nil {
		return producer()
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// Undecodable entry: drop it and fall through to the producer.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warnw("cache read failed", "key", key, "error", err)
	}

	value, err := producer()
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warnw("cache write failed", "key", key, "error", err)
		}
	}

	return value, nil
}

// ForgetByPrefix removes every cached entry for the resource type. Entries
// are keyed by page/size/filter combinations that cannot be enumerated, so
// invalidation scans the namespace.
func (c *ResponseCache) ForgetByPrefix(ctx context.Context, resourceType string) error {
	if c == nil || !c.enabled || c.client == nil {
		return nil
	}

	pattern := keyRoot + resourceType + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys for %s: %w", resourceType, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys for %s: %w", resourceType, err)
	}

	return nil
}
