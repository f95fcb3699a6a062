// Package resources implements the dispatch capability for each content
// type. Capabilities translate between attribute maps and domain entities,
// own the per-type validation rules and authorization requirements, and keep
// the response cache coherent: every successful mutation drops the type's
// whole cache namespace.
package resources

import (
	"context"
	"strconv"
	"strings"

	"inkwell/internal/infrastructure/cache"
	"inkwell/internal/shared/logger"
	"inkwell/internal/shared/utils"
)

// invalidate drops every cached entry of the resource type after a mutation.
// Failures are logged, not surfaced: the mutation already succeeded.
func invalidate(ctx context.Context, c *cache.ResponseCache, log logger.Interface, resourceType string) {
	if err := c.ForgetByPrefix(ctx, resourceType); err != nil {
		log.Warnw("cache invalidation failed", "resource", resourceType, "error", err)
	}
}

// splitCSV splits a comma-separated attribute into trimmed, non-empty items.
func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// idString renders a numeric identifier for resources without a natural key.
func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// slugOr falls back to a generated slug when none was submitted.
func slugOr(submitted, title string) string {
	if strings.TrimSpace(submitted) != "" {
		return submitted
	}
	return utils.Slugify(title)
}
