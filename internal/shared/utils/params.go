package utils

import (
	"net/url"
	"strconv"

	"inkwell/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page int
	Size int
}

// ParsePageParams reads page and size from query parameters, applying
// defaults and capping size. Invalid or missing values fall back to defaults.
func ParsePageParams(params url.Values) Pagination {
	page := parseQueryInt(params, "page", constants.DefaultPage)
	size := parseQueryInt(params, "size", constants.DefaultPageSize)
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	return Pagination{Page: page, Size: size}
}

// ParseBool coerces the loose boolean forms accepted by the validation
// vocabulary. Anything unrecognized is false.
func ParseBool(value string) bool {
	switch value {
	case "1", "true", "True", "TRUE":
		return true
	}
	return false
}

// TotalPages calculates the number of pages covering total items.
func TotalPages(total int64, size int) int {
	if size < 1 {
		return 0
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages == 0 {
		pages = 1
	}
	return pages
}

func parseQueryInt(params url.Values, key string, defaultVal int) int {
	if val := params.Get(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}
