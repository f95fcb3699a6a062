package jsonapi

import (
	"fmt"
	"net/url"
	"strconv"

	"inkwell/internal/resource"
)

// SelfLink builds the canonical path of a single resource.
func SelfLink(resourceType, id string) string {
	return fmt.Sprintf("/v1/%s/%s", resourceType, id)
}

// CollectionLinks derives pagination links from the request URL and the page
// state. Query parameters other than page and size carry over unchanged.
// prev appears only when a previous page exists, next only when a following
// page exists, and first/last only when the total page count is known.
func CollectionLinks(requestURL *url.URL, page resource.PageState) *Links {
	links := &Links{}

	pageURL := func(n int) string {
		q := requestURL.Query()
		q.Set("page", strconv.Itoa(n))
		q.Set("size", strconv.Itoa(page.Size))
		return requestURL.Path + "?" + q.Encode()
	}

	if page.Page >= 1 {
		links.First = pageURL(1)
	}
	if page.LastPage >= 1 {
		links.Last = pageURL(page.LastPage)
	}
	if page.Page > 1 {
		links.Prev = pageURL(page.Page - 1)
	}
	if page.Page < page.LastPage {
		links.Next = pageURL(page.Page + 1)
	}

	return links
}
