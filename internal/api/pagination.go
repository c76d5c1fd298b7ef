package api

import (
	"fmt"
	"net/http"
	"strconv"

	"bitsbay/internal/store"
)

const (
	defaultPageSize = 8
	maxPageSize     = 100
)

// pageParams reads the page and page_size query parameters. Page numbers are
// 1-based; the page size is clamped to [1, maxPageSize].
func pageParams(r *http.Request) (page, pageSize int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	pageSize = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = v
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}
	return page, pageSize
}

// pagePastEnd reports whether page points beyond the last page of result.
// The first page of an empty result set is still a valid page.
func pagePastEnd(page int, result store.ListingPage) bool {
	return page > 1 && len(result.Items) == 0
}

// paginatedEnvelope shapes one page of listing views into the flat
// index-keyed envelope existing clients depend on:
//
//	{"total_pages": 3, "item_0": {...}, "item_1": {...}, ...}
func paginatedEnvelope(total int64, pageSize int, items []listingView) map[string]any {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	envelope := map[string]any{
		"total_pages": totalPages,
	}
	for i, item := range items {
		envelope[fmt.Sprintf("item_%d", i)] = item
	}
	return envelope
}
