package generic

import (
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PaginationInfo is the pagination block of every list response.
type PaginationInfo struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	PageSize        int  `json:"pageSize"`
	TotalItems      int  `json:"totalItems"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Page is the list envelope: {items, pagination}.
type Page[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// Paginate slices recs into one page. page is clamped into
// [1, max(1, totalPages)]; non-positive sizes fall back to the default.
// Any positive size is honored.
func Paginate[T any](recs []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalItems := len(recs)
	totalPages := (totalItems + pageSize - 1) / pageSize

	current := page
	if current > totalPages {
		current = totalPages
	}
	if current < 1 {
		current = 1
	}

	start := (current - 1) * pageSize
	if start > totalItems {
		start = totalItems
	}
	end := min(start+pageSize, totalItems)

	items := make([]T, end-start)
	copy(items, recs[start:end])

	return Page[T]{
		Items: items,
		Pagination: PaginationInfo{
			CurrentPage:     current,
			TotalPages:      totalPages,
			PageSize:        pageSize,
			TotalItems:      totalItems,
			HasNextPage:     current < totalPages,
			HasPreviousPage: current > 1,
		},
	}
}

// ParseCount reads a positive integer the way a browser's parseInt would:
// leading whitespace is skipped and parsing stops at the first non-digit.
// Anything that yields no positive number returns def.
func ParseCount(raw string, def int) int {
	s := strings.TrimSpace(raw)
	if s != "" && s[0] == '+' {
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return def
	}
	return n
}
