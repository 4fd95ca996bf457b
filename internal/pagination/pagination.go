// Package pagination parses listing query parameters and builds page metadata.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is used when limit is missing or not a number.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
	// MaxPage caps the page number so that the skip offset stays in range.
	MaxPage = math.MaxInt32
	// DefaultSortBy is the sort key used when none or an unknown one is requested.
	DefaultSortBy = "createdAt"
)

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	// Asc sorts ascending.
	Asc SortOrder = "asc"
	// Desc sorts descending.
	Desc SortOrder = "desc"
)

// Params holds parsed listing parameters.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// Skip returns the number of documents to skip for the current page. The
// result saturates at math.MaxInt64.
func (p Params) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	pages := int64(p.Page - 1)
	if pages > math.MaxInt64/int64(p.Limit) {
		return math.MaxInt64
	}
	return pages * int64(p.Limit)
}

// Direction returns 1 for ascending and -1 for descending.
func (p Params) Direction() int {
	if p.SortOrder == Asc {
		return 1
	}
	return -1
}

// WithAllowedSort replaces SortBy with DefaultSortBy unless it is in allowed.
func (p Params) WithAllowedSort(allowed ...string) Params {
	for _, key := range allowed {
		if p.SortBy == key {
			return p
		}
	}
	p.SortBy = DefaultSortBy
	return p
}

// Meta is the pagination block returned with every listing.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// Parse reads page, limit, sortBy and sortOrder from query. Garbage values
// fall back to defaults and out of range values are clamped.
func Parse(query url.Values) Params {
	page := atoiOr(query.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}

	limit := atoiOr(query.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortBy := strings.TrimSpace(query.Get("sortBy"))
	if sortBy == "" {
		sortBy = DefaultSortBy
	}

	sortOrder := Desc
	if strings.EqualFold(query.Get("sortOrder"), string(Asc)) {
		sortOrder = Asc
	}

	return Params{Page: page, Limit: limit, SortBy: sortBy, SortOrder: sortOrder}
}

// NewMeta builds page metadata. TotalPages is ceil(total/limit).
func NewMeta(total int64, page, limit int) Meta {
	if limit < 1 {
		limit = 1
	}
	return Meta{
		CurrentPage:  page,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

// atoiOr parses the leading integer of s, or returns def when there is none
// or it is zero.
func atoiOr(s string, def int) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || (end == 0 && (s[end] == '-' || s[end] == '+'))) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return def
	}
	return n
}
