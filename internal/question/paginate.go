package question

import "strconv"

const (
	PerPage      = 20
	PerPageByTag = 10
)

// Page is one page of a listing. Out-of-range requests are clamped.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	NumPages    int   `json:"num_pages"`
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ParsePage turns a raw ?page= value into a page number; anything unusable is 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// clampPage returns the effective page and the page count. An empty listing
// still has one (empty) page.
func clampPage(page int, total int64, perPage int) (int, int) {
	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}
	return page, numPages
}

func newPage[T any](items []T, page, numPages int, total int64, perPage int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Page:        page,
		NumPages:    numPages,
		Total:       total,
		PerPage:     perPage,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}
}
