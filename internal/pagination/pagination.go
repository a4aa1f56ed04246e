package pagination

import "dota-tracker/internal/constants"

// Page is one window of an ordered sequence plus the metadata a client needs
// to render navigation.
type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Paginate returns the window [page*perPage, page*perPage+perPage) of items,
// clamped to the sequence bounds. A page past the end yields no items but
// still reports the true totals. Negative pages are treated as 0 and a
// non-positive perPage falls back to the default page size.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if page < 0 {
		page = 0
	}
	if perPage <= 0 {
		perPage = constants.DefaultPageSize
	}

	total := len(items)
	pages := TotalPages(total, perPage)

	// Pages past the end are decided before multiplying so huge page
	// numbers cannot overflow into a negative offset.
	window := []T{}
	if page < pages {
		start := page * perPage
		window = items[start:min(start+perPage, total)]
	}

	return Page[T]{
		Items:      window,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
		HasPrev:    page > 0,
		HasNext:    page < pages-1,
	}
}

func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total-1)/perPage + 1
}
