package view

// Pagination defaults. Out-of-range requests are clamped, never rejected.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is one slice of an ordered result set.
//
// TotalItems is counted against the same predicate as the slice, so absent
// concurrent writes it matches an unpaginated fetch. Concurrent inserts can
// still shift later pages; that weak snapshot consistency is accepted.
type Page struct {
	Items      []Row `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Clamp normalizes page and pageSize to sane positive values.
func Clamp(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// NewPage assembles the pagination envelope for one fetched slice.
func NewPage(items []Row, page, pageSize int, totalItems int64) *Page {
	if items == nil {
		items = []Row{}
	}
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	return &Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
