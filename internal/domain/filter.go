package domain

// ContentFilter narrows a content listing.
type ContentFilter struct {
	// Category restricts to one category or kind; empty means any.
	Category string
	// Query is a case-insensitive substring match over the kind's text columns.
	Query string
	// PublishedOnly hides drafts. Public callers always set it.
	PublishedOnly bool
}

// ListOrder selects the row order of a listing.
type ListOrder int

const (
	// OrderEditorial sorts by category, sort_order, then newest first.
	// Columns a kind lacks are skipped.
	OrderEditorial ListOrder = iota
	// OrderNewest sorts by created_at DESC, id DESC.
	OrderNewest
	// OrderOldest sorts by created_at ASC, id ASC.
	OrderOldest
	// OrderID sorts by id ASC, the cursor order.
	OrderID
	// OrderUpdated sorts by updated_at DESC, id DESC.
	OrderUpdated
)

// Page is one page of an offset-paginated listing.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// TotalPages returns ceil(total/perPage), never less than 1.
func TotalPages(total, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// ClampPage moves an out-of-range page back to the last page.
func ClampPage(page, total, perPage int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(total, perPage); total > 0 && page > last {
		return last
	}
	return page
}

// NewPage assembles page metadata around items.
func NewPage[T any](items []T, page, perPage, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := TotalPages(total, perPage)
	return Page[T]{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// EmptyPage is returned by public reads when the store is unavailable.
func EmptyPage[T any](perPage int) Page[T] {
	return NewPage[T](nil, 1, perPage, 0)
}
