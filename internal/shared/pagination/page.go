// Package pagination provides the shared paged-list result type.
package pagination

// Page is one page of a larger result set.
type Page[T any] struct {
	Items          []T   `json:"items"`
	PageNumber     int   `json:"pageNumber"`
	PageSize       int   `json:"pageSize"`
	TotalPageCount int   `json:"totalPageCount"`
	TotalRowCount  int64 `json:"totalRowCount"`
}

// NewPage builds a Page from the items of the requested page and the total
// row count of the whole set.
func NewPage[T any](items []T, pageNumber, pageSize int, totalRowCount int64) Page[T] {
	totalPages := int(totalRowCount) / pageSize
	if int(totalRowCount)%pageSize != 0 {
		totalPages++
	}
	return Page[T]{
		Items:          items,
		PageNumber:     pageNumber,
		PageSize:       pageSize,
		TotalPageCount: totalPages,
		TotalRowCount:  totalRowCount,
	}
}

// Slice returns the half-open index range [lo, hi) of the requested page
// within a set of n items. Pages are 1-based.
func Slice(n, pageNumber, pageSize int) (lo, hi int) {
	lo = (pageNumber - 1) * pageSize
	if lo > n {
		lo = n
	}
	hi = lo + pageSize
	if hi > n {
		hi = n
	}
	return lo, hi
}
