package domain

// Pagination is one page of search results.
type Pagination[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	PageCount  int `json:"page_count"`
}

// Paginate slices items into the requested page. Invalid page numbers
// default to the first page. A non-positive page size yields an empty
// page with the page count pinned to 1 rather than an error.
func Paginate[T any](items []T, pageNumber, pageSize int) Pagination[T] {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize <= 0 {
		return Pagination[T]{
			Items:      []T{},
			PageNumber: pageNumber,
			PageSize:   pageSize,
			PageCount:  1,
		}
	}

	pageCount := (len(items) + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}

	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return Pagination[T]{
			Items:      []T{},
			PageNumber: pageNumber,
			PageSize:   pageSize,
			PageCount:  pageCount,
		}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return Pagination[T]{
		Items:      items[start:end],
		PageNumber: pageNumber,
		PageSize:   pageSize,
		PageCount:  pageCount,
	}
}
