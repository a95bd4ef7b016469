package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// ListOptions carries the paging, sorting and search parameters shared by list endpoints.
type ListOptions struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// NewPagination normalises page values the same way repositories do.
func NewPagination(opts ListOptions, total int) *Pagination {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	size := opts.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return &Pagination{Page: page, PageSize: size, TotalCount: total}
}
