package repository

// Pagination summarizes a paged listing. Pages are 1-based.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// paginate normalizes page/limit and computes the result window.
func paginate(page, limit, totalCount int) (offset int, p Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset = (page - 1) * limit
	totalPages := (totalCount + limit - 1) / limit
	return offset, Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNext:     offset+limit < totalCount,
		HasPrev:     page > 1,
	}
}
