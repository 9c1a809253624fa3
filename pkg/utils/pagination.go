package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Pagination represents pagination parameters
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams extracts pagination parameters from request
func GetPaginationParams(c echo.Context) Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return NewPagination(page, limit)
}

func NewPagination(page, limit int) Pagination {
	if page <= 0 {
		page = 1
	}

	if limit <= 0 || limit > 100 {
		limit = 20 // Default page size
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Window returns the [start,end) bounds of the page within n items.
func (p Pagination) Window(n int) (int, int) {
	start := p.Offset
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}
