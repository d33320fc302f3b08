package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPerPage = 100

// Pagination is the page metadata attached to every list response.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	NextPage    *int  `json:"next_page"`
	PrevPage    *int  `json:"prev_page"`
}

// pageParams reads page/per_page from the query string, clamping per_page to
// the given default and the global maximum.
func pageParams(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page = 1
	perPage = defaultPerPage
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("per_page"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= maxPerPage {
			perPage = v
		}
	}
	return page, perPage
}

// newPagination computes the page metadata for a total row count.
func newPagination(page, perPage int, total int64) Pagination {
	totalPages := int(total+int64(perPage)-1) / perPage
	p := Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		TotalCount:  total,
	}
	if page < totalPages {
		next := page + 1
		p.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}
