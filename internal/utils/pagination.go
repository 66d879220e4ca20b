package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/ocean-hazard-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams extracts pagination parameters from the request. The
// second result is false when the caller asked for neither page nor limit,
// in which case lists are returned whole.
func GetPaginationParams(c *gin.Context) (PaginationParams, bool) {
	rawPage, hasPage := c.GetQuery("page")
	rawLimit, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}, false
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil || page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}
	// keeps (page-1)*limit from overflowing; such a page is empty anyway
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, true
}

// Paginate returns the requested window of an already ordered list.
func Paginate[T any](items []T, p PaginationParams) ([]T, PaginationResponse) {
	meta := PaginationResponse{Page: p.Page, Limit: p.Limit, Total: int64(len(items))}
	if p.Offset < 0 || p.Offset >= len(items) || p.Limit <= 0 {
		return []T{}, meta
	}
	end := len(items)
	if p.Limit < end-p.Offset {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end], meta
}
