package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse is the pager state handed to list templates
type PaginationResponse struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// HasPrev reports whether a previous page exists
func (p PaginationResponse) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists
func (p PaginationResponse) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p PaginationResponse) PrevPage() int {
	return p.Page - 1
}

func (p PaginationResponse) NextPage() int {
	return p.Page + 1
}

// NewPaginationResponse computes the page count for total items
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	pages := 0
	if params.Limit > 0 {
		pages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}
	return PaginationResponse{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: pages,
	}
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}
