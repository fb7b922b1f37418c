package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageSize is the default number of records per page
const DefaultPageSize = 10

// MaxPageSize is the maximum number of records per page
const MaxPageSize = 100

// Params represents pagination parameters
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Offset   int `json:"-"`
}

// GetParams extracts page/page_size query parameters from a request
func GetParams(c *fiber.Ctx) *Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", strconv.Itoa(DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return &Params{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// Envelope wraps a list response with pagination metadata.
// Invariants: has_next == (current_page < total_pages) and
// has_previous == (current_page > 1).
type Envelope struct {
	Count       int64       `json:"count"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
	HasNext     bool        `json:"has_next"`
	HasPrevious bool        `json:"has_previous"`
	PageSize    int         `json:"page_size"`
	Results     interface{} `json:"results"`
}

// NewEnvelope builds the envelope for one page of results
func NewEnvelope(results interface{}, params *Params, total int64) *Envelope {
	totalPages := int(total) / params.PageSize
	if int(total)%params.PageSize > 0 {
		totalPages++
	}

	return &Envelope{
		Count:       total,
		CurrentPage: params.Page,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
		PageSize:    params.PageSize,
		Results:     results,
	}
}
