package shared

import (
	"context"

	"github.com/google/uuid"
)

// Pagination defaults applied to every list endpoint
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, int64, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Filter represents query filter options
type Filter struct {
	Page     int
	Limit    int
	OrderBy  string
	OrderDir string
	Search   string
	Status   Status
	Filters  map[string]any
}

// NewFilter builds a filter with page and limit normalized: page defaults to
// 1, limit defaults to 10 and is clamped to 100. The status filter is applied
// only for the literal values "active" and "inactive".
func NewFilter(page, limit int, status, search string) Filter {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	f := Filter{
		Page:     page,
		Limit:    limit,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   search,
		Filters:  make(map[string]any),
	}
	if s, ok := StatusFilter(status); ok {
		f.Status = s
	}
	return f
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// With sets a named filter and returns the filter for chaining
func (f Filter) With(key string, value any) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	f.Filters[key] = value
	return f
}

// Pagination is the pagination block returned by list endpoints
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination computes the pagination block for a page of results
func NewPagination(page, limit int, total int64) Pagination {
	if limit < 1 {
		limit = DefaultLimit
	}
	totalPages := int(total / int64(limit))
	if total%int64(limit) > 0 {
		totalPages++
	}
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, filter Filter) Paginated[T] {
	return Paginated[T]{
		Items:      items,
		Pagination: NewPagination(filter.Page, filter.Limit, total),
	}
}
