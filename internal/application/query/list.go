// Package query holds the list query parameters shared by every paginated endpoint.
package query

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// ListQuery is the common ?page&limit&status&search&sort_by&sort_order block
type ListQuery struct {
	Page      int    `form:"page" json:"page"`
	Limit     int    `form:"limit" json:"limit"`
	Status    string `form:"status" json:"status"`
	Search    string `form:"search" json:"search"`
	SortBy    string `form:"sort_by" json:"sort_by"`
	SortOrder string `form:"sort_order" json:"sort_order"`
}

// Filter converts the query into a normalized domain filter. Sort fields are
// whitelisted by the repository that executes the filter.
func (q ListQuery) Filter() shared.Filter {
	f := shared.NewFilter(q.Page, q.Limit, strings.TrimSpace(q.Status), strings.TrimSpace(q.Search))
	if by := strings.TrimSpace(q.SortBy); by != "" {
		f.OrderBy = by
	}
	if order := strings.ToLower(strings.TrimSpace(q.SortOrder)); order == "asc" || order == "desc" {
		f.OrderDir = order
	}
	return f
}
