package ports

import "math"

// PageRequest carries the paging and ordering parameters of a list query.
type PageRequest struct {
	Page       int    // 0-based
	Size       int    // rows per page (capped at MaxPageSize by the service)
	Sort       string // field to order by
	Descending bool
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "name"

	// MaxPageIndex keeps page*size well inside int64 when computing the skip.
	MaxPageIndex = math.MaxInt32
)

// ListInput carries all parameters for the list endpoints.
type ListInput struct {
	PageRequest
	// IncludeInactive lists soft-deleted records too; by default only active ones are returned.
	IncludeInactive bool
}

// Page is one page of a list query.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Size       int
	TotalPages int
}
