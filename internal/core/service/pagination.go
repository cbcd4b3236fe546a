package service

import (
	"slices"
	"strconv"
	"strings"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

// normalizePage applies defaults and caps to a page request and rejects
// sort fields outside the allowed set.
func normalizePage(p ports.PageRequest, sortable []string) (ports.PageRequest, error) {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > ports.MaxPageIndex {
		return p, &domain.ValidationError{Violations: []domain.Violation{{
			Field:   "page",
			Message: "must not exceed " + strconv.Itoa(ports.MaxPageIndex),
		}}}
	}
	if p.Size <= 0 {
		p.Size = ports.DefaultPageSize
	}
	if p.Size > ports.MaxPageSize {
		p.Size = ports.MaxPageSize
	}
	if p.Sort == "" {
		p.Sort = ports.DefaultSort
	}
	if !slices.Contains(sortable, p.Sort) {
		return p, &domain.ValidationError{Violations: []domain.Violation{{
			Field:   "sort",
			Message: "must be one of: " + strings.Join(sortable, ", "),
		}}}
	}
	return p, nil
}

func newPage[T any](items []T, total int64, p ports.PageRequest) *ports.Page[T] {
	totalPages := 0
	if p.Size > 0 {
		totalPages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return &ports.Page[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Size:       p.Size,
		TotalPages: totalPages,
	}
}
