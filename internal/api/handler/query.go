package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

// parseListInput reads page, size, sort and include_inactive from the query
// string. Defaults are applied by the service; only malformed values are rejected here.
//
//	?page=0&size=10&sort=name,desc&include_inactive=true
func parseListInput(c echo.Context) (ports.ListInput, error) {
	var (
		in         ports.ListInput
		violations []domain.Violation
	)

	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil || n < 0:
			violations = append(violations, domain.Violation{Field: "page", Message: "must be a non-negative integer"})
		case n > ports.MaxPageIndex:
			violations = append(violations, domain.Violation{Field: "page", Message: "must not exceed " + strconv.Itoa(ports.MaxPageIndex)})
		default:
			in.Page = n
		}
	}

	if v := c.QueryParam("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			violations = append(violations, domain.Violation{Field: "size", Message: "must be a positive integer"})
		} else {
			in.Size = n
		}
	}

	if v := c.QueryParam("sort"); v != "" {
		field, dir, hasDir := strings.Cut(v, ",")
		in.Sort = strings.TrimSpace(field)
		if hasDir {
			switch strings.ToLower(strings.TrimSpace(dir)) {
			case "asc":
			case "desc":
				in.Descending = true
			default:
				violations = append(violations, domain.Violation{Field: "sort", Message: "direction must be asc or desc"})
			}
		}
	}

	if v := c.QueryParam("include_inactive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			violations = append(violations, domain.Violation{Field: "include_inactive", Message: "must be a boolean"})
		} else {
			in.IncludeInactive = b
		}
	}

	if len(violations) > 0 {
		return in, &domain.ValidationError{Violations: violations}
	}
	return in, nil
}
