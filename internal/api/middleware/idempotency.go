package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HeaderIdempotencyKey lets callers retry a create without registering the record twice.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// IdempotencyKey rejects malformed Idempotency-Key headers before the handler
// runs. The header is optional; when present it must be 1-128 characters of
// letters, digits, '-', '_', '.' or ':'.
func IdempotencyKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			values := c.Request().Header.Values(HeaderIdempotencyKey)
			if len(values) == 0 {
				return next(c)
			}
			if len(values) > 1 {
				return echo.NewHTTPError(http.StatusBadRequest, "multiple Idempotency-Key headers")
			}
			if !validIdempotencyKey(values[0]) {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid Idempotency-Key header")
			}
			return next(c)
		}
	}
}

func validIdempotencyKey(key string) bool {
	if key == "" || len(key) > maxIdempotencyKeyLen {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}
