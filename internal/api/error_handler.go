package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vollmed/registry-api/internal/api/metrics"
	"github.com/vollmed/registry-api/internal/core/domain"
)

// errorResponse is the envelope for every failure that is not a field
// violation or a missing record.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - renders validation failures as a 400 list of {field, message}.
//   - answers unknown identifiers with an empty-bodied 404.
//   - logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			metrics.ValidationFailuresTotal.WithLabelValues(c.Path()).Inc()
			_ = c.JSON(http.StatusBadRequest, ve.Violations)
			return
		}

		if errors.Is(err, domain.ErrNotFound) {
			_ = c.NoContent(http.StatusNotFound)
			return
		}

		if errors.Is(err, domain.ErrCreateInProgress) {
			_ = c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, unknown routes, wrong method).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
