package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vollmed/registry-api/internal/api/metrics"
	"github.com/vollmed/registry-api/internal/api/middleware"
	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

// PractitionerHandler handles HTTP requests for practitioner records.
type PractitionerHandler struct {
	service ports.PractitionerService
}

func NewPractitionerHandler(service ports.PractitionerService) *PractitionerHandler {
	return &PractitionerHandler{service: service}
}

// Create handles POST /practitioners.
//
// @Summary      Register a practitioner
// @Tags         practitioners
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                              false  "Replay key for safe retries"
// @Param        body             body      ports.CreatePractitionerInput       true   "Practitioner payload"
// @Success      201              {object}  practitionerDetailResponse
// @Failure      400              {array}   domain.Violation
// @Failure      409              {object}  map[string]string
// @Failure      500              {object}  map[string]string
// @Router       /practitioners [post]
func (h *PractitionerHandler) Create(c echo.Context) error {
	var req ports.CreatePractitionerInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.IdempotencyKey = c.Request().Header.Get(middleware.HeaderIdempotencyKey)

	p, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues(string(domain.KindPractitioner)).Inc()
	c.Response().Header().Set(echo.HeaderLocation, practitionerPath(p.ID))
	return c.JSON(http.StatusCreated, toPractitionerDetail(p))
}

// List handles GET /practitioners.
//
// @Summary      List practitioners
// @Description  Active practitioners only unless include_inactive=true. Default order is by name.
// @Tags         practitioners
// @Produce      json
// @Param        page              query     int     false  "Zero-based page index"
// @Param        size              query     int     false  "Page size (default 10, max 100)"
// @Param        sort              query     string  false  "Sort field with optional direction, e.g. name,desc"
// @Param        include_inactive  query     bool    false  "Include deactivated practitioners"
// @Success      200               {object}  listResponse[practitionerListItem]
// @Failure      400               {array}   domain.Violation
// @Router       /practitioners [get]
func (h *PractitionerHandler) List(c echo.Context) error {
	in, err := parseListInput(c)
	if err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(page, toPractitionerListItem))
}

// Get handles GET /practitioners/:id.
//
// @Summary      Get a practitioner by id
// @Description  Deactivated practitioners are still returned.
// @Tags         practitioners
// @Produce      json
// @Param        id   path      string  true  "Practitioner id"
// @Success      200  {object}  practitionerDetailResponse
// @Failure      404  "not found"
// @Router       /practitioners/{id} [get]
func (h *PractitionerHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPractitionerDetail(p))
}

// Update handles PUT /practitioners/:id. Only name, phone and address are
// mutable; absent fields keep their stored value.
//
// @Summary      Partially update a practitioner
// @Tags         practitioners
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "Practitioner id"
// @Param        body  body      ports.UpdatePractitionerInput  true  "Fields to change"
// @Success      200   {object}  practitionerDetailResponse
// @Failure      400   {array}   domain.Violation
// @Failure      404   "not found"
// @Router       /practitioners/{id} [put]
func (h *PractitionerHandler) Update(c echo.Context) error {
	var req ports.UpdatePractitionerInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.ID = c.Param("id")

	p, err := h.service.Update(c.Request().Context(), req)
	if err != nil {
		return err
	}

	metrics.RecordsUpdatedTotal.WithLabelValues(string(domain.KindPractitioner)).Inc()
	return c.JSON(http.StatusOK, toPractitionerDetail(p))
}

// Delete handles DELETE /practitioners/:id as a soft delete.
//
// @Summary      Deactivate a practitioner
// @Tags         practitioners
// @Param        id   path  string  true  "Practitioner id"
// @Success      204  "deactivated"
// @Failure      404  "not found"
// @Router       /practitioners/{id} [delete]
func (h *PractitionerHandler) Delete(c echo.Context) error {
	if err := h.service.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsDeactivatedTotal.WithLabelValues(string(domain.KindPractitioner)).Inc()
	return c.NoContent(http.StatusNoContent)
}
