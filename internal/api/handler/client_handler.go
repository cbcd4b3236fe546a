package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vollmed/registry-api/internal/api/metrics"
	"github.com/vollmed/registry-api/internal/api/middleware"
	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client records.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /clients.
//
// @Summary      Register a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                              false  "Replay key for safe retries"
// @Param        body             body      ports.CreateClientInput       true   "Client payload"
// @Success      201              {object}  clientDetailResponse
// @Failure      400              {array}   domain.Violation
// @Failure      409              {object}  map[string]string
// @Failure      500              {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req ports.CreateClientInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.IdempotencyKey = c.Request().Header.Get(middleware.HeaderIdempotencyKey)

	p, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues(string(domain.KindClient)).Inc()
	c.Response().Header().Set(echo.HeaderLocation, clientPath(p.ID))
	return c.JSON(http.StatusCreated, toClientDetail(p))
}

// List handles GET /clients.
//
// @Summary      List clients
// @Description  Active clients only unless include_inactive=true. Default order is by name.
// @Tags         clients
// @Produce      json
// @Param        page              query     int     false  "Zero-based page index"
// @Param        size              query     int     false  "Page size (default 10, max 100)"
// @Param        sort              query     string  false  "Sort field with optional direction, e.g. name,desc"
// @Param        include_inactive  query     bool    false  "Include deactivated clients"
// @Success      200               {object}  listResponse[clientListItem]
// @Failure      400               {array}   domain.Violation
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	in, err := parseListInput(c)
	if err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(page, toClientListItem))
}

// Get handles GET /clients/:id.
//
// @Summary      Get a client by id
// @Description  Deactivated clients are still returned.
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  clientDetailResponse
// @Failure      404  "not found"
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientDetail(p))
}

// Update handles PUT /clients/:id. Only name, phone and address are
// mutable; absent fields keep their stored value.
//
// @Summary      Partially update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "Client id"
// @Param        body  body      ports.UpdateClientInput  true  "Fields to change"
// @Success      200   {object}  clientDetailResponse
// @Failure      400   {array}   domain.Violation
// @Failure      404   "not found"
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req ports.UpdateClientInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.ID = c.Param("id")

	p, err := h.service.Update(c.Request().Context(), req)
	if err != nil {
		return err
	}

	metrics.RecordsUpdatedTotal.WithLabelValues(string(domain.KindClient)).Inc()
	return c.JSON(http.StatusOK, toClientDetail(p))
}

// Delete handles DELETE /clients/:id as a soft delete.
//
// @Summary      Deactivate a client
// @Tags         clients
// @Param        id   path  string  true  "Client id"
// @Success      204  "deactivated"
// @Failure      404  "not found"
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.service.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsDeactivatedTotal.WithLabelValues(string(domain.KindClient)).Inc()
	return c.NoContent(http.StatusNoContent)
}
