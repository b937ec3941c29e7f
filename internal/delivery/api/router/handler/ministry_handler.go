package handler

import (
	"net/http"

	"ministry/internal/delivery/api/response"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// MinistryHandler serves the banner, contact information and health endpoints.
type MinistryHandler struct {
	ministryUC usecase.MinistryUsecase
}

// NewMinistryHandler is the constructor for MinistryHandler
func NewMinistryHandler(ministryUC usecase.MinistryUsecase) *MinistryHandler {
	return &MinistryHandler{ministryUC: ministryUC}
}

// Banner handles GET /
func (h *MinistryHandler) Banner(c echo.Context) error {
	return response.OK(c, h.ministryUC.Banner(c.Request().Context()))
}

// Info handles GET /ministry/info
func (h *MinistryHandler) Info(c echo.Context) error {
	return response.OK(c, h.ministryUC.Info(c.Request().Context()))
}

// Health reports 503 while the database is unreachable so load balancers stop routing here.
func (h *MinistryHandler) Health(c echo.Context) error {
	health := h.ministryUC.Health(c.Request().Context())
	if !health.Healthy() {
		return response.Success(c, http.StatusServiceUnavailable, health)
	}

	return response.OK(c, health)
}
