package handler

import (
	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/entity"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// PrayerHandler serves prayer request submission and the prayer team's queue.
type PrayerHandler struct {
	prayerUC usecase.PrayerUsecase
}

// NewPrayerHandler is the constructor for PrayerHandler
func NewPrayerHandler(prayerUC usecase.PrayerUsecase) *PrayerHandler {
	return &PrayerHandler{prayerUC: prayerUC}
}

// Submit handles POST /prayers
func (h *PrayerHandler) Submit(c echo.Context) error {
	var input usecase.PrayerRequestInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	request, err := h.prayerUC.Submit(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, request)
}

// ListPublic handles GET /prayers/public
func (h *PrayerHandler) ListPublic(c echo.Context) error {
	var page usecase.PageInput
	if err := bindPage(echo.QueryParamsBinder(c), &page).BindError(); err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	if err := c.Validate(&page); err != nil {
		return response.HandleAppError(c, err)
	}

	requests, err := h.prayerUC.ListPublic(c.Request().Context(), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, requests)
}

// List handles GET /prayers
func (h *PrayerHandler) List(c echo.Context) error {
	var (
		input  usecase.ListPrayerRequestsInput
		status string
	)
	err := bindPage(echo.QueryParamsBinder(c), &input.PageInput).
		String("status", &status).
		BindError()
	if err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	input.Status = entity.PrayerStatus(status)
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	requests, err := h.prayerUC.List(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, requests)
}

// Update handles PATCH /prayers/:id
func (h *PrayerHandler) Update(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrPrayerRequestNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdatePrayerRequestInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	request, err := h.prayerUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, request)
}
