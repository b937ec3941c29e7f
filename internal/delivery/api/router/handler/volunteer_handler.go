package handler

import (
	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/entity"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// VolunteerHandler serves volunteer applications.
type VolunteerHandler struct {
	volunteerUC usecase.VolunteerUsecase
}

// NewVolunteerHandler is the constructor for VolunteerHandler
func NewVolunteerHandler(volunteerUC usecase.VolunteerUsecase) *VolunteerHandler {
	return &VolunteerHandler{volunteerUC: volunteerUC}
}

// Apply handles POST /volunteers
func (h *VolunteerHandler) Apply(c echo.Context) error {
	var input usecase.VolunteerInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	volunteer, err := h.volunteerUC.Apply(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, volunteer)
}

// List handles GET /volunteers
func (h *VolunteerHandler) List(c echo.Context) error {
	var (
		input  usecase.ListVolunteersInput
		status string
	)
	err := bindPage(echo.QueryParamsBinder(c), &input.PageInput).
		String("status", &status).
		BindError()
	if err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	input.Status = entity.VolunteerStatus(status)
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	volunteers, err := h.volunteerUC.List(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, volunteers)
}

// UpdateStatus handles PATCH /volunteers/:id
func (h *VolunteerHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrVolunteerNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateVolunteerInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	volunteer, err := h.volunteerUC.UpdateStatus(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, volunteer)
}
