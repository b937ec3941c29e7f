package handler

import (
	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SermonHandler serves the sermon archive.
type SermonHandler struct {
	sermonUC usecase.SermonUsecase
}

// NewSermonHandler is the constructor for SermonHandler
func NewSermonHandler(sermonUC usecase.SermonUsecase) *SermonHandler {
	return &SermonHandler{sermonUC: sermonUC}
}

// List handles GET /sermons
func (h *SermonHandler) List(c echo.Context) error {
	var input usecase.ListSermonsInput
	err := bindPage(echo.QueryParamsBinder(c), &input.PageInput).
		String("speaker", &input.Speaker).
		String("series", &input.Series).
		String("tag", &input.Tag).
		BindError()
	if err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.sermonUC.List(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}

// Get handles GET /sermons/:id
func (h *SermonHandler) Get(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrSermonNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	sermon, err := h.sermonUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, sermon)
}

// Download handles POST /sermons/:id/download
func (h *SermonHandler) Download(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrSermonNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.sermonUC.RecordDownload(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, out)
}

// Create handles POST /sermons
func (h *SermonHandler) Create(c echo.Context) error {
	var input usecase.CreateSermonInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	sermon, err := h.sermonUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, sermon)
}

// Update handles PATCH /sermons/:id
func (h *SermonHandler) Update(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrSermonNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateSermonInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	sermon, err := h.sermonUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, sermon)
}
