package handler

import (
	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/entity"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LiveStreamHandler serves broadcasts and their chat.
type LiveStreamHandler struct {
	liveStreamUC usecase.LiveStreamUsecase
}

// NewLiveStreamHandler is the constructor for LiveStreamHandler
func NewLiveStreamHandler(liveStreamUC usecase.LiveStreamUsecase) *LiveStreamHandler {
	return &LiveStreamHandler{liveStreamUC: liveStreamUC}
}

// List handles GET /livestream
func (h *LiveStreamHandler) List(c echo.Context) error {
	var (
		input  usecase.ListLiveStreamsInput
		status string
	)
	err := bindPage(echo.QueryParamsBinder(c), &input.PageInput).
		String("status", &status).
		BindError()
	if err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	input.Status = entity.LiveStreamStatus(status)
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	streams, err := h.liveStreamUC.List(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, streams)
}

// Get handles GET /livestream/:id
func (h *LiveStreamHandler) Get(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrLiveStreamNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	stream, err := h.liveStreamUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, stream)
}

// Create handles POST /livestream
func (h *LiveStreamHandler) Create(c echo.Context) error {
	var input usecase.CreateLiveStreamInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	stream, err := h.liveStreamUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, stream)
}

// UpdateStatus handles PATCH /livestream/:id/status
func (h *LiveStreamHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrLiveStreamNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateLiveStreamStatusInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	stream, err := h.liveStreamUC.UpdateStatus(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, stream)
}

// PostChat handles POST /livestream/:id/chat
func (h *LiveStreamHandler) PostChat(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrLiveStreamNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.ChatMessageInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	message, err := h.liveStreamUC.PostChat(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, message)
}

// ListChat handles GET /livestream/:id/chat
func (h *LiveStreamHandler) ListChat(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrLiveStreamNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var page usecase.PageInput
	if err := bindPage(echo.QueryParamsBinder(c), &page).BindError(); err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	if err := c.Validate(&page); err != nil {
		return response.HandleAppError(c, err)
	}

	messages, err := h.liveStreamUC.ListChat(c.Request().Context(), id, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, messages)
}
