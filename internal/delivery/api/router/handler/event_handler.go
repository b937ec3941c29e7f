package handler

import (
	"net/http"

	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// EventHandler serves the event calendar and reservations.
type EventHandler struct {
	eventUC usecase.EventUsecase
}

// NewEventHandler is the constructor for EventHandler
func NewEventHandler(eventUC usecase.EventUsecase) *EventHandler {
	return &EventHandler{eventUC: eventUC}
}

// List handles GET /events. lat and lng only filter when both are present.
func (h *EventHandler) List(c echo.Context) error {
	var (
		input    usecase.ListEventsInput
		lat, lng float64
	)
	b := bindPage(echo.QueryParamsBinder(c), &input.PageInput).
		String("category", &input.Category).
		Bool("upcoming", &input.Upcoming).
		Float64("radius_km", &input.RadiusKM).
		Float64("lat", &lat).
		Float64("lng", &lng)
	if err := b.BindError(); err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	if c.QueryParam("lat") != "" && c.QueryParam("lng") != "" {
		input.Latitude = &lat
		input.Longitude = &lng
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.eventUC.List(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrEventNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	event, err := h.eventUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, event)
}

// Create handles POST /events
func (h *EventHandler) Create(c echo.Context) error {
	var input usecase.CreateEventInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	event, err := h.eventUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, event)
}

// Update handles PATCH /events/:id
func (h *EventHandler) Update(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrEventNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateEventInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	event, err := h.eventUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, event)
}

// RSVP handles POST /events/:id/rsvp
func (h *EventHandler) RSVP(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrEventNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.RSVPInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	rsvp, err := h.eventUC.RSVP(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, rsvp)
}

// ListRSVPs handles GET /events/:id/rsvps
func (h *EventHandler) ListRSVPs(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrEventNotFound)
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

	rsvps, err := h.eventUC.ListRSVPs(c.Request().Context(), id, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, rsvps)
}

// QRCode handles GET /events/:id/qrcode and returns a PNG.
func (h *EventHandler) QRCode(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrEventNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.eventUC.QRCode(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}
