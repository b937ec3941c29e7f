package handler

import (
	"io"
	"strings"

	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/entity"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HeaderStripeSignature carries the webhook signature computed over the raw body.
const HeaderStripeSignature = "Stripe-Signature"

// DonationHandler serves checkout creation, payment status and the payment webhook.
type DonationHandler struct {
	donationUC usecase.DonationUsecase
}

// NewDonationHandler is the constructor for DonationHandler
func NewDonationHandler(donationUC usecase.DonationUsecase) *DonationHandler {
	return &DonationHandler{donationUC: donationUC}
}

// CreateCheckout handles POST /donations/checkout
func (h *DonationHandler) CreateCheckout(c echo.Context) error {
	var input usecase.CheckoutInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.donationUC.CreateCheckout(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, out)
}

// GetStatus handles GET /donations/status/:session_id
func (h *DonationHandler) GetStatus(c echo.Context) error {
	sessionID := strings.TrimSpace(c.Param("session_id"))
	if sessionID == "" {
		return response.HandleAppError(c, domainerrors.ErrDonationNotFound)
	}

	out, err := h.donationUC.GetStatus(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, out)
}

// Webhook handles POST /webhook/stripe. The body must reach the usecase
// unmodified because the signature covers the exact bytes.
func (h *DonationHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errors.Wrap(err, "read webhook body")
	}

	out, err := h.donationUC.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get(HeaderStripeSignature))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, out)
}

// List handles GET /donations
func (h *DonationHandler) List(c echo.Context) error {
	var (
		input  usecase.ListDonationsInput
		status string
	)
	err := bindPage(echo.QueryParamsBinder(c), &input.PageInput).
		String("status", &status).
		BindError()
	if err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	input.Status = entity.PaymentStatus(status)
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	donations, err := h.donationUC.List(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, donations)
}
