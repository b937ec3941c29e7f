package handler

import (
	"log/slog"

	"ministry/internal/delivery/api/middleware"
	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler handles registration, sign-in and session endpoints.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	tokens, err := h.authUC.Register(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, tokens)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	tokens, err := h.authUC.Login(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, tokens)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var input usecase.RefreshInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	tokens, err := h.authUC.Refresh(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, tokens)
}

// Logout handles POST /auth/logout. The body is optional.
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	input := usecase.LogoutInput{AccessClaims: principal.Claims}
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&input); err != nil {
			return response.HandleAppError(c, domainerrors.Invalid("body", "malformed request body"))
		}
	}
	input.AccessClaims = principal.Claims

	if err := h.authUC.Logout(c.Request().Context(), &input); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Logged out")
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	user, err := h.authUC.Me(c.Request().Context(), principal.User.ID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, user)
}
