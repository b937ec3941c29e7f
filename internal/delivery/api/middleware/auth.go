package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "ministry/internal/delivery/context"
	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const keyPrincipal = "principal"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthMiddleware provides middleware for bearer authentication and role checks.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// Authenticate resolves the bearer access token to an active user and stores
// it on the request. Every failure is the same 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		ctx := c.Request().Context()
		principal, err := m.authUC.Authenticate(ctx, token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).DebugContext(ctx, "Authentication rejected", slog.Any("error", err))

			return domainerrors.ErrUnauthenticated
		}

		c.Set(keyPrincipal, principal)
		deliverycontext.SetUser(c, principal.User.ID, principal.User.Role.String())

		reqLogger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", principal.User.ID.String()))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, reqLogger)))

		return next(c)
	}
}

// RequireRoles allows the request only when the authenticated user holds one
// of roles. It must be used after Authenticate.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return domainerrors.ErrUnauthenticated
			}
			if !allowed.Contains(principal.User.Role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// GetPrincipal returns the caller stored by Authenticate.
func GetPrincipal(c echo.Context) (*usecase.Principal, bool) {
	principal, ok := c.Get(keyPrincipal).(*usecase.Principal)

	return principal, ok && principal != nil && principal.User != nil
}

// GetUserID returns the authenticated user's id.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetUserID(c)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)

	return token, token != ""
}
