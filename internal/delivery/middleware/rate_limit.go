package middleware

import (
	"ministry/internal/domain/errors"
	"ministry/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware rejects clients that exceed the configured request rate.
type RateLimitMiddleware struct {
	limiter service.RateLimiter
}

// NewRateLimitMiddleware wraps limiter. A nil limiter admits every request.
func NewRateLimitMiddleware(limiter service.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Handle keys the limiter by client IP.
func (m *RateLimitMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	if m.limiter == nil {
		return next
	}

	return func(c echo.Context) error {
		if !m.limiter.Allow(c.Request().Context(), "ip:"+c.RealIP()) {
			return errors.ErrRateLimited
		}

		return next(c)
	}
}
