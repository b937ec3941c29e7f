// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ministry/internal/domain/entity"
	"ministry/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string      `json:"email" validate:"required,email,max=254"`
	Password string      `json:"password" validate:"required,max=128"`
	FullName string      `json:"full_name" validate:"required,max=100"`
	Role     entity.Role `json:"role" validate:"omitempty,oneof=member volunteer pastor admin guest"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries the refresh token exchanged for a new access token.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutInput identifies the tokens to denylist. AccessClaims come from the
// authenticated request; RefreshToken is optional.
type LogoutInput struct {
	AccessClaims *service.TokenClaims `json:"-"`
	RefreshToken string               `json:"refresh_token"`
}

// --- Output DTOs ---

// TokenOutput is the bearer token response returned by register, login and refresh.
type TokenOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	User   *entity.User
	Claims *service.TokenClaims
}

// AuthUsecase defines the account and session operations.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*TokenOutput, error)
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*TokenOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error

	// Authenticate resolves a bearer access token to an active user.
	// Every failure is reported as ErrUnauthenticated.
	Authenticate(ctx context.Context, accessToken string) (*Principal, error)

	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// EnsureAdmin creates the configured bootstrap administrator if it does not exist yet.
	EnsureAdmin(ctx context.Context) error
}
