package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

var (
	// ErrTokenInvalid covers malformed tokens and bad signatures.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned for a correctly signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenKindMismatch is returned when an access token is presented as a refresh token or vice versa.
	ErrTokenKindMismatch = errors.New("token kind mismatch")
)

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	TokenID   string
	SubjectID uuid.UUID
	Kind      TokenKind
	Role      string // Snapshot at issuance; authorization reloads the user.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, time-bounded session tokens.
type TokenService interface {
	// Issue signs a new token for subjectID valid for ttl.
	Issue(subjectID uuid.UUID, role string, kind TokenKind, ttl time.Duration) (string, *TokenClaims, error)

	// Verify checks signature, then expiry, then kind, stopping at the first failure.
	Verify(token string, expected TokenKind) (*TokenClaims, error)

	// AccessTTL returns the configured access token lifetime.
	AccessTTL() time.Duration

	// RefreshTTL returns the configured refresh token lifetime.
	RefreshTTL() time.Duration
}

// TokenRevoker is a denylist of token ids that outlive a logout.
type TokenRevoker interface {
	// Revoke blocks tokenID for ttl. A non-positive ttl is a no-op.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether tokenID is currently blocked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
