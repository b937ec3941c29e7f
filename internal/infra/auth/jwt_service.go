// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"ministry/config"
	"ministry/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// jwtClaims is the wire form of a session token.
type jwtClaims struct {
	Kind string `json:"type"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// jwtService implements service.TokenService with HMAC-signed JWTs.
type jwtService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg.JWT, time.Now)
}

func newJWTService(cfg config.JWTConfig, now func() time.Time) (*jwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, errors.Errorf("unsupported jwt algorithm: %s", cfg.Algorithm)
	}

	return &jwtService{
		secret:     []byte(cfg.Secret),
		method:     method,
		accessTTL:  cfg.AccessTTL(),
		refreshTTL: cfg.RefreshTTL(),
		now:        now,
	}, nil
}

// Issue signs a new token. iat and exp are truncated to whole seconds as JWT requires.
func (s *jwtService) Issue(subjectID uuid.UUID, role string, kind service.TokenKind, ttl time.Duration) (string, *service.TokenClaims, error) {
	if ttl < time.Second {
		return "", nil, errors.Errorf("token ttl must be at least one second, got %s", ttl)
	}

	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)
	tokenID := uuid.NewString()

	claims := jwtClaims{
		Kind: string(kind),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to sign token")
	}

	return signed, &service.TokenClaims{
		TokenID:   tokenID,
		SubjectID: subjectID,
		Kind:      kind,
		Role:      role,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the signature first, then expiry, then kind.
func (s *jwtService) Verify(tokenString string, expected service.TokenKind) (*service.TokenClaims, error) {
	var claims jwtClaims

	// Claim validation is disabled here so that expiry is reported only for correctly signed tokens.
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}

	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "missing iat or exp")
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "malformed subject")
	}

	if !s.now().Before(claims.ExpiresAt.Time) {
		return nil, errors.WithStack(service.ErrTokenExpired)
	}

	if service.TokenKind(claims.Kind) != expected {
		return nil, errors.Wrapf(service.ErrTokenKindMismatch, "expected %s, got %s", expected, claims.Kind)
	}

	return &service.TokenClaims{
		TokenID:   claims.ID,
		SubjectID: subjectID,
		Kind:      service.TokenKind(claims.Kind),
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *jwtService) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (s *jwtService) RefreshTTL() time.Duration {
	return s.refreshTTL
}
