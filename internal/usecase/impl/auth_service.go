package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"ministry/config"
	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const tokenTypeBearer = "bearer"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	revoker           service.TokenRevoker
	mail              *transactionalMail
	admin             config.AdminConfig
	minPasswordLength int
	now               func() time.Time
	logger            *slog.Logger

	// dummyHash keeps the unknown-email path as slow as a wrong password.
	dummyHashOnce sync.Once
	dummyHash     string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Revoker      service.TokenRevoker
	Notifier     service.Notifier
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return newAuthService(params, time.Now)
}

func newAuthService(params AuthServiceParams, now func() time.Time) *authService {
	return &authService{
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		revoker:           params.Revoker,
		mail:              newTransactionalMail(params.Notifier, params.Config, params.Logger),
		admin:             params.Config.Admin,
		minPasswordLength: params.Config.Auth.MinPasswordLength,
		now:               now,
		logger:            params.Logger,
	}
}

// Register creates a member account and signs the caller in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.TokenOutput, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleMember
	}
	if !role.IsValid() || !role.IsSelfAssignable() {
		return nil, domainerrors.Invalid("role", fmt.Sprintf("role %q cannot be chosen at registration", role))
	}
	if len(input.Password) < srv.minPasswordLength {
		return nil, domainerrors.Invalid("password", fmt.Sprintf("must be at least %d characters", srv.minPasswordLength))
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		requestLogger(ctx, srv.logger).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
		IsActive:     true,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("register")
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	requestLogger(ctx, srv.logger).Info("User registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", role.String()),
	)

	srv.mail.send(ctx, user.Email, "Welcome to "+srv.mail.ministry.Name, mailWelcome, user)

	return srv.issuePair(user)
}

// Login verifies credentials. Unknown emails and wrong passwords are indistinguishable.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to find user by email")
		}
		srv.hasher.Check(input.Password, srv.fallbackHash())

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	if err := srv.userRepo.UpdateLastLogin(ctx, user.ID, srv.now()); err != nil {
		requestLogger(ctx, srv.logger).Warn("Failed to stamp last login",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err),
		)
	}

	return srv.issuePair(user)
}

// Refresh exchanges a refresh token for a new access token. The refresh token stays valid.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenOutput, error) {
	claims, err := srv.tokenService.Verify(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage(err.Error())
	}

	user, err := srv.activeSubject(ctx, claims)
	if err != nil {
		return nil, err
	}

	access, _, err := srv.tokenService.Issue(user.ID, user.Role.String(), service.TokenKindAccess, srv.tokenService.AccessTTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.TokenOutput{
		AccessToken: access,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(srv.tokenService.AccessTTL().Seconds()),
	}, nil
}

// Logout denylists the caller's access token and, when supplied, their refresh token.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	if input.AccessClaims == nil {
		return domainerrors.ErrUnauthenticated
	}

	if err := srv.revoke(ctx, input.AccessClaims); err != nil {
		return err
	}

	if input.RefreshToken == "" {
		return nil
	}

	refresh, err := srv.tokenService.Verify(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		requestLogger(ctx, srv.logger).Debug("Ignoring unusable refresh token on logout", slog.Any("error", err))

		return nil
	}
	if refresh.SubjectID != input.AccessClaims.SubjectID {
		requestLogger(ctx, srv.logger).Warn("Refresh token presented on logout belongs to another user",
			slog.String("user_id", input.AccessClaims.SubjectID.String()),
		)

		return nil
	}

	return srv.revoke(ctx, refresh)
}

// Authenticate is the read-only path behind the bearer middleware.
func (srv *authService) Authenticate(ctx context.Context, accessToken string) (*usecase.Principal, error) {
	claims, err := srv.tokenService.Verify(accessToken, service.TokenKindAccess)
	if err != nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage(err.Error())
	}

	user, err := srv.activeSubject(ctx, claims)
	if err != nil {
		return nil, err
	}

	return &usecase.Principal{User: user, Claims: claims}, nil
}

// Me returns the current user.
func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound)
	}

	return user, nil
}

// EnsureAdmin creates the bootstrap administrator once.
func (srv *authService) EnsureAdmin(ctx context.Context) error {
	if srv.admin.Email == "" || srv.admin.Password == "" {
		srv.logger.Warn("Admin credentials not provided, skipping admin user creation")

		return nil
	}

	email := normalizeEmail(srv.admin.Email)
	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to look up admin user")
	}

	hash, err := srv.hasher.Hash(srv.admin.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}

	admin := &entity.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     srv.admin.Username,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := srv.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil
		}

		return errors.Wrap(err, "failed to create admin user")
	}

	srv.logger.Info("Admin user created", slog.String("email", email))

	return nil
}

// activeSubject loads the token subject. Denylisted tokens, missing users and
// inactive accounts all look like a bad token to the caller.
func (srv *authService) activeSubject(ctx context.Context, claims *service.TokenClaims) (*entity.User, error) {
	revoked, err := srv.revoker.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		requestLogger(ctx, srv.logger).Error("Failed to check token denylist", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated.WrapMessage("denylist unavailable")
	}
	if revoked {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("token revoked")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("subject not found")
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("account inactive")
	}

	return user, nil
}

func (srv *authService) revoke(ctx context.Context, claims *service.TokenClaims) error {
	ttl := claims.ExpiresAt.Sub(srv.now())
	if err := srv.revoker.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}

	return nil
}

func (srv *authService) issuePair(user *entity.User) (*usecase.TokenOutput, error) {
	access, _, err := srv.tokenService.Issue(user.ID, user.Role.String(), service.TokenKindAccess, srv.tokenService.AccessTTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refresh, _, err := srv.tokenService.Issue(user.ID, user.Role.String(), service.TokenKindRefresh, srv.tokenService.RefreshTTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	return &usecase.TokenOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(srv.tokenService.AccessTTL().Seconds()),
	}, nil
}

func (srv *authService) fallbackHash() string {
	srv.dummyHashOnce.Do(func() {
		hash, err := srv.hasher.Hash(uuid.NewString())
		if err == nil {
			srv.dummyHash = hash
		}
	})

	return srv.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
