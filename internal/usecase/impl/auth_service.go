// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/infra/metrics"
	"crm/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo    repository.UserRepository
	hasher      service.PasswordHasher
	tokenIssuer service.TokenIssuer
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	Hasher      service.PasswordHasher
	TokenIssuer service.TokenIssuer
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:    params.UserRepo,
		hasher:      params.Hasher,
		tokenIssuer: params.TokenIssuer,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to
// the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser orchestrates the complete account registration process.
func (srv *authService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	if err := validateRegistration(input); err != nil {
		srv.log(ctx).Warn("Registration input invalid", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("role", input.Role))

	// Check-then-insert: the unique index on users.username remains the
	// backstop for two concurrent registrations passing this check.
	existing, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Error("Failed to check username availability", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to check username availability")
	}
	if existing != nil {
		srv.log(ctx).Warn("Username already taken", slog.String("username", input.Username))

		return nil, domainerrors.ErrUsernameTaken.WrapMessage("username " + input.Username + " is already taken")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to hash password")
	}

	now := time.Now().UTC()
	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		Role:         entity.Role(input.Role),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		// The repository translates a storage-level uniqueness violation
		// into the same conflict kind as the pre-check above.
		if isStoreConflict(err) {
			srv.log(ctx).Warn("Registration rejected by store", slog.String("username", input.Username), slog.Any("error", err))

			return nil, err
		}
		srv.log(ctx).Error("Failed to persist user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to persist user")
	}

	metrics.RegistrationsTotal.Inc()
	srv.log(ctx).Info("User registered", slog.String("username", user.Username), slog.Uint64("userID", uint64(user.ID)))

	return user, nil
}

// Login verifies the credentials and issues a bearer token. An unknown
// username and a wrong password produce the identical error so the endpoint
// cannot be used to enumerate usernames.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown username", slog.String("username", input.Username))
			metrics.LoginsTotal.WithLabelValues("failure").Inc()

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		srv.log(ctx).Error("Failed to load user for login", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to load user")
	}

	verification := srv.hasher.Verify(user.PasswordHash, input.Password)
	if verification == service.VerifyFailed {
		srv.log(ctx).Warn("Invalid password attempt", slog.String("username", input.Username))
		metrics.LoginsTotal.WithLabelValues("failure").Inc()

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	if verification == service.VerifySuccessRehashNeeded {
		srv.rehashPassword(ctx, user, input.Password)
	}

	token, expiresAt, err := srv.tokenIssuer.Issue(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to issue token")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	srv.log(ctx).Info("User logged in", slog.String("username", user.Username), slog.Uint64("userID", uint64(user.ID)))

	return &usecase.LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// rehashPassword transparently upgrades a hash produced by a superseded
// scheme. Best-effort: a persistence failure must not fail the login.
func (srv *authService) rehashPassword(ctx context.Context, user *entity.User, password string) {
	newHash, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Warn("Failed to rehash password", slog.Uint64("userID", uint64(user.ID)), slog.Any("error", err))

		return
	}

	user.PasswordHash = newHash
	user.UpdatedAt = time.Now().UTC()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to persist rehashed password", slog.Uint64("userID", uint64(user.ID)), slog.Any("error", err))

		return
	}

	srv.log(ctx).Info("Password hash upgraded", slog.Uint64("userID", uint64(user.ID)))
}

// GetUserByUsername looks up an account by username.
func (srv *authService) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("blank username")
	}

	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("no user named " + username)
		}

		return nil, domainerrors.ErrInternal.WrapMessage("failed to load user")
	}

	return user, nil
}

// isStoreConflict reports whether a repository write was rejected for a
// reason the caller may surface as-is. Anything else is an internal failure.
func isStoreConflict(err error) bool {
	return errors.Is(err, domainerrors.ErrUsernameTaken) ||
		errors.Is(err, domainerrors.ErrEmailTaken) ||
		errors.Is(err, domainerrors.ErrValidationFailed)
}

func validateRegistration(input *usecase.RegisterUserInput) error {
	switch {
	case strings.TrimSpace(input.Username) == "":
		return domainerrors.ErrValidationFailed.WithDetails("username cannot be empty")
	case strings.TrimSpace(input.Role) == "":
		return domainerrors.ErrValidationFailed.WithDetails("role cannot be empty")
	case input.Password == "":
		return domainerrors.ErrValidationFailed.WithDetails("password cannot be empty")
	}

	return nil
}
