package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	mockRepo "crm/internal/mocks/repository"
	mockSvc "crm/internal/mocks/service"
	"crm/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service     usecase.AuthUsecase
	userRepo    *mockRepo.MockUserRepository
	hasher      *mockSvc.MockPasswordHasher
	tokenIssuer *mockSvc.MockTokenIssuer
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenIssuer := mockSvc.NewMockTokenIssuer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewAuthService(AuthServiceParams{
		UserRepo:    userRepo,
		Hasher:      hasher,
		TokenIssuer: tokenIssuer,
		Logger:      logger,
	})

	return authServiceFixtures{
		service:     svc,
		userRepo:    userRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
	}
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "User",
		Password: "Password123!",
	}

	fixtures.userRepo.On("FindByUsername", ctx, "alice").
		Return(nil, repository.ErrUserNotFound).Once()
	fixtures.hasher.On("Hash", "Password123!").
		Return("$2a$12$hashed", nil).Once()
	fixtures.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = 7
		}).
		Return(nil).Once()

	user, err := fixtures.service.RegisterUser(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Equal(t, "$2a$12$hashed", user.PasswordHash)
	assert.Equal(t, time.UTC, user.CreatedAt.Location())
}

func TestAuthService_RegisterUser_BlankUsername(t *testing.T) {
	fixtures := createTestAuthService(t)

	_, err := fixtures.service.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Username: "   ",
		Email:    "alice@example.com",
		Role:     "User",
		Password: "Password123!",
	})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	fixtures.userRepo.AssertNotCalled(t, "FindByUsername")
	fixtures.userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_RegisterUser_UsernameTaken(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.userRepo.On("FindByUsername", ctx, "alice").
		Return(&entity.User{ID: 1, Username: "alice"}, nil).Once()

	_, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "User",
		Password: "Password123!",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	fixtures.userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_RegisterUser_StoreConflictPassesThrough(t *testing.T) {
	// Two registrations can race past the pre-check; the unique index turns
	// the loser's insert into the same conflict error.
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.userRepo.On("FindByUsername", ctx, "alice").
		Return(nil, repository.ErrUserNotFound).Once()
	fixtures.hasher.On("Hash", "Password123!").
		Return("$2a$12$hashed", nil).Once()
	fixtures.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUsernameTaken.WrapMessage("username already taken")).Once()

	_, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "User",
		Password: "Password123!",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAuthService_RegisterUser_StoreFailureIsInternal(t *testing.T) {
	// A broken connection is not a conflict; it must surface as an opaque
	// internal error rather than pass through to the caller.
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.userRepo.On("FindByUsername", ctx, "alice").
		Return(nil, repository.ErrUserNotFound).Once()
	fixtures.hasher.On("Hash", "Password123!").
		Return("$2a$12$hashed", nil).Once()
	fixtures.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.NewDatabaseExecuteError(errors.New("connection reset by peer"), "failed to create user")).Once()

	_, err := fixtures.service.RegisterUser(ctx, &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "User",
		Password: "Password123!",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)
	assert.NotErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAuthService_Login_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour).UTC()

	user := &entity.User{ID: 3, Username: "alice", Role: entity.RoleAdmin, PasswordHash: "$2a$12$hashed"}
	fixtures.userRepo.On("FindByUsername", ctx, "alice").Return(user, nil).Once()
	fixtures.hasher.On("Verify", "$2a$12$hashed", "Password123!").
		Return(service.VerifySuccess).Once()
	fixtures.tokenIssuer.On("Issue", user).Return("signed-token", expiresAt, nil).Once()

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, expiresAt, output.ExpiresAt)
	assert.Equal(t, user, output.User)
}

func TestAuthService_Login_UnknownUserAndWrongPasswordLookIdentical(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.userRepo.On("FindByUsername", ctx, "ghost").
		Return(nil, repository.ErrUserNotFound).Once()
	_, unknownErr := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "ghost",
		Password: "whatever",
	})

	user := &entity.User{ID: 3, Username: "alice", PasswordHash: "$2a$12$hashed"}
	fixtures.userRepo.On("FindByUsername", ctx, "alice").Return(user, nil).Once()
	fixtures.hasher.On("Verify", "$2a$12$hashed", "wrong").
		Return(service.VerifyFailed).Once()
	_, wrongErr := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_Login_BlankCredentials(t *testing.T) {
	fixtures := createTestAuthService(t)

	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	fixtures.userRepo.AssertNotCalled(t, "FindByUsername")
}

func TestAuthService_Login_RehashesOutdatedHash(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour).UTC()

	user := &entity.User{ID: 3, Username: "alice", PasswordHash: "$2a$10$oldhash"}
	fixtures.userRepo.On("FindByUsername", ctx, "alice").Return(user, nil).Once()
	fixtures.hasher.On("Verify", "$2a$10$oldhash", "Password123!").
		Return(service.VerifySuccessRehashNeeded).Once()
	fixtures.hasher.On("Hash", "Password123!").Return("$2a$12$newhash", nil).Once()
	fixtures.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.ID == 3 && u.PasswordHash == "$2a$12$newhash"
	})).Return(nil).Once()
	fixtures.tokenIssuer.On("Issue", user).Return("signed-token", expiresAt, nil).Once()

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, "$2a$12$newhash", user.PasswordHash)
}

func TestAuthService_Login_RehashFailureDoesNotFailLogin(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour).UTC()

	user := &entity.User{ID: 3, Username: "alice", PasswordHash: "$2a$10$oldhash"}
	fixtures.userRepo.On("FindByUsername", ctx, "alice").Return(user, nil).Once()
	fixtures.hasher.On("Verify", "$2a$10$oldhash", "Password123!").
		Return(service.VerifySuccessRehashNeeded).Once()
	fixtures.hasher.On("Hash", "Password123!").Return("$2a$12$newhash", nil).Once()
	fixtures.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).
		Return(errors.New("connection reset")).Once()
	fixtures.tokenIssuer.On("Issue", user).Return("signed-token", expiresAt, nil).Once()

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
}

func TestAuthService_GetUserByUsername_Blank(t *testing.T) {
	fixtures := createTestAuthService(t)

	_, err := fixtures.service.GetUserByUsername(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	fixtures.userRepo.AssertNotCalled(t, "FindByUsername")
}
