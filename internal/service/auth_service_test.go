package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"homestay/internal/auth"
	"homestay/internal/config"
	"homestay/internal/database"
	"homestay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var authCfg = config.AuthConfig{MaxFailedLogins: 5, LockoutWindow: 15 * time.Minute}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	in := models.RegisterInput{FullName: "Admin", Email: " Admin@Example.com ", Password: "secret1"}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		pub := new(MockPublisher)
		svc := NewAuthService(repo, nil, pub, authCfg, nil)

		repo.On("GetUserByEmail", ctx, "admin@example.com").Return(nil, nil)
		repo.On("CreateUser", ctx, "Admin", "admin@example.com", mock.MatchedBy(func(hash string) bool {
			ok, _ := auth.CheckPassword(hash, "secret1")
			return ok
		})).Return(&models.User{ID: 1, FullName: "Admin", Email: "admin@example.com"}, nil)
		pub.On("PublishJSON", models.EventUserRegistered, mock.Anything).Return(nil)

		user, err := svc.Register(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewAuthService(repo, nil, nil, authCfg, nil)
		repo.On("GetUserByEmail", ctx, "admin@example.com").Return(&models.User{ID: 1}, nil)

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrEmailTaken)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ConflictOnInsert", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewAuthService(repo, nil, nil, authCfg, nil)
		repo.On("GetUserByEmail", ctx, "admin@example.com").Return(nil, nil)
		repo.On("CreateUser", ctx, "Admin", "admin@example.com", mock.Anything).
			Return(nil, database.ErrConflict)

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("Disabled", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewAuthService(repo, nil, nil, config.AuthConfig{DisableRegistration: true}, nil)

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrRegistrationClosed)
		repo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	user := &models.User{ID: 9, Email: "admin@example.com", PasswordHash: hash}
	key := "login:admin@example.com"

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockSessionStore)
		svc := NewAuthService(repo, store, nil, authCfg, nil)

		store.On("CheckRateLimit", ctx, key, 5, 15*time.Minute).Return(true, nil)
		store.On("ResetRateLimit", ctx, key).Return(nil)
		repo.On("GetUserByEmail", ctx, "admin@example.com").Return(user, nil)

		got, err := svc.Login(ctx, models.LoginInput{Email: "ADMIN@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ID)
		store.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockSessionStore)
		svc := NewAuthService(repo, store, nil, authCfg, nil)

		store.On("CheckRateLimit", ctx, key, 5, 15*time.Minute).Return(true, nil)
		repo.On("GetUserByEmail", ctx, "admin@example.com").Return(user, nil)

		_, err := svc.Login(ctx, models.LoginInput{Email: "admin@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		store.AssertNotCalled(t, "ResetRateLimit", mock.Anything, mock.Anything)
	})

	t.Run("UnknownEmailSameError", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockSessionStore)
		svc := NewAuthService(repo, store, nil, authCfg, nil)

		store.On("CheckRateLimit", ctx, "login:ghost@example.com", 5, 15*time.Minute).Return(true, nil)
		repo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, nil)

		var checkedHashes []string
		svc.checkPassword = func(hash, password string) (bool, error) {
			checkedHashes = append(checkedHashes, hash)
			return auth.CheckPassword(hash, password)
		}

		_, err := svc.Login(ctx, models.LoginInput{Email: "ghost@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, []string{auth.DummyHash()}, checkedHashes)
	})

	t.Run("Throttled", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockSessionStore)
		svc := NewAuthService(repo, store, nil, authCfg, nil)

		store.On("CheckRateLimit", ctx, key, 5, 15*time.Minute).Return(false, nil)

		_, err := svc.Login(ctx, models.LoginInput{Email: "admin@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrTooManyAttempts)
		repo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("RateLimitStoreDownStillLogsIn", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockSessionStore)
		svc := NewAuthService(repo, store, nil, authCfg, nil)

		store.On("CheckRateLimit", ctx, key, 5, 15*time.Minute).Return(false, errors.New("redis down"))
		store.On("ResetRateLimit", ctx, key).Return(errors.New("redis down"))
		repo.On("GetUserByEmail", ctx, "admin@example.com").Return(user, nil)

		_, err := svc.Login(ctx, models.LoginInput{Email: "admin@example.com", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewAuthService(repo, nil, nil, authCfg, nil)
		repo.On("GetUserByEmail", ctx, "admin@example.com").Return(nil, errors.New("db"))

		_, err := svc.Login(ctx, models.LoginInput{Email: "admin@example.com", Password: "secret1"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewAuthService(repo, nil, nil, authCfg, nil)

	repo.On("GetUserByID", ctx, int64(3)).Return(nil, nil)
	user, err := svc.CurrentUser(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, user)
}
