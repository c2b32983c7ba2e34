package service

import (
	"context"
	"errors"
	"fmt"

	"homestay/internal/auth"
	"homestay/internal/config"
	"homestay/internal/database"
	"homestay/internal/domain"
	"homestay/internal/events"
	"homestay/internal/metrics"
	"homestay/internal/models"

	"github.com/rs/zerolog"
)

type AuthService struct {
	users         domain.UserRepository
	store         domain.SessionStore
	events        domain.EventPublisher
	config        config.AuthConfig
	logger        *zerolog.Logger
	checkPassword func(hash, password string) (bool, error)
}

func NewAuthService(
	users domain.UserRepository,
	store domain.SessionStore,
	publisher domain.EventPublisher,
	cfg config.AuthConfig,
	logger *zerolog.Logger,
) *AuthService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &AuthService{
		users:         users,
		store:         store,
		events:        publisher,
		config:        cfg,
		logger:        logger,
		checkPassword: auth.CheckPassword,
	}
}

// Register creates an account from already validated input.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	if s.config.DisableRegistration {
		return nil, ErrRegistrationClosed
	}

	email := models.NormalizeEmail(in.Email)
	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, in.FullName, email, hash)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publish(models.EventUserRegistered, events.UserPayload{UserID: user.ID, Email: user.Email})
	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login checks credentials. Unknown email and wrong password produce the
// same error. Every attempt counts against the per-email window; a
// successful login clears it.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*models.User, error) {
	email := models.NormalizeEmail(in.Email)
	key := "login:" + email

	if s.store != nil && s.config.MaxFailedLogins > 0 {
		allowed, err := s.store.CheckRateLimit(ctx, key, s.config.MaxFailedLogins, s.config.LockoutWindow)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login rate limit check failed")
		} else if !allowed {
			metrics.IncLogin("throttled")
			return nil, ErrTooManyAttempts
		}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		metrics.IncLogin("error")
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		// burn the same bcrypt cost as a wrong password
		_, _ = s.checkPassword(auth.DummyHash(), in.Password)
		metrics.IncLogin("failure")
		return nil, ErrInvalidCredentials
	}

	ok, err := s.checkPassword(user.PasswordHash, in.Password)
	if err != nil {
		metrics.IncLogin("error")
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		metrics.IncLogin("failure")
		return nil, ErrInvalidCredentials
	}

	if s.store != nil {
		if err := s.store.ResetRateLimit(ctx, key); err != nil {
			s.logger.Warn().Err(err).Msg("reset login rate limit")
		}
	}
	metrics.IncLogin("success")
	return user, nil
}

// CurrentUser returns nil when the id no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *AuthService) publish(eventType string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("publish event")
	}
}
