package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/infra/security"
	"github.com/R2Ace/number-ninja/internal/repository"
)

var (
	// ErrIdentifierTaken indicates the username or email already belongs to an account.
	ErrIdentifierTaken = errors.New("username or email already registered")
	// ErrPasswordPolicyViolation indicates the password does not satisfy complexity requirements.
	ErrPasswordPolicyViolation = errors.New("password does not meet complexity requirements")
)

// RegistrationService handles new account onboarding.
type RegistrationService struct {
	users             port.UserRepository
	events            port.EventPublisher
	passwordValidator *security.PasswordValidator
	logger            *zap.Logger
	now               func() time.Time
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(users port.UserRepository, events port.EventPublisher, validator *security.PasswordValidator, log *zap.Logger) *RegistrationService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationService{
		users:             users,
		events:            events,
		passwordValidator: validator,
		logger:            log,
		now:               time.Now,
	}
}

// WithClock overrides the time source, primarily for tests.
func (s *RegistrationService) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Register creates a new active account.
func (s *RegistrationService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if username == "" {
		return domain.User{}, fmt.Errorf("username is required")
	}
	if email == "" {
		return domain.User{}, fmt.Errorf("email is required")
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("password is required")
	}

	if err := s.passwordValidator.Validate(password); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrPasswordPolicyViolation, err)
	}

	if existing, err := s.users.GetByIdentifier(ctx, username); err == nil && existing != nil {
		return domain.User{}, ErrIdentifierTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	}
	if existing, err := s.users.GetByIdentifier(ctx, email); err == nil && existing != nil {
		return domain.User{}, ErrIdentifierTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		PasswordAlgo: security.PasswordAlgo,
		Status:       domain.UserStatusActive,
		RegisteredAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	if s.events != nil {
		event := domain.UserRegisteredEvent{
			UserID:       user.ID,
			Username:     user.Username,
			Email:        user.Email,
			RegisteredAt: now,
		}
		if err := s.events.PublishUserRegistered(ctx, event); err != nil {
			s.logger.Warn("publish user registered failed",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return user, nil
}
