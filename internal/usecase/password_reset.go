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
	"github.com/R2Ace/number-ninja/internal/infra/logger"
	"github.com/R2Ace/number-ninja/internal/infra/security"
	"github.com/R2Ace/number-ninja/internal/repository"
)

const (
	defaultResetTTL      = time.Hour
	resetTokenByteLength = 32
)

var (
	// ErrPasswordResetTokenInvalid indicates the supplied reset token is invalid or already used.
	ErrPasswordResetTokenInvalid = errors.New("password reset token invalid")
	// ErrPasswordResetTokenExpired indicates the supplied token is expired.
	ErrPasswordResetTokenExpired = errors.New("password reset token expired")
	// ErrNewPasswordInvalid wraps password validation failures during a reset.
	ErrNewPasswordInvalid = errors.New("new password does not meet requirements")
)

// PasswordResetService coordinates password reset initiation and completion.
type PasswordResetService struct {
	users             port.UserRepository
	tokens            port.TokenRepository
	events            port.EventPublisher
	passwordValidator *security.PasswordValidator
	logger            *zap.Logger
	now               func() time.Time
	resetTTL          time.Duration
}

// NewPasswordResetService constructs a PasswordResetService.
func NewPasswordResetService(users port.UserRepository, tokens port.TokenRepository, events port.EventPublisher, validator *security.PasswordValidator, log *zap.Logger, resetTTL time.Duration) *PasswordResetService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}
	return &PasswordResetService{
		users:             users,
		tokens:            tokens,
		events:            events,
		passwordValidator: validator,
		logger:            log,
		now:               time.Now,
		resetTTL:          resetTTL,
	}
}

// WithClock overrides the time source, primarily for tests.
func (s *PasswordResetService) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// ResetInitiationResult describes the generated reset artifact returned to the caller.
type ResetInitiationResult struct {
	UserID    string
	RequestID string
	Token     string
	ExpiresAt time.Time
}

// InitiateReset creates a single-use password reset token for the identifier.
func (s *PasswordResetService) InitiateReset(ctx context.Context, identifier string) (*ResetInitiationResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("identifier is required")
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	raw, err := security.GenerateSecureToken(resetTokenByteLength)
	if err != nil {
		return nil, fmt.Errorf("generate reset token: %w", err)
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.resetTTL)
	token := domain.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: security.HashToken(raw),
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.CreatePasswordReset(ctx, token); err != nil {
		return nil, fmt.Errorf("store password reset token: %w", err)
	}

	if s.events != nil {
		event := domain.PasswordResetRequestedEvent{
			UserID:            user.ID,
			RequestID:         token.ID,
			MaskedDestination: logger.MaskEmail(user.Email),
			RequestedAt:       now,
			ExpiresAt:         expiresAt,
		}
		if err := s.events.PublishPasswordResetRequested(ctx, event); err != nil {
			s.logger.Warn("publish password reset requested failed",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("password reset initiated",
		zap.String("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
	)

	return &ResetInitiationResult{
		UserID:    user.ID,
		RequestID: token.ID,
		Token:     raw,
		ExpiresAt: expiresAt,
	}, nil
}

// CompleteReset redeems a raw reset token and sets the new password.
func (s *PasswordResetService) CompleteReset(ctx context.Context, rawToken, newPassword string) error {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return ErrPasswordResetTokenInvalid
	}
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}

	if err := s.passwordValidator.Validate(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrNewPasswordInvalid, err)
	}

	token, err := s.tokens.GetPasswordResetByHash(ctx, security.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPasswordResetTokenInvalid
		}
		return fmt.Errorf("lookup password reset token: %w", err)
	}

	now := s.now().UTC()
	if token.UsedAt != nil {
		return ErrPasswordResetTokenInvalid
	}
	if now.After(token.ExpiresAt) {
		return ErrPasswordResetTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, token.UserID, passwordHash, security.PasswordAlgo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.tokens.MarkPasswordResetUsed(ctx, token.ID, now); err != nil {
		s.logger.Warn("mark reset token used failed",
			zap.String("token_id", token.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("password reset completed", zap.String("user_id", token.UserID))

	return nil
}
