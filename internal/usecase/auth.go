package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/infra/logger"
	"github.com/R2Ace/number-ninja/internal/infra/security"
	"github.com/R2Ace/number-ninja/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the provided identifier or password are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInactiveAccount indicates the account is disabled.
	ErrInactiveAccount = errors.New("account is not active")
	// ErrInvalidAccessToken indicates the provided access token is malformed or failed validation.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrExpiredAccessToken indicates the provided access token has expired.
	ErrExpiredAccessToken = errors.New("access token expired")
	// ErrUserNotFound indicates no account matches the identifier.
	ErrUserNotFound = errors.New("user not found")
)

// AuthService coordinates login and access token validation.
type AuthService struct {
	users  port.UserRepository
	jwt    *security.JWTManager
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users port.UserRepository, jwt *security.JWTManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		jwt:    jwt,
		logger: log,
		now:    time.Now,
	}
}

// WithClock overrides the time source, primarily for tests.
func (s *AuthService) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// AuthResult bundles the issued token with the authenticated account.
type AuthResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        domain.User
}

// Authenticate validates credentials and issues an access token.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("identifier is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.Status != domain.UserStatusActive {
		return nil, ErrInactiveAccount
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	if err := s.users.RecordLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.logger.Warn("record login failed",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("user authenticated",
		zap.String("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
	)

	return &AuthResult{
		AccessToken: token,
		ExpiresIn:   s.jwt.TTL(),
		User:        *user,
	}, nil
}

// ParseAccessToken validates a bearer token and returns its claims.
func (s *AuthService) ParseAccessToken(raw string) (*security.AccessTokenClaims, error) {
	claims, err := s.jwt.Parse(raw)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return nil, ErrExpiredAccessToken
		}
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}
