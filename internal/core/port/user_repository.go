package port

import (
	"context"
	"time"

	"github.com/R2Ace/number-ninja/internal/core/domain"
)

// UserRepository manages account persistence.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByIdentifier(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash, passwordAlgo string) error
	RecordLogin(ctx context.Context, userID string, at time.Time) error
}

// TokenRepository manages password reset token persistence.
type TokenRepository interface {
	CreatePasswordReset(ctx context.Context, token domain.PasswordResetToken) error
	GetPasswordResetByHash(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error)
	MarkPasswordResetUsed(ctx context.Context, tokenID string, at time.Time) error
}
