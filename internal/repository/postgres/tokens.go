package postgres

import (
	"context"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/repository"
)

// TokenRepository implements port.TokenRepository using PostgreSQL.
type TokenRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTokenRepository constructs a new token repository.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance executing within the provided transaction.
func (r *TokenRepository) WithTx(tx pgx.Tx) *TokenRepository {
	if tx == nil {
		return r
	}
	return &TokenRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// CreatePasswordReset inserts a new password reset token record.
func (r *TokenRepository) CreatePasswordReset(ctx context.Context, token domain.PasswordResetToken) error {
	sql, args, err := r.builder.Insert("password_reset_tokens").
		Columns(
			"id",
			"user_id",
			"token_hash",
			"created_at",
			"expires_at",
			"used_at",
		).
		Values(
			token.ID,
			token.UserID,
			token.TokenHash,
			token.CreatedAt,
			token.ExpiresAt,
			token.UsedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert reset token sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}

	return nil
}

// GetPasswordResetByHash loads a reset token by its hash.
func (r *TokenRepository) GetPasswordResetByHash(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "token_hash", "created_at", "expires_at", "used_at").
		From("password_reset_tokens").
		Where(squirrel.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select reset token sql: %w", err)
	}

	var token domain.PasswordResetToken
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.UsedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan reset token: %w", err)
	}

	return &token, nil
}

// MarkPasswordResetUsed stamps a reset token as redeemed.
func (r *TokenRepository) MarkPasswordResetUsed(ctx context.Context, tokenID string, at time.Time) error {
	stmt, args, err := r.builder.Update("password_reset_tokens").
		Set("used_at", at).
		Where(squirrel.Eq{"id": tokenID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark reset used sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("mark reset used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.TokenRepository = (*TokenRepository)(nil)
