package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/repository"
)

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository wires a PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	if tx == nil {
		return r
	}
	return &UserRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

var userColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"password_algo",
	"status",
	"registered_at",
	"last_login",
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	var emailValue any
	if user.Email != "" {
		emailValue = user.Email
	}

	query := r.builder.Insert("users").
		Columns(userColumns...).
		Values(
			user.ID,
			user.Username,
			emailValue,
			user.PasswordHash,
			user.PasswordAlgo,
			user.Status,
			user.RegisteredAt,
			user.LastLogin,
		)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	return r.scanUser(r.exec.QueryRow(ctx, stmt, args...), "scan user")
}

// GetByIdentifier retrieves a user by username or email.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("users").
		Where(squirrel.Or{
			squirrel.Eq{"username": identifier},
			squirrel.Eq{"email": identifier},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user by identifier sql: %w", err)
	}

	return r.scanUser(r.exec.QueryRow(ctx, stmt, args...), "scan user by identifier")
}

// UpdatePassword replaces the stored credential for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash, passwordAlgo string) error {
	stmt, args, err := r.builder.Update("users").
		Set("password_hash", passwordHash).
		Set("password_algo", passwordAlgo).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update password sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// RecordLogin stamps the user's last successful login.
func (r *UserRepository) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	stmt, args, err := r.builder.Update("users").
		Set("last_login", at).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build record login sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("record login: %w", err)
	}

	return nil
}

func (r *UserRepository) scanUser(row pgx.Row, op string) (*domain.User, error) {
	var (
		email     sql.NullString
		lastLogin *time.Time
		user      domain.User
	)

	if err := row.Scan(
		&user.ID,
		&user.Username,
		&email,
		&user.PasswordHash,
		&user.PasswordAlgo,
		&user.Status,
		&user.RegisteredAt,
		&lastLogin,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if email.Valid {
		user.Email = email.String
	}
	user.LastLogin = lastLogin

	return &user, nil
}

var _ port.UserRepository = (*UserRepository)(nil)
