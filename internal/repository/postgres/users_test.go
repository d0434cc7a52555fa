package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/repository"
)

func newMockUserRepo(mock pgxmock.PgxPoolIface) *UserRepository {
	return &UserRepository{
		exec:    mock,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := newMockUserRepo(mock)

	registeredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := domain.User{
		ID:           "user-1",
		Username:     "shadow",
		Email:        "shadow@example.com",
		PasswordHash: "salt:hash",
		PasswordAlgo: "argon2id",
		Status:       domain.UserStatusActive,
		RegisteredAt: registeredAt,
	}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(
			user.ID,
			user.Username,
			user.Email,
			user.PasswordHash,
			user.PasswordAlgo,
			user.Status,
			user.RegisteredAt,
			(*time.Time)(nil),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByIdentifier(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := newMockUserRepo(mock)

	registeredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "username", "email", "password_hash", "password_algo", "status", "registered_at", "last_login",
	}).AddRow("user-1", "shadow", "shadow@example.com", "salt:hash", "argon2id", domain.UserStatusActive, registeredAt, nil)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, password_algo, status, registered_at, last_login FROM users`).
		WithArgs("shadow", "shadow").
		WillReturnRows(rows)

	user, err := repo.GetByIdentifier(context.Background(), "shadow")
	if err != nil {
		t.Fatalf("GetByIdentifier returned error: %v", err)
	}
	if user.ID != "user-1" || user.Email != "shadow@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Status != domain.UserStatusActive {
		t.Fatalf("expected active status, got %s", user.Status)
	}
	if user.LastLogin != nil {
		t.Fatalf("expected nil last login, got %v", user.LastLogin)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByIDMiss(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := newMockUserRepo(mock)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, password_algo, status, registered_at, last_login FROM users`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "email", "password_hash", "password_algo", "status", "registered_at", "last_login",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := newMockUserRepo(mock)

	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("new-salt:new-hash", "argon2id", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdatePassword(context.Background(), "user-1", "new-salt:new-hash", "argon2id"); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdatePasswordMiss(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := newMockUserRepo(mock)

	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("hash", "argon2id", "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.UpdatePassword(context.Background(), "ghost", "hash", "argon2id"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
