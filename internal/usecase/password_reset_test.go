package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/R2Ace/number-ninja/internal/infra/security"
)

func TestPasswordResetService_InitiateAndComplete(t *testing.T) {
	user := seedUser(t, "Str0ngNinja!42")
	users := newFakeUserRepo(user)
	tokens := newFakeTokenRepo()
	events := newFakeEventPublisher()
	svc := NewPasswordResetService(users, tokens, events, nil, nil, time.Hour)

	ctx := context.Background()
	initiated, err := svc.InitiateReset(ctx, "shadow")
	if err != nil {
		t.Fatalf("InitiateReset returned error: %v", err)
	}
	if initiated.Token == "" {
		t.Fatalf("expected raw reset token")
	}
	if initiated.UserID != "user-1" {
		t.Fatalf("unexpected user id: %s", initiated.UserID)
	}
	if len(events.resetRequested) != 1 {
		t.Fatalf("expected reset requested event, got %d", len(events.resetRequested))
	}

	if err := svc.CompleteReset(ctx, initiated.Token, "N3wNinjaPass!77"); err != nil {
		t.Fatalf("CompleteReset returned error: %v", err)
	}

	updated, err := users.GetByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	ok, err := security.VerifyPassword("N3wNinjaPass!77", updated.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new password does not verify: ok=%v err=%v", ok, err)
	}

	// The token is single use.
	if err := svc.CompleteReset(ctx, initiated.Token, "An0therPass!88"); !errors.Is(err, ErrPasswordResetTokenInvalid) {
		t.Fatalf("expected ErrPasswordResetTokenInvalid on reuse, got %v", err)
	}
}

func TestPasswordResetService_UnknownIdentifier(t *testing.T) {
	svc := NewPasswordResetService(newFakeUserRepo(), newFakeTokenRepo(), newFakeEventPublisher(), nil, nil, time.Hour)

	if _, err := svc.InitiateReset(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPasswordResetService_ExpiredToken(t *testing.T) {
	user := seedUser(t, "Str0ngNinja!42")
	users := newFakeUserRepo(user)
	tokens := newFakeTokenRepo()
	svc := NewPasswordResetService(users, tokens, newFakeEventPublisher(), nil, nil, time.Hour)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return base })

	initiated, err := svc.InitiateReset(context.Background(), "shadow")
	if err != nil {
		t.Fatalf("InitiateReset returned error: %v", err)
	}

	svc.WithClock(func() time.Time { return base.Add(2 * time.Hour) })

	if err := svc.CompleteReset(context.Background(), initiated.Token, "N3wNinjaPass!77"); !errors.Is(err, ErrPasswordResetTokenExpired) {
		t.Fatalf("expected ErrPasswordResetTokenExpired, got %v", err)
	}
}

func TestPasswordResetService_UnknownToken(t *testing.T) {
	svc := NewPasswordResetService(newFakeUserRepo(), newFakeTokenRepo(), newFakeEventPublisher(), nil, nil, time.Hour)

	if err := svc.CompleteReset(context.Background(), "bogus-token", "N3wNinjaPass!77"); !errors.Is(err, ErrPasswordResetTokenInvalid) {
		t.Fatalf("expected ErrPasswordResetTokenInvalid, got %v", err)
	}
}

func TestPasswordResetService_WeakNewPassword(t *testing.T) {
	user := seedUser(t, "Str0ngNinja!42")
	users := newFakeUserRepo(user)
	tokens := newFakeTokenRepo()
	svc := NewPasswordResetService(users, tokens, newFakeEventPublisher(), nil, nil, time.Hour)

	initiated, err := svc.InitiateReset(context.Background(), "shadow")
	if err != nil {
		t.Fatalf("InitiateReset returned error: %v", err)
	}

	if err := svc.CompleteReset(context.Background(), initiated.Token, "short1"); !errors.Is(err, ErrNewPasswordInvalid) {
		t.Fatalf("expected ErrNewPasswordInvalid, got %v", err)
	}
}
