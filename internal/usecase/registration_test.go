package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/infra/security"
)

func TestRegistrationService_Register(t *testing.T) {
	users := newFakeUserRepo()
	events := newFakeEventPublisher()
	svc := NewRegistrationService(users, events, nil, nil)

	user, err := svc.Register(context.Background(), "shadow", "shadow@example.com", "Str0ngNinja!42")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if user.Status != domain.UserStatusActive {
		t.Fatalf("expected active status, got %s", user.Status)
	}
	if user.PasswordAlgo != security.PasswordAlgo {
		t.Fatalf("unexpected password algo: %s", user.PasswordAlgo)
	}

	ok, err := security.VerifyPassword("Str0ngNinja!42", user.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}

	if len(events.registered) != 1 {
		t.Fatalf("expected registration event, got %d", len(events.registered))
	}
	if events.registered[0].Username != "shadow" {
		t.Fatalf("unexpected event payload: %+v", events.registered[0])
	}
}

func TestRegistrationService_DuplicateUsername(t *testing.T) {
	users := newFakeUserRepo(domain.User{ID: "user-1", Username: "shadow", Email: "other@example.com"})
	svc := NewRegistrationService(users, newFakeEventPublisher(), nil, nil)

	if _, err := svc.Register(context.Background(), "shadow", "new@example.com", "Str0ngNinja!42"); !errors.Is(err, ErrIdentifierTaken) {
		t.Fatalf("expected ErrIdentifierTaken, got %v", err)
	}
}

func TestRegistrationService_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo(domain.User{ID: "user-1", Username: "other", Email: "shadow@example.com"})
	svc := NewRegistrationService(users, newFakeEventPublisher(), nil, nil)

	if _, err := svc.Register(context.Background(), "shadow", "shadow@example.com", "Str0ngNinja!42"); !errors.Is(err, ErrIdentifierTaken) {
		t.Fatalf("expected ErrIdentifierTaken, got %v", err)
	}
}

func TestRegistrationService_WeakPassword(t *testing.T) {
	svc := NewRegistrationService(newFakeUserRepo(), newFakeEventPublisher(), nil, nil)

	if _, err := svc.Register(context.Background(), "shadow", "shadow@example.com", "short1"); !errors.Is(err, ErrPasswordPolicyViolation) {
		t.Fatalf("expected ErrPasswordPolicyViolation, got %v", err)
	}
}

func TestRegistrationService_MissingFields(t *testing.T) {
	svc := NewRegistrationService(newFakeUserRepo(), newFakeEventPublisher(), nil, nil)

	if _, err := svc.Register(context.Background(), "", "shadow@example.com", "Str0ngNinja!42"); err == nil {
		t.Fatalf("expected error for missing username")
	}
	if _, err := svc.Register(context.Background(), "shadow", "", "Str0ngNinja!42"); err == nil {
		t.Fatalf("expected error for missing email")
	}
}
