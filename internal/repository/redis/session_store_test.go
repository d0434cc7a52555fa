package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/repository"
)

func newTestRedis(t *testing.T) (*red.Client, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := red.NewClient(&red.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})

	return client, server
}

func testSession(id string) domain.GameSession {
	return domain.GameSession{
		SessionID:    id,
		Target:       500,
		Difficulty:   domain.DifficultyNinja,
		MinNumber:    1,
		MaxNumber:    1000,
		MaxAttempts:  5,
		AttemptsUsed: 2,
		Status:       domain.GameStatusActive,
		UserID:       "player-1",
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSessionStore_PutAndGet(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewSessionStore(client, "ninja:session", time.Hour)

	ctx := context.Background()
	original := testSession("sess-1")

	if err := store.Put(ctx, original); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	loaded, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if loaded.Target != original.Target || loaded.AttemptsUsed != original.AttemptsUsed {
		t.Fatalf("loaded session mismatch: %+v", loaded)
	}
	if loaded.Status != domain.GameStatusActive {
		t.Fatalf("expected active status, got %s", loaded.Status)
	}
	if !loaded.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", original.CreatedAt, loaded.CreatedAt)
	}
}

func TestSessionStore_PutOverwrites(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewSessionStore(client, "ninja:session", time.Hour)

	ctx := context.Background()
	first := testSession("sess-1")
	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	second := first
	second.Target = 42
	second.AttemptsUsed = 0
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	loaded, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if loaded.Target != 42 || loaded.AttemptsUsed != 0 {
		t.Fatalf("expected overwritten session, got %+v", loaded)
	}
}

func TestSessionStore_GetMiss(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewSessionStore(client, "ninja:session", time.Hour)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStore_TTLApplied(t *testing.T) {
	client, server := newTestRedis(t)
	ttl := 30 * time.Minute
	store := NewSessionStore(client, "ninja:session", ttl)

	if err := store.Put(context.Background(), testSession("sess-ttl")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	remaining := server.TTL("ninja:session:sess-ttl")
	if remaining <= 0 || remaining > ttl {
		t.Fatalf("expected ttl within (0, %v], got %v", ttl, remaining)
	}
}

func TestSessionStore_Remove(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewSessionStore(client, "ninja:session", time.Hour)

	ctx := context.Background()
	if err := store.Put(ctx, testSession("sess-1")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if err := store.Remove(ctx, "sess-1"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}

	// Removing again is a no-op.
	if err := store.Remove(ctx, "sess-1"); err != nil {
		t.Fatalf("Remove of absent session returned error: %v", err)
	}
}
