package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/repository"
)

const defaultSessionPrefix = "ninja:session"

// SessionStore persists active game sessions as JSON documents in Redis.
type SessionStore struct {
	client *red.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore constructs a session store with the provided key prefix and TTL.
// A zero TTL keeps sessions until they are removed explicitly.
func NewSessionStore(client *red.Client, keyPrefix string, ttl time.Duration) *SessionStore {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultSessionPrefix
	}

	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

// Put stores the session, replacing any existing session under the same id.
func (s *SessionStore) Put(ctx context.Context, session domain.GameSession) error {
	if strings.TrimSpace(session.SessionID) == "" {
		return errors.New("session id is required")
	}

	bytes, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(session.SessionID), bytes, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Get loads a session by id. Returns repository.ErrNotFound when absent or expired.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var session domain.GameSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// Remove deletes a session. Removing an absent session is not an error.
func (s *SessionStore) Remove(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, sessionID)
}

var _ port.GameSessionStore = (*SessionStore)(nil)
