package port

import (
	"context"

	"github.com/R2Ace/number-ninja/internal/core/domain"
)

// GameSessionStore deals with active game session storage keyed by session id.
// Last write wins per key; sessions carry no cross-key invariants.
type GameSessionStore interface {
	Put(ctx context.Context, session domain.GameSession) error
	Get(ctx context.Context, sessionID string) (*domain.GameSession, error)
	Remove(ctx context.Context, sessionID string) error
}
