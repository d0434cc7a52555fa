package port

import (
	"context"
	"time"

	"github.com/R2Ace/number-ninja/internal/core/domain"
)

// GameResultRepository persists completed sessions and serves ranked projections.
type GameResultRepository interface {
	Create(ctx context.Context, result domain.GameResult) error
	TopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
	DailyTopN(ctx context.Context, date time.Time, n int) ([]domain.LeaderboardEntry, error)
	HistoryFor(ctx context.Context, userID string) ([]domain.HistoryEntry, domain.PlayerStats, error)
	HasDailyResult(ctx context.Context, userID string, date time.Time) (bool, error)
}
