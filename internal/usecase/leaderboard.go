package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
)

const defaultLeaderboardSize = 10

// LeaderboardService serves ranked results and per-player history.
type LeaderboardService struct {
	results port.GameResultRepository
	size    int
}

// NewLeaderboardService constructs a LeaderboardService. A non-positive size
// falls back to the default leaderboard length.
func NewLeaderboardService(results port.GameResultRepository, size int) *LeaderboardService {
	if size <= 0 {
		size = defaultLeaderboardSize
	}
	return &LeaderboardService{results: results, size: size}
}

// Top returns the global leaderboard over won games.
func (s *LeaderboardService) Top(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	entries, err := s.results.TopN(ctx, s.size)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	return entries, nil
}

// History returns a player's completed games, newest first, with aggregate stats.
func (s *LeaderboardService) History(ctx context.Context, userID string) ([]domain.HistoryEntry, domain.PlayerStats, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.PlayerStats{}, ErrUserNotFound
	}

	history, stats, err := s.results.HistoryFor(ctx, userID)
	if err != nil {
		return nil, domain.PlayerStats{}, fmt.Errorf("query history: %w", err)
	}
	return history, stats, nil
}
