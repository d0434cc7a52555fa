package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/R2Ace/number-ninja/internal/core/domain"
)

func TestLeaderboardService_Top(t *testing.T) {
	results := newFakeResultRepo()
	results.top = []domain.LeaderboardEntry{
		{UserID: "user-1", Username: "shadow", Score: 1000, Attempts: 1},
		{UserID: "user-2", Username: "blade", Score: 800, Attempts: 2},
		{UserID: "user-3", Username: "storm", Score: 600, Attempts: 3},
	}

	svc := NewLeaderboardService(results, 2)

	entries, err := svc.Top(context.Background())
	if err != nil {
		t.Fatalf("Top returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected leaderboard capped at 2, got %d", len(entries))
	}
	if entries[0].Username != "shadow" {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}
}

func TestLeaderboardService_History(t *testing.T) {
	results := newFakeResultRepo()
	achievedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, result := range []domain.GameResult{
		{ID: "r1", UserID: "user-1", Score: 800, AttemptsUsed: 2, Won: true, AchievedAt: achievedAt},
		{ID: "r2", UserID: "user-1", Score: 0, AttemptsUsed: 5, AchievedAt: achievedAt.Add(time.Hour)},
		{ID: "r3", UserID: "user-2", Score: 1000, AttemptsUsed: 1, Won: true, AchievedAt: achievedAt},
	} {
		if err := results.Create(context.Background(), result); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	svc := NewLeaderboardService(results, 10)

	history, stats, err := svc.History(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history))
	}
	if stats.TotalGames != 2 {
		t.Fatalf("expected 2 total games, got %d", stats.TotalGames)
	}
	if stats.AverageScore != 400 {
		t.Fatalf("expected average score 400, got %f", stats.AverageScore)
	}
	if stats.AverageAttempts != 3.5 {
		t.Fatalf("expected average attempts 3.5, got %f", stats.AverageAttempts)
	}
}

func TestLeaderboardService_HistoryRequiresUser(t *testing.T) {
	svc := NewLeaderboardService(newFakeResultRepo(), 10)

	if _, _, err := svc.History(context.Background(), "  "); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
