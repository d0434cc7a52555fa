package domain

import "time"

// GameResult is the persisted record of a completed session attributed to a user.
type GameResult struct {
	ID           string
	UserID       string
	SessionID    string
	Difficulty   DifficultyID
	Score        int
	AttemptsUsed int
	MaxAttempts  int
	Won          bool
	Daily        bool
	AchievedAt   time.Time
}

// LeaderboardEntry is a read-only projection over won results.
// Entries order by score descending, tie-break by fewer attempts, then by
// earlier achievedAt.
type LeaderboardEntry struct {
	UserID     string
	Username   string
	Score      int
	Attempts   int
	AchievedAt time.Time
}

// HistoryEntry is a single row in a player's completed-game history.
type HistoryEntry struct {
	Date     time.Time
	Score    int
	Attempts int
}

// PlayerStats summarizes a player's completed sessions with arithmetic means.
type PlayerStats struct {
	TotalGames      int
	AverageScore    float64
	AverageAttempts float64
}
