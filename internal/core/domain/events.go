package domain

import "time"

// GameCompletedEvent captures a session reaching a terminal state.
type GameCompletedEvent struct {
	SessionID    string
	UserID       string
	Difficulty   DifficultyID
	Score        int
	AttemptsUsed int
	MaxAttempts  int
	Won          bool
	CompletedAt  time.Time
}

// DailyChallengeCompletedEvent captures a saved daily challenge run.
type DailyChallengeCompletedEvent struct {
	UserID      string
	SessionID   string
	Date        time.Time
	Score       int
	Attempts    int
	CompletedAt time.Time
}

// UserRegisteredEvent captures a new account creation.
type UserRegisteredEvent struct {
	UserID       string
	Username     string
	Email        string
	RegisteredAt time.Time
}

// PasswordResetRequestedEvent captures a password reset initiation.
type PasswordResetRequestedEvent struct {
	UserID            string
	RequestID         string
	MaskedDestination string
	RequestedAt       time.Time
	ExpiresAt         time.Time
}
