package domain

import (
	"errors"
	"math"
	"time"
)

// GameStatus enumerates the session state machine states.
type GameStatus string

const (
	GameStatusActive GameStatus = "active"
	GameStatusWon    GameStatus = "won"
	GameStatusLost   GameStatus = "lost"
)

// Feedback describes the outcome of a single guess.
type Feedback string

const (
	FeedbackTooLow  Feedback = "too_low"
	FeedbackTooHigh Feedback = "too_high"
	FeedbackCorrect Feedback = "correct"
)

var (
	// ErrSessionNotActive indicates a guess was submitted against a finished session.
	ErrSessionNotActive = errors.New("game session not active")
	// ErrAttemptsExhausted indicates the attempt budget was already spent before evaluation.
	ErrAttemptsExhausted = errors.New("attempts exhausted")
)

// GameSession is the per-session aggregate mutated only by Evaluate.
// Target must never be serialized to clients while Status is active.
type GameSession struct {
	SessionID    string       `json:"session_id"`
	Target       int          `json:"target"`
	Difficulty   DifficultyID `json:"difficulty"`
	MinNumber    int          `json:"min_number"`
	MaxNumber    int          `json:"max_number"`
	MaxAttempts  int          `json:"max_attempts"`
	AttemptsUsed int          `json:"attempts_used"`
	Score        int          `json:"score"`
	Status       GameStatus   `json:"status"`
	UserID       string       `json:"user_id,omitempty"`
	Daily        bool         `json:"daily,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// IsOver reports whether the session reached a terminal state.
func (s GameSession) IsOver() bool {
	return s.Status == GameStatusWon || s.Status == GameStatusLost
}

// Evaluate applies a single guess to the session and returns the feedback plus
// the updated session. Every accepted guess consumes an attempt, including
// guesses outside [MinNumber, MaxNumber]; the range is deliberately not
// validated because clients rely on attempts decrementing unconditionally.
func Evaluate(session GameSession, guess int) (Feedback, GameSession, error) {
	if session.Status != GameStatusActive {
		return "", session, ErrSessionNotActive
	}
	if session.AttemptsUsed >= session.MaxAttempts {
		return "", session, ErrAttemptsExhausted
	}

	session.AttemptsUsed++

	switch {
	case guess == session.Target:
		session.Status = GameStatusWon
		session.Score = Score(session.AttemptsUsed, session.MaxAttempts)
		return FeedbackCorrect, session, nil
	case guess < session.Target:
		if session.AttemptsUsed >= session.MaxAttempts {
			session.Status = GameStatusLost
			session.Score = 0
		}
		return FeedbackTooLow, session, nil
	default:
		if session.AttemptsUsed >= session.MaxAttempts {
			session.Status = GameStatusLost
			session.Score = 0
		}
		return FeedbackTooHigh, session, nil
	}
}

// Score computes the points awarded for a win. Fewer attempts score higher,
// a win on the first attempt scores the maximum, and the result is
// deterministic in (attemptsUsed, maxAttempts). Losses always score zero and
// never call this function.
func Score(attemptsUsed, maxAttempts int) int {
	if maxAttempts <= 0 || attemptsUsed <= 0 || attemptsUsed > maxAttempts {
		return 0
	}
	raw := 1000 * float64(maxAttempts-attemptsUsed+1) / float64(maxAttempts)
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	return score
}
