package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/repository"
)

var (
	// ErrSessionNotFound indicates no active or finished session exists under the id.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrInvalidGuessValue indicates the guess payload is not a usable number.
	ErrInvalidGuessValue = errors.New("invalid guess value")
)

// GameService coordinates the guess-the-number session lifecycle.
type GameService struct {
	sessions port.GameSessionStore
	results  port.GameResultRepository
	events   port.EventPublisher
	logger   *zap.Logger
	locks    keyMutex
	now      func() time.Time
	randInt  func(min, max int) int
}

// NewGameService constructs a GameService.
func NewGameService(sessions port.GameSessionStore, results port.GameResultRepository, events port.EventPublisher, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		sessions: sessions,
		results:  results,
		events:   events,
		logger:   logger,
		now:      time.Now,
		randInt: func(min, max int) int {
			return min + rand.Intn(max-min+1)
		},
	}
}

// WithClock overrides the time source, primarily for tests.
func (s *GameService) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithRandom overrides target selection, primarily for tests.
func (s *GameService) WithRandom(randInt func(min, max int) int) {
	if randInt != nil {
		s.randInt = randInt
	}
}

// StartInput carries the parameters for starting a session. MaxNumber and
// MaxAttempts override the difficulty defaults when positive.
type StartInput struct {
	SessionID   string
	Difficulty  domain.DifficultyID
	UserID      string
	MaxNumber   int
	MaxAttempts int
}

// StartResult describes a freshly started session. The target is never exposed.
type StartResult struct {
	SessionID   string
	Difficulty  domain.DifficultyID
	MinNumber   int
	MaxNumber   int
	MaxAttempts int
}

// GuessResult captures the evaluation of one guess.
type GuessResult struct {
	SessionID    string
	Feedback     domain.Feedback
	Status       domain.GameStatus
	AttemptsUsed int
	AttemptsLeft int
	Score        int
	Target       int
}

// ScoreResult is the current score snapshot for a session.
type ScoreResult struct {
	SessionID    string
	Status       domain.GameStatus
	Score        int
	AttemptsUsed int
	MaxAttempts  int
}

// Start creates a session for the requested difficulty. Starting with an id
// that already holds a session discards the old one, finished or not.
func (s *GameService) Start(ctx context.Context, input StartInput) (*StartResult, error) {
	profile, err := domain.ResolveDifficulty(input.Difficulty)
	if err != nil {
		return nil, err
	}

	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	maxNumber := profile.MaxNumber
	if input.MaxNumber > profile.MinNumber {
		maxNumber = input.MaxNumber
	}
	maxAttempts := profile.MaxAttempts
	if input.MaxAttempts > 0 {
		maxAttempts = input.MaxAttempts
	}

	session := domain.GameSession{
		SessionID:   sessionID,
		Target:      s.randInt(profile.MinNumber, maxNumber),
		Difficulty:  profile.ID,
		MinNumber:   profile.MinNumber,
		MaxNumber:   maxNumber,
		MaxAttempts: maxAttempts,
		Status:      domain.GameStatusActive,
		UserID:      strings.TrimSpace(input.UserID),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("game session started",
		zap.String("session_id", sessionID),
		zap.String("difficulty", string(profile.ID)),
	)

	return &StartResult{
		SessionID:   sessionID,
		Difficulty:  profile.ID,
		MinNumber:   profile.MinNumber,
		MaxNumber:   maxNumber,
		MaxAttempts: maxAttempts,
	}, nil
}

// Guess evaluates one guess against the session. Guesses on the same session
// are serialized; concurrent calls observe strictly increasing attempt counts.
func (s *GameService) Guess(ctx context.Context, sessionID string, guess int) (*GuessResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	feedback, updated, err := domain.Evaluate(*session, guess)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	result := &GuessResult{
		SessionID:    sessionID,
		Feedback:     feedback,
		Status:       updated.Status,
		AttemptsUsed: updated.AttemptsUsed,
		AttemptsLeft: updated.MaxAttempts - updated.AttemptsUsed,
		Score:        updated.Score,
	}
	if updated.IsOver() {
		result.Target = updated.Target
		s.finishSession(ctx, updated)
	}

	return result, nil
}

// finishSession records the completed run for attributed, non-daily sessions.
// Daily runs are saved explicitly through the daily challenge flow.
func (s *GameService) finishSession(ctx context.Context, session domain.GameSession) {
	completedAt := s.now().UTC()

	if s.results != nil && session.UserID != "" && !session.Daily {
		result := domain.GameResult{
			ID:           uuid.NewString(),
			UserID:       session.UserID,
			SessionID:    session.SessionID,
			Difficulty:   session.Difficulty,
			Score:        session.Score,
			AttemptsUsed: session.AttemptsUsed,
			MaxAttempts:  session.MaxAttempts,
			Won:          session.Status == domain.GameStatusWon,
			AchievedAt:   completedAt,
		}
		if err := s.results.Create(ctx, result); err != nil {
			s.logger.Error("persist game result failed",
				zap.String("session_id", session.SessionID),
				zap.Error(err),
			)
		}
	}

	if s.events != nil {
		event := domain.GameCompletedEvent{
			SessionID:    session.SessionID,
			UserID:       session.UserID,
			Difficulty:   session.Difficulty,
			Score:        session.Score,
			AttemptsUsed: session.AttemptsUsed,
			MaxAttempts:  session.MaxAttempts,
			Won:          session.Status == domain.GameStatusWon,
			CompletedAt:  completedAt,
		}
		if err := s.events.PublishGameCompleted(ctx, event); err != nil {
			s.logger.Warn("publish game completed failed",
				zap.String("session_id", session.SessionID),
				zap.Error(err),
			)
		}
	}
}

// Score returns the current score snapshot for a session.
func (s *GameService) Score(ctx context.Context, sessionID string) (*ScoreResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &ScoreResult{
		SessionID:    session.SessionID,
		Status:       session.Status,
		Score:        session.Score,
		AttemptsUsed: session.AttemptsUsed,
		MaxAttempts:  session.MaxAttempts,
	}, nil
}

// Reset re-rolls the session in place: same difficulty, bounds, and owner, a
// fresh target, and the attempt counter back at zero. Resetting an unknown id
// is a no-op.
func (s *GameService) Reset(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionNotFound
	}

	s.locks.Lock(sessionID)
	defer s.locks.Unlock(sessionID)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}

	fresh := *session
	fresh.Target = s.randInt(session.MinNumber, session.MaxNumber)
	fresh.AttemptsUsed = 0
	fresh.Score = 0
	fresh.Status = domain.GameStatusActive
	fresh.CreatedAt = s.now().UTC()

	if err := s.sessions.Put(ctx, fresh); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("game session reset", zap.String("session_id", sessionID))
	return nil
}
