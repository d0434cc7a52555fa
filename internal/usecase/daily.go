package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/repository"
)

var (
	// ErrDailySessionMismatch indicates the session is not a daily run owned by the user.
	ErrDailySessionMismatch = errors.New("session does not belong to the user's daily challenge")
	// ErrDailySessionUnfinished indicates the daily session has not reached a terminal state.
	ErrDailySessionUnfinished = errors.New("daily challenge session still active")
)

// DailyChallengeService runs the shared once-per-day challenge.
type DailyChallengeService struct {
	sessions port.GameSessionStore
	results  port.GameResultRepository
	events   port.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewDailyChallengeService constructs a DailyChallengeService.
func NewDailyChallengeService(sessions port.GameSessionStore, results port.GameResultRepository, events port.EventPublisher, logger *zap.Logger) *DailyChallengeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyChallengeService{
		sessions: sessions,
		results:  results,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source, primarily for tests.
func (s *DailyChallengeService) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// DailyStartResult describes a started daily challenge run.
type DailyStartResult struct {
	SessionID   string
	Date        time.Time
	MinNumber   int
	MaxNumber   int
	MaxAttempts int
}

// DailySaveResult reports the recorded daily score.
type DailySaveResult struct {
	Score    int
	Attempts int
	Date     time.Time
}

// Start opens today's challenge for the user. Every player receives the same
// target for a given UTC date, and a user who already saved a completed run
// today cannot start another.
func (s *DailyChallengeService) Start(ctx context.Context, userID string) (*DailyStartResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserNotFound
	}

	now := s.now().UTC()
	date := domain.ChallengeDate(now)

	done, err := s.results.HasDailyResult(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("check daily result: %w", err)
	}
	if done {
		return nil, domain.ErrDailyAlreadyCompleted
	}

	profile, err := domain.ResolveDifficulty(domain.DailyChallengeDifficulty)
	if err != nil {
		return nil, err
	}

	session := domain.GameSession{
		SessionID:   uuid.NewString(),
		Target:      domain.DailyTarget(date, profile),
		Difficulty:  profile.ID,
		MinNumber:   profile.MinNumber,
		MaxNumber:   profile.MaxNumber,
		MaxAttempts: profile.MaxAttempts,
		Status:      domain.GameStatusActive,
		UserID:      userID,
		Daily:       true,
		CreatedAt:   now,
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("daily challenge started",
		zap.String("session_id", session.SessionID),
		zap.String("user_id", userID),
		zap.String("date", date.Format("2006-01-02")),
	)

	return &DailyStartResult{
		SessionID:   session.SessionID,
		Date:        date,
		MinNumber:   profile.MinNumber,
		MaxNumber:   profile.MaxNumber,
		MaxAttempts: profile.MaxAttempts,
	}, nil
}

// Save records a finished daily run. Only the first completed run per UTC day
// counts; the session must belong to the user and be over.
func (s *DailyChallengeService) Save(ctx context.Context, userID, sessionID string) (*DailySaveResult, error) {
	userID = strings.TrimSpace(userID)
	sessionID = strings.TrimSpace(sessionID)
	if userID == "" || sessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if !session.Daily || session.UserID != userID {
		return nil, ErrDailySessionMismatch
	}
	if !session.IsOver() {
		return nil, ErrDailySessionUnfinished
	}

	now := s.now().UTC()
	date := domain.ChallengeDate(session.CreatedAt)

	// The result must land in the same day bucket the dedup check uses, even
	// when the save arrives after the session's day rolled over at UTC midnight.
	achievedAt := now
	if !domain.ChallengeDate(achievedAt).Equal(date) {
		achievedAt = date.Add(24*time.Hour - time.Second)
	}

	done, err := s.results.HasDailyResult(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("check daily result: %w", err)
	}
	if done {
		return nil, domain.ErrDailyAlreadyCompleted
	}

	result := domain.GameResult{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionID:    sessionID,
		Difficulty:   session.Difficulty,
		Score:        session.Score,
		AttemptsUsed: session.AttemptsUsed,
		MaxAttempts:  session.MaxAttempts,
		Won:          session.Status == domain.GameStatusWon,
		Daily:        true,
		AchievedAt:   achievedAt,
	}
	if err := s.results.Create(ctx, result); err != nil {
		// The unique (user, day) index is the authority; a concurrent save wins.
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.ErrDailyAlreadyCompleted
		}
		return nil, fmt.Errorf("persist daily result: %w", err)
	}

	if s.events != nil {
		event := domain.DailyChallengeCompletedEvent{
			UserID:      userID,
			SessionID:   sessionID,
			Date:        date,
			Score:       session.Score,
			Attempts:    session.AttemptsUsed,
			CompletedAt: now,
		}
		if err := s.events.PublishDailyChallengeCompleted(ctx, event); err != nil {
			s.logger.Warn("publish daily completed failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}

	if err := s.sessions.Remove(ctx, sessionID); err != nil {
		s.logger.Warn("remove saved daily session failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	return &DailySaveResult{
		Score:    session.Score,
		Attempts: session.AttemptsUsed,
		Date:     date,
	}, nil
}

// Leaderboard returns today's ranked daily results.
func (s *DailyChallengeService) Leaderboard(ctx context.Context, size int) ([]domain.LeaderboardEntry, error) {
	if size <= 0 {
		size = defaultLeaderboardSize
	}
	entries, err := s.results.DailyTopN(ctx, s.now().UTC(), size)
	if err != nil {
		return nil, fmt.Errorf("query daily leaderboard: %w", err)
	}
	return entries, nil
}
