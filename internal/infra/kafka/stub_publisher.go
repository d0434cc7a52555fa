package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishGameCompleted logs ninja.game.completed events.
func (p *StubPublisher) PublishGameCompleted(_ context.Context, event domain.GameCompletedEvent) error {
	payload := map[string]any{
		"session_id":    event.SessionID,
		"user_id":       event.UserID,
		"difficulty":    event.Difficulty,
		"score":         event.Score,
		"attempts_used": event.AttemptsUsed,
		"max_attempts":  event.MaxAttempts,
		"won":           event.Won,
		"completed_at":  event.CompletedAt,
	}
	p.logEvent("ninja.game.completed", event.UserID, event.CompletedAt, payload)
	return nil
}

// PublishDailyChallengeCompleted logs ninja.daily.completed events.
func (p *StubPublisher) PublishDailyChallengeCompleted(_ context.Context, event domain.DailyChallengeCompletedEvent) error {
	payload := map[string]any{
		"user_id":      event.UserID,
		"session_id":   event.SessionID,
		"date":         event.Date.Format("2006-01-02"),
		"score":        event.Score,
		"attempts":     event.Attempts,
		"completed_at": event.CompletedAt,
	}
	p.logEvent("ninja.daily.completed", event.UserID, event.CompletedAt, payload)
	return nil
}

// PublishUserRegistered logs ninja.user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	payload := map[string]any{
		"user_id":       event.UserID,
		"username":      event.Username,
		"email":         event.Email,
		"registered_at": event.RegisteredAt,
	}
	p.logEvent("ninja.user.registered", event.UserID, event.RegisteredAt, payload)
	return nil
}

// PublishPasswordResetRequested logs ninja.user.password.reset_requested events.
func (p *StubPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	payload := map[string]any{
		"user_id":            event.UserID,
		"request_id":         event.RequestID,
		"masked_destination": event.MaskedDestination,
		"requested_at":       event.RequestedAt,
		"expires_at":         event.ExpiresAt,
	}
	p.logEvent("ninja.user.password.reset_requested", event.UserID, event.RequestedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
