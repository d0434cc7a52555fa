package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	UserID    string           `json:"user_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := eventEnvelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		UserID:    userID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishGameCompleted publishes ninja.game.completed events.
func (p *EventPublisher) PublishGameCompleted(ctx context.Context, event domain.GameCompletedEvent) error {
	payload := struct {
		SessionID    string              `json:"session_id"`
		UserID       string              `json:"user_id,omitempty"`
		Difficulty   domain.DifficultyID `json:"difficulty"`
		Score        int                 `json:"score"`
		AttemptsUsed int                 `json:"attempts_used"`
		MaxAttempts  int                 `json:"max_attempts"`
		Won          bool                `json:"won"`
		CompletedAt  time.Time           `json:"completed_at"`
	}{
		SessionID:    event.SessionID,
		UserID:       event.UserID,
		Difficulty:   event.Difficulty,
		Score:        event.Score,
		AttemptsUsed: event.AttemptsUsed,
		MaxAttempts:  event.MaxAttempts,
		Won:          event.Won,
		CompletedAt:  event.CompletedAt,
	}
	return p.publish(ctx, "game.completed", event.UserID, event.CompletedAt, payload)
}

// PublishDailyChallengeCompleted publishes ninja.daily.completed events.
func (p *EventPublisher) PublishDailyChallengeCompleted(ctx context.Context, event domain.DailyChallengeCompletedEvent) error {
	payload := struct {
		UserID      string    `json:"user_id"`
		SessionID   string    `json:"session_id"`
		Date        string    `json:"date"`
		Score       int       `json:"score"`
		Attempts    int       `json:"attempts"`
		CompletedAt time.Time `json:"completed_at"`
	}{
		UserID:      event.UserID,
		SessionID:   event.SessionID,
		Date:        event.Date.Format("2006-01-02"),
		Score:       event.Score,
		Attempts:    event.Attempts,
		CompletedAt: event.CompletedAt,
	}
	return p.publish(ctx, "daily.completed", event.UserID, event.CompletedAt, payload)
}

// PublishUserRegistered publishes ninja.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		Username     string    `json:"username"`
		Email        string    `json:"email,omitempty"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		UserID:       event.UserID,
		Username:     event.Username,
		Email:        event.Email,
		RegisteredAt: event.RegisteredAt,
	}
	return p.publish(ctx, "user.registered", event.UserID, event.RegisteredAt, payload)
}

// PublishPasswordResetRequested publishes ninja.user.password.reset_requested events.
func (p *EventPublisher) PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error {
	payload := struct {
		UserID            string    `json:"user_id"`
		RequestID         string    `json:"request_id"`
		MaskedDestination string    `json:"masked_destination,omitempty"`
		RequestedAt       time.Time `json:"requested_at"`
		ExpiresAt         time.Time `json:"expires_at"`
	}{
		UserID:            event.UserID,
		RequestID:         event.RequestID,
		MaskedDestination: event.MaskedDestination,
		RequestedAt:       event.RequestedAt,
		ExpiresAt:         event.ExpiresAt,
	}
	return p.publish(ctx, "user.password.reset_requested", event.UserID, event.RequestedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
