package port

import (
	"context"

	"github.com/R2Ace/number-ninja/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishGameCompleted(ctx context.Context, event domain.GameCompletedEvent) error
	PublishDailyChallengeCompleted(ctx context.Context, event domain.DailyChallengeCompletedEvent) error
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error
}
