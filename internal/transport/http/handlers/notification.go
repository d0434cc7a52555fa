package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	applogger "github.com/R2Ace/number-ninja/internal/infra/logger"
)

// NotificationDispatcher delivers password reset credentials out of band.
type NotificationDispatcher interface {
	SendPasswordReset(ctx context.Context, payload PasswordResetNotification) error
}

// PasswordResetNotification captures data needed to deliver password reset credentials.
type PasswordResetNotification struct {
	Email    string
	DevToken string
	Expires  time.Time
}

type noopDispatcher struct{}

func (noopDispatcher) SendPasswordReset(_ context.Context, _ PasswordResetNotification) error {
	return nil
}

// LoggingNotificationDispatcher records credential dispatch events for observability
// without delivering them. The raw token is never logged.
type LoggingNotificationDispatcher struct {
	logger *zap.Logger
}

// NewLoggingNotificationDispatcher constructs a notification dispatcher backed by structured logging.
func NewLoggingNotificationDispatcher(logger *zap.Logger) NotificationDispatcher {
	if logger == nil {
		return noopDispatcher{}
	}
	return &LoggingNotificationDispatcher{logger: logger}
}

func (d *LoggingNotificationDispatcher) SendPasswordReset(_ context.Context, payload PasswordResetNotification) error {
	if d == nil || d.logger == nil {
		return nil
	}

	d.logger.Info("password reset notification dispatched",
		zap.String("email", applogger.MaskEmail(payload.Email)),
		zap.Time("expires_at", payload.Expires),
	)
	return nil
}
