package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/R2Ace/number-ninja/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// GameStartRequest defines the payload for starting a session.
type GameStartRequest struct {
	SessionID   string `json:"session_id"`
	Difficulty  string `json:"difficulty" binding:"required"`
	MaxNumber   int    `json:"max_number"`
	MaxAttempts int    `json:"max_attempts"`
}

// GameStartResponse describes a freshly started session.
type GameStartResponse struct {
	Message     string `json:"message"`
	SessionID   string `json:"session_id"`
	Difficulty  string `json:"difficulty"`
	MinNumber   int    `json:"min_number"`
	MaxNumber   int    `json:"max_number"`
	MaxAttempts int    `json:"max_attempts"`
}

// GameGuessRequest defines the payload for submitting a guess.
type GameGuessRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Guess     *int   `json:"guess" binding:"required"`
}

// GameGuessResponse reports the outcome of one guess.
type GameGuessResponse struct {
	Feedback     string `json:"feedback"`
	FeedbackType string `json:"feedback_type"`
	Attempts     int    `json:"attempts"`
	MaxAttempts  int    `json:"max_attempts"`
	Score        int    `json:"score"`
	GameOver     bool   `json:"game_over"`
	Status       string `json:"status"`
	Target       int    `json:"target,omitempty"`
}

// GameResetRequest defines the payload for discarding a session.
type GameResetRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// GameScoreResponse is the current score snapshot for a session.
type GameScoreResponse struct {
	SessionID   string `json:"session_id"`
	Status      string `json:"status"`
	Score       int    `json:"score"`
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"max_attempts"`
}

// LeaderboardEntryResponse is one ranked row.
type LeaderboardEntryResponse struct {
	Username   string    `json:"username"`
	Score      int       `json:"score"`
	Attempts   int       `json:"attempts"`
	AchievedAt time.Time `json:"achieved_at"`
}

// HistoryEntryResponse is one row of a player's game history.
type HistoryEntryResponse struct {
	Date     time.Time `json:"date"`
	Score    int       `json:"score"`
	Attempts int       `json:"attempts"`
}

// PlayerStatsResponse summarizes a player's completed games.
type PlayerStatsResponse struct {
	TotalGames      int     `json:"total_games"`
	AverageScore    float64 `json:"average_score"`
	AverageAttempts float64 `json:"average_attempts"`
}

// HistoryResponse combines game history with aggregate stats.
type HistoryResponse struct {
	History []HistoryEntryResponse `json:"history"`
	Stats   PlayerStatsResponse    `json:"stats"`
}

// DailyStartRequest defines the payload for starting the daily challenge.
type DailyStartRequest struct {
	UserID string `json:"user_id"`
}

// DailyStartResponse describes a started daily challenge run.
type DailyStartResponse struct {
	SessionID   string `json:"session_id"`
	Date        string `json:"date"`
	MinNumber   int    `json:"min_number"`
	MaxNumber   int    `json:"max_number"`
	MaxAttempts int    `json:"max_attempts"`
}

// DailySaveRequest defines the payload for saving a finished daily run.
type DailySaveRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id" binding:"required"`
}

// DailySaveResponse reports the recorded daily score.
type DailySaveResponse struct {
	Message string `json:"message"`
	Score   int    `json:"score"`
	Date    string `json:"date"`
}

// UserSummary describes a minimal view of a user returned by the API.
type UserSummary struct {
	ID       string            `json:"id"`
	Username string            `json:"username"`
	Email    string            `json:"email,omitempty"`
	Status   domain.UserStatus `json:"status"`
}

// AuthLoginRequest defines the payload for the login endpoint.
type AuthLoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AuthLoginResponse describes the response returned for a successful login.
type AuthLoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        UserSummary `json:"user"`
}

// RegisterRequest defines the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// PasswordResetRequestPayload initiates a password reset.
type PasswordResetRequestPayload struct {
	Identifier string `json:"identifier" binding:"required"`
}

// PasswordResetRequestResponse acknowledges a reset request.
type PasswordResetRequestResponse struct {
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// PasswordResetConfirmPayload finalizes a password reset.
type PasswordResetConfirmPayload struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports the readiness of each dependency.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func newUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Status:   user.Status,
	}
}
