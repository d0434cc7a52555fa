package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/transport/http/middleware"
	"github.com/R2Ace/number-ninja/internal/usecase"
)

// GameHandler exposes the guess-the-number session endpoints.
type GameHandler struct {
	game *usecase.GameService
}

// NewGameHandler constructs GameHandler.
func NewGameHandler(game *usecase.GameService) *GameHandler {
	return &GameHandler{game: game}
}

// RegisterRoutes binds game routes, applying optional middleware ahead of the guess handler.
func (h *GameHandler) RegisterRoutes(r *gin.RouterGroup, guessMiddlewares ...gin.HandlerFunc) {
	r.POST("/start", h.start)

	if len(guessMiddlewares) > 0 {
		chain := append([]gin.HandlerFunc{}, guessMiddlewares...)
		chain = append(chain, h.guess)
		r.POST("/guess", chain...)
	} else {
		r.POST("/guess", h.guess)
	}

	r.POST("/reset", h.reset)
	r.GET("/score", h.score)
}

var gameErrorCases = []ErrorCase{
	{Err: domain.ErrUnknownDifficulty, Status: http.StatusBadRequest, Message: "unknown difficulty"},
	{Err: usecase.ErrSessionNotFound, Status: http.StatusNotFound, Message: "game session not found"},
	{Err: domain.ErrSessionNotActive, Status: http.StatusConflict, Message: "game session is not active"},
	{Err: domain.ErrAttemptsExhausted, Status: http.StatusConflict, Message: "attempts exhausted"},
	{Err: usecase.ErrInvalidGuessValue, Status: http.StatusBadRequest, Message: "invalid guess"},
}

func (h *GameHandler) start(c *gin.Context) {
	var req GameStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	input := usecase.StartInput{
		SessionID:   req.SessionID,
		Difficulty:  domain.DifficultyID(req.Difficulty),
		MaxNumber:   req.MaxNumber,
		MaxAttempts: req.MaxAttempts,
	}
	if userID, ok := middleware.GetAuthenticatedUserID(c); ok {
		input.UserID = userID
	}

	result, err := h.game.Start(c.Request.Context(), input)
	if err != nil {
		RespondWithMappedError(c, err, gameErrorCases, http.StatusInternalServerError, "failed to start game")
		return
	}

	c.JSON(http.StatusOK, GameStartResponse{
		Message:     fmt.Sprintf("Game started! Guess a number between %d and %d.", result.MinNumber, result.MaxNumber),
		SessionID:   result.SessionID,
		Difficulty:  string(result.Difficulty),
		MinNumber:   result.MinNumber,
		MaxNumber:   result.MaxNumber,
		MaxAttempts: result.MaxAttempts,
	})
}

func (h *GameHandler) guess(c *gin.Context) {
	var req GameGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithMappedError(c, usecase.ErrInvalidGuessValue, gameErrorCases, http.StatusBadRequest, "invalid guess")
		return
	}

	result, err := h.game.Guess(c.Request.Context(), req.SessionID, *req.Guess)
	if err != nil {
		RespondWithMappedError(c, err, gameErrorCases, http.StatusInternalServerError, "failed to evaluate guess")
		return
	}

	c.JSON(http.StatusOK, GameGuessResponse{
		Feedback:     feedbackMessage(result),
		FeedbackType: string(result.Feedback),
		Attempts:     result.AttemptsUsed,
		MaxAttempts:  result.AttemptsUsed + result.AttemptsLeft,
		Score:        result.Score,
		GameOver:     result.Status != domain.GameStatusActive,
		Status:       string(result.Status),
		Target:       result.Target,
	})
}

func (h *GameHandler) reset(c *gin.Context) {
	var req GameResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.game.Reset(c.Request.Context(), req.SessionID); err != nil {
		RespondWithMappedError(c, err, gameErrorCases, http.StatusInternalServerError, "failed to reset game")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Game reset. A fresh number is waiting for you."})
}

func (h *GameHandler) score(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "session_id is required"))
		return
	}

	result, err := h.game.Score(c.Request.Context(), sessionID)
	if err != nil {
		RespondWithMappedError(c, err, gameErrorCases, http.StatusInternalServerError, "failed to load score")
		return
	}

	c.JSON(http.StatusOK, GameScoreResponse{
		SessionID:   result.SessionID,
		Status:      string(result.Status),
		Score:       result.Score,
		Attempts:    result.AttemptsUsed,
		MaxAttempts: result.MaxAttempts,
	})
}

func feedbackMessage(result *usecase.GuessResult) string {
	switch result.Feedback {
	case domain.FeedbackCorrect:
		return fmt.Sprintf("Correct! You won in %d attempts.", result.AttemptsUsed)
	case domain.FeedbackTooLow:
		if result.Status == domain.GameStatusLost {
			return fmt.Sprintf("Too low. Game over, the number was %d.", result.Target)
		}
		return "Too low. Try a higher number."
	case domain.FeedbackTooHigh:
		if result.Status == domain.GameStatusLost {
			return fmt.Sprintf("Too high. Game over, the number was %d.", result.Target)
		}
		return "Too high. Try a lower number."
	default:
		return ""
	}
}
