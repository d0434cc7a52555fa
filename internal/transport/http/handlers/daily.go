package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/transport/http/middleware"
	"github.com/R2Ace/number-ninja/internal/usecase"
)

// DailyHandler exposes the daily challenge endpoints.
type DailyHandler struct {
	daily *usecase.DailyChallengeService
}

// NewDailyHandler constructs DailyHandler.
func NewDailyHandler(daily *usecase.DailyChallengeService) *DailyHandler {
	return &DailyHandler{daily: daily}
}

// RegisterRoutes binds daily challenge routes. Start and save require auth;
// the caller applies that middleware on the group.
func (h *DailyHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/start", h.start)
	r.POST("/save", h.save)
}

var dailyErrorCases = []ErrorCase{
	{Err: domain.ErrDailyAlreadyCompleted, Status: http.StatusConflict, Message: "daily challenge already completed today"},
	{Err: usecase.ErrSessionNotFound, Status: http.StatusNotFound, Message: "game session not found"},
	{Err: usecase.ErrDailySessionMismatch, Status: http.StatusForbidden, Message: "session does not belong to this user's daily challenge"},
	{Err: usecase.ErrDailySessionUnfinished, Status: http.StatusConflict, Message: "daily challenge session is still active"},
	{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
}

func (h *DailyHandler) start(c *gin.Context) {
	userID := h.resolveUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	result, err := h.daily.Start(c.Request.Context(), userID)
	if err != nil {
		RespondWithMappedError(c, err, dailyErrorCases, http.StatusInternalServerError, "failed to start daily challenge")
		return
	}

	c.JSON(http.StatusOK, DailyStartResponse{
		SessionID:   result.SessionID,
		Date:        result.Date.Format("2006-01-02"),
		MinNumber:   result.MinNumber,
		MaxNumber:   result.MaxNumber,
		MaxAttempts: result.MaxAttempts,
	})
}

func (h *DailyHandler) save(c *gin.Context) {
	var req DailySaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	userID := h.resolveUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	result, err := h.daily.Save(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		RespondWithMappedError(c, err, dailyErrorCases, http.StatusInternalServerError, "failed to save daily challenge")
		return
	}

	c.JSON(http.StatusOK, DailySaveResponse{
		Message: "Daily challenge saved.",
		Score:   result.Score,
		Date:    result.Date.Format("2006-01-02"),
	})
}

// Leaderboard returns today's ranked daily results.
func (h *DailyHandler) Leaderboard(c *gin.Context) {
	entries, err := h.daily.Leaderboard(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load daily leaderboard"))
		return
	}

	c.JSON(http.StatusOK, toLeaderboardResponse(entries))
}

// resolveUserID prefers the authenticated identity over the request payload.
func (h *DailyHandler) resolveUserID(c *gin.Context) string {
	if userID, ok := middleware.GetAuthenticatedUserID(c); ok {
		return userID
	}
	return ""
}
