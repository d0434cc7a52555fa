package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/usecase"
)

// LeaderboardHandler serves ranked results and per-player history.
type LeaderboardHandler struct {
	leaderboard *usecase.LeaderboardService
}

// NewLeaderboardHandler constructs LeaderboardHandler.
func NewLeaderboardHandler(leaderboard *usecase.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Top returns the global leaderboard over won games.
func (h *LeaderboardHandler) Top(c *gin.Context) {
	entries, err := h.leaderboard.Top(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load leaderboard"))
		return
	}

	c.JSON(http.StatusOK, toLeaderboardResponse(entries))
}

// History returns the authenticated user's completed games with stats.
func (h *LeaderboardHandler) History(c *gin.Context) {
	userID := c.Param("user_id")

	history, stats, err := h.leaderboard.History(c.Request.Context(), userID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "failed to load history")
		return
	}

	response := HistoryResponse{
		History: make([]HistoryEntryResponse, 0, len(history)),
		Stats: PlayerStatsResponse{
			TotalGames:      stats.TotalGames,
			AverageScore:    stats.AverageScore,
			AverageAttempts: stats.AverageAttempts,
		},
	}
	for _, entry := range history {
		response.History = append(response.History, HistoryEntryResponse{
			Date:     entry.Date,
			Score:    entry.Score,
			Attempts: entry.Attempts,
		})
	}

	c.JSON(http.StatusOK, response)
}

func toLeaderboardResponse(entries []domain.LeaderboardEntry) []LeaderboardEntryResponse {
	response := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, LeaderboardEntryResponse{
			Username:   entry.Username,
			Score:      entry.Score,
			Attempts:   entry.Attempts,
			AchievedAt: entry.AchievedAt,
		})
	}
	return response
}
