package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R2Ace/number-ninja/internal/usecase"
)

// PasswordHandler exposes password reset endpoints.
type PasswordHandler struct {
	reset      *usecase.PasswordResetService
	dispatcher NotificationDispatcher
	isDev      bool
}

// NewPasswordHandler constructs PasswordHandler. In development mode the raw
// reset token is returned in the response body instead of being delivered.
func NewPasswordHandler(reset *usecase.PasswordResetService, dispatcher NotificationDispatcher, isDev bool) *PasswordHandler {
	if dispatcher == nil {
		dispatcher = noopDispatcher{}
	}
	return &PasswordHandler{reset: reset, dispatcher: dispatcher, isDev: isDev}
}

var passwordErrorCases = []ErrorCase{
	{Err: usecase.ErrPasswordResetTokenInvalid, Status: http.StatusBadRequest, Message: "reset token invalid"},
	{Err: usecase.ErrPasswordResetTokenExpired, Status: http.StatusBadRequest, Message: "reset token expired"},
	{Err: usecase.ErrNewPasswordInvalid, Status: http.StatusBadRequest, Message: "password does not meet complexity requirements"},
	{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
}

// ResetPassword initiates a password reset for the supplied identifier.
// An unknown identifier still gets a generic acknowledgement so the endpoint
// does not leak which accounts exist.
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req PasswordResetRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	result, err := h.reset.InitiateReset(c.Request.Context(), req.Identifier)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusOK, PasswordResetRequestResponse{
				Message: "If the account exists, reset instructions have been sent.",
			})
			return
		}
		RespondWithMappedError(c, err, passwordErrorCases, http.StatusInternalServerError, "failed to initiate password reset")
		return
	}

	_ = h.dispatcher.SendPasswordReset(c.Request.Context(), PasswordResetNotification{
		Email:    req.Identifier,
		DevToken: result.Token,
		Expires:  result.ExpiresAt,
	})

	response := PasswordResetRequestResponse{
		Message:   "If the account exists, reset instructions have been sent.",
		RequestID: result.RequestID,
	}
	if h.isDev {
		response.Token = result.Token
		response.ExpiresAt = result.ExpiresAt
	}

	c.JSON(http.StatusOK, response)
}

// ConfirmReset redeems a reset token and sets a new password.
func (h *PasswordHandler) ConfirmReset(c *gin.Context) {
	var req PasswordResetConfirmPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.reset.CompleteReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		RespondWithMappedError(c, err, passwordErrorCases, http.StatusInternalServerError, "failed to reset password")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password updated. You can now log in."})
}
