package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R2Ace/number-ninja/internal/usecase"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	auth         *usecase.AuthService
	registration *usecase.RegistrationService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, registration *usecase.RegistrationService) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration}
}

// RegisterRoutes binds authentication routes, applying optional middleware ahead of handlers.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, loginMiddlewares, registerMiddlewares []gin.HandlerFunc) {
	registerChain := append([]gin.HandlerFunc{}, registerMiddlewares...)
	registerChain = append(registerChain, h.register)
	r.POST("/register", registerChain...)

	loginChain := append([]gin.HandlerFunc{}, loginMiddlewares...)
	loginChain = append(loginChain, h.login)
	r.POST("/login", loginChain...)
}

var authErrorCases = []ErrorCase{
	{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
	{Err: usecase.ErrInactiveAccount, Status: http.StatusForbidden, Message: "account is not active"},
}

var registrationErrorCases = []ErrorCase{
	{Err: usecase.ErrIdentifierTaken, Status: http.StatusConflict, Message: "username or email already registered"},
	{Err: usecase.ErrPasswordPolicyViolation, Status: http.StatusBadRequest, Message: "password does not meet complexity requirements"},
}

func (h *AuthHandler) login(c *gin.Context) {
	var req AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	result, err := h.auth.Authenticate(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, authErrorCases, http.StatusInternalServerError, "authentication failed")
		return
	}

	c.JSON(http.StatusOK, AuthLoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(result.ExpiresIn.Seconds()),
		User:        newUserSummary(result.User),
	})
}

func (h *AuthHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	user, err := h.registration.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, registrationErrorCases, http.StatusInternalServerError, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "Account created.",
		User:    newUserSummary(user),
	})
}
