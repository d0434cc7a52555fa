package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/infra/config"
	"github.com/R2Ace/number-ninja/internal/transport/http/handlers"
	"github.com/R2Ace/number-ninja/internal/transport/http/middleware"
	"github.com/R2Ace/number-ninja/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Game          *usecase.GameService
	Leaderboard   *usecase.LeaderboardService
	Daily         *usecase.DailyChallengeService
	Auth          *usecase.AuthService
	Registration  *usecase.RegistrationService
	PasswordReset *usecase.PasswordResetService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}
	r.Use(middleware.CORS(corsOrigins(deps)))

	healthOptions := make([]handlers.HealthOption, 0, 2)

	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}

	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		isDev := deps.Config.App.Env == "development"
		notificationDispatcher := handlers.NewLoggingNotificationDispatcher(deps.Logger)

		var authMiddleware gin.HandlerFunc
		if deps.Services.Auth != nil {
			authMiddleware = middleware.RequireAuth(deps.Services.Auth)
		}

		if deps.Services.Game != nil {
			gameGroup := api.Group("/game")
			if deps.Services.Auth != nil {
				gameGroup.Use(middleware.OptionalAuth(deps.Services.Auth))
			}
			gameHandler := handlers.NewGameHandler(deps.Services.Game)
			gameHandler.RegisterRoutes(gameGroup, buildRateLimitMiddlewares(deps, "game_guess_ip", deps.Config.RateLimit.GuessMaxAttempts, time.Minute)...)
		}

		if deps.Services.Leaderboard != nil {
			leaderboardHandler := handlers.NewLeaderboardHandler(deps.Services.Leaderboard)
			api.GET("/leaderboard", leaderboardHandler.Top)
			if authMiddleware != nil {
				api.GET("/users/:user_id/history", authMiddleware, leaderboardHandler.History)
			}
		}

		if deps.Services.Daily != nil {
			dailyHandler := handlers.NewDailyHandler(deps.Services.Daily)
			api.GET("/daily/leaderboard", dailyHandler.Leaderboard)
			if authMiddleware != nil {
				dailyGroup := api.Group("/daily")
				dailyGroup.Use(authMiddleware)
				dailyHandler.RegisterRoutes(dailyGroup)
			}
		}

		if deps.Services.Auth != nil && deps.Services.Registration != nil {
			authGroup := api.Group("/auth")
			authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Services.Registration)
			authHandler.RegisterRoutes(authGroup,
				buildRateLimitMiddlewares(deps, "auth_login_ip", deps.Config.RateLimit.LoginMaxAttempts, time.Minute),
				buildRateLimitMiddlewares(deps, "auth_register_ip", deps.Config.RateLimit.RegisterMaxAttempts, time.Minute),
			)
		}

		if deps.Services.PasswordReset != nil {
			passwordHandler := handlers.NewPasswordHandler(deps.Services.PasswordReset, notificationDispatcher, isDev)

			resetGroup := api.Group("/password/reset")
			resetMiddlewares := buildRateLimitMiddlewares(deps, "password_reset_ip", deps.Config.RateLimit.PasswordResetMaxAttempts, time.Hour)
			if len(resetMiddlewares) > 0 {
				resetGroup.Use(resetMiddlewares...)
			}
			resetGroup.POST("/request", passwordHandler.ResetPassword)
			resetGroup.POST("/confirm", passwordHandler.ConfirmReset)
		}
	}

	return r
}

func corsOrigins(deps Dependencies) []string {
	if deps.Config == nil || len(deps.Config.CORS.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return deps.Config.CORS.AllowedOrigins
}

func buildRateLimitMiddlewares(deps Dependencies, name string, limit int, fallbackWindow time.Duration) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil {
		return nil
	}

	if limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = fallbackWindow
	}

	rule := middleware.RateLimitRule{
		Name:       name,
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}
