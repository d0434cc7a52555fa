package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/infra/config"
	"github.com/R2Ace/number-ninja/internal/infra/database"
	kafkainfra "github.com/R2Ace/number-ninja/internal/infra/kafka"
	"github.com/R2Ace/number-ninja/internal/infra/logger"
	redisinfra "github.com/R2Ace/number-ninja/internal/infra/redis"
	"github.com/R2Ace/number-ninja/internal/infra/security"
	postgresrepo "github.com/R2Ace/number-ninja/internal/repository/postgres"
	redisrepo "github.com/R2Ace/number-ninja/internal/repository/redis"
	"github.com/R2Ace/number-ninja/internal/transport/http/middleware"
	"github.com/R2Ace/number-ninja/internal/transport/http/routes"
	"github.com/R2Ace/number-ninja/internal/usecase"
)

type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	pool     *pgxpool.Pool
	redis    *redisinfra.Client
	producer *kafkainfra.Producer
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	jwtManager, err := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init jwt manager: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	sessionPrefix := cfg.Redis.SessionPrefix
	if sessionPrefix == "" {
		sessionPrefix = "ninja:session"
	}
	sessionTTL := cfg.Redis.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	sessionStore := redisrepo.NewSessionStore(redisClient.Client(), sessionPrefix, sessionTTL)

	var eventPublisher port.EventPublisher
	var kafkaProducer *kafkainfra.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			kafkaProducer = producer
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	passwordValidator := security.DefaultPasswordValidator()

	rateLimitWindow := cfg.RateLimit.WindowDuration
	if rateLimitWindow <= 0 {
		rateLimitWindow = time.Minute
	}
	rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
		KeyPrefix: "ninja:rate-limit",
		TTL:       rateLimitWindow * 2,
	})
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	gameService := usecase.NewGameService(sessionStore, repos.Results, eventPublisher, log)
	leaderboardService := usecase.NewLeaderboardService(repos.Results, cfg.Game.LeaderboardSize)
	dailyService := usecase.NewDailyChallengeService(sessionStore, repos.Results, eventPublisher, log)
	authService := usecase.NewAuthService(repos.Users, jwtManager, log)
	registrationService := usecase.NewRegistrationService(repos.Users, eventPublisher, passwordValidator, log)
	passwordResetService := usecase.NewPasswordResetService(repos.Users, repos.Tokens, eventPublisher, passwordValidator, log, cfg.Game.ResetTokenTTL)

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		Metrics:     metrics,
		Database:    pool,
		Cache:       redisClient,
		Services: routes.ServiceSet{
			Game:          gameService,
			Leaderboard:   leaderboardService,
			Daily:         dailyService,
			Auth:          authService,
			Registration:  registrationService,
			PasswordReset: passwordResetService,
		},
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		pool:     pool,
		redis:    redisClient,
		producer: kafkaProducer,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.producer != nil {
			_ = a.producer.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting game session API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
