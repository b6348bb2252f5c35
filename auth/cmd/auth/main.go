package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym-server/auth/internal/config"
	"gym-server/auth/internal/handler"
	"gym-server/auth/internal/service"
	"gym-server/auth/internal/worker"
	"gym-server/pkg/migration"
	"gym-server/shared/authutils"
	"gym-server/shared/database"
	"gym-server/shared/i18n"
	sharedLogger "gym-server/shared/logger"
	"gym-server/shared/messaging"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("../../.env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
		Service:  cfg.ServiceID,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- External Connections ---
	pgPool, err := database.ConnectPostgres(rootCtx, cfg.Postgres(), database.DefaultRetryPolicy, logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	migrator := migration.NewMigrator(migration.Config{
		MigrationsFS:   database.MigrationsFS,
		MigrationsPath: database.MigrationsDir,
	}, pgPool, migration.NewLogger(cfg.LogLevel, cfg.ServiceID))
	if err := migrator.Up(rootCtx); err != nil {
		zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
	}

	redisClient, err := database.ConnectRedis(rootCtx, &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, database.DefaultRetryPolicy, logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	mqConn, err := messaging.Connect(rootCtx, cfg.RabbitMQURL, 50, 5*time.Second, logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()

	userEventsPublisher, err := messaging.NewRabbitMQPublisher(mqConn, messaging.UserEventsExchange, logger)
	if err != nil {
		zap.L().Fatal("Failed to create user events publisher", zap.Error(err))
	}
	defer userEventsPublisher.Close()

	// --- Dependency Injection ---
	userRepo := database.NewPgUserRepository(pgPool, logger)
	confirmRepo := database.NewPgConfirmationTokenRepository(pgPool, logger)
	tokenRepo := database.NewRedisTokenRepository(redisClient, logger)
	authSvc := service.NewAuthService(userRepo, tokenRepo, confirmRepo, userEventsPublisher, cfg, logger)

	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		zap.L().Fatal("Unexpected gin validator engine")
	}
	translator, err := i18n.NewTranslator(validate)
	if err != nil {
		zap.L().Fatal("Failed to initialize translator", zap.Error(err))
	}

	internalVerifier, err := authutils.NewJWTVerifier(cfg.InterServiceSecret, logger)
	if err != nil {
		zap.L().Fatal("Failed to create inter-service token verifier", zap.Error(err))
	}

	// Rate limit на регистрацию и логин, по IP
	rateLimitStore := rateli.RedisStore(&rateli.RedisOptions{
		RedisClient: redisClient,
		Rate:        cfg.RateLimitPeriod,
		Limit:       cfg.RateLimitRequests,
	})
	rateLimitMiddleware := rateli.RateLimiter(rateLimitStore, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			zap.L().Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", fmt.Sprintf("%.0f", time.Until(info.ResetTime).Seconds()))
			sharedMiddleware.AbortGin(c, translator, http.StatusTooManyRequests, models.ErrCodeTooManyRequests)
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})

	authHandler := handler.NewAuthHandler(authSvc, translator, internalVerifier, cfg, logger)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(gin.Recovery())
	router.Use(sharedMiddleware.GinLocale())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	if allowedOrigins := cfg.GetAllowedOrigins(); len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept-Language"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	authHandler.RegisterRoutes(router, rateLimitMiddleware)

	// Prometheus middleware после регистрации роутов
	p.Use(router)

	// --- Background workers ---
	workerCtx, cancelWorkers := context.WithCancel(rootCtx)
	defer cancelWorkers()
	go worker.RunConfirmationCleanup(workerCtx, authSvc, cfg.CleanupInterval, logger)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-rootCtx.Done()
	zap.L().Info("Shutting down server...")
	cancelWorkers()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
