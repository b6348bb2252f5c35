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
	_ "time/tzdata"

	"gym-server/gympass/internal/config"
	"gym-server/gympass/internal/handler"
	"gym-server/gympass/internal/repository"
	"gym-server/gympass/internal/service"
	"gym-server/pkg/migration"
	"gym-server/shared/authutils"
	"gym-server/shared/database"
	"gym-server/shared/i18n"
	sharedLogger "gym-server/shared/logger"
	sharedMiddleware "gym-server/shared/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".env")
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

	logger.Info("Starting gympass service...", zap.String("env", cfg.Env))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgPool, err := database.ConnectPostgres(rootCtx, cfg.Postgres(), database.DefaultRetryPolicy, logger)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	migrator := migration.NewMigrator(migration.Config{
		MigrationsFS:   database.MigrationsFS,
		MigrationsPath: database.MigrationsDir,
	}, pgPool, migration.NewLogger(cfg.LogLevel, cfg.ServiceID))
	if err := migrator.Up(rootCtx); err != nil {
		logger.Fatal("Failed to apply database migrations", zap.Error(err))
	}

	redisClient, err := database.ConnectRedis(rootCtx, &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, database.DefaultRetryPolicy, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// --- Dependency Injection ---
	offerRepo := repository.NewPgOfferRepository(pgPool, logger)
	passRepo := repository.NewPgPurchasedRepository(pgPool, logger)
	offerCache := repository.NewRedisOfferCache(redisClient, cfg.OfferCacheTTL, logger)

	offerSvc := service.NewOfferService(offerRepo, offerCache, logger)
	clubLocation, err := cfg.Location()
	if err != nil {
		logger.Fatal("Invalid club timezone", zap.Error(err))
	}
	passSvc := service.NewGymPassService(offerRepo, passRepo, cfg.MaxSuspensionDays, logger,
		service.WithLocation(clubLocation))

	validate := validator.New()
	translator, err := i18n.NewTranslator(validate)
	if err != nil {
		logger.Fatal("Failed to initialize translator", zap.Error(err))
	}

	verifier, err := authutils.NewJWTVerifier(cfg.JWTSecret, logger)
	if err != nil {
		logger.Fatal("Failed to create token verifier", zap.Error(err))
	}

	gymPassHandler := handler.NewGymPassHandler(offerSvc, passSvc, verifier, translator, logger)

	// --- HTTP Server Setup (Echo) ---
	e := echo.New()
	e.HideBanner = true
	e.Validator = i18n.NewEchoValidator(validate)
	e.Use(sharedMiddleware.EchoZapLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(sharedMiddleware.EchoLocale())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.GetAllowedOrigins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Accept-Language"},
		AllowCredentials: true,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))

	healthHandler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
	e.GET("/health", healthHandler)
	e.HEAD("/health", healthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	gymPassHandler.RegisterRoutes(e)

	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	logger.Info("Shutting down gympass service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Gympass service stopped")
}
