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

	"gym-server/notifications/internal/config"
	"gym-server/notifications/internal/handler"
	notificationsMessaging "gym-server/notifications/internal/messaging"
	"gym-server/notifications/internal/repository"
	"gym-server/notifications/internal/service"
	"gym-server/pkg/migration"
	"gym-server/shared/authutils"
	"gym-server/shared/database"
	"gym-server/shared/i18n"
	sharedLogger "gym-server/shared/logger"
	"gym-server/shared/messaging"
	sharedMiddleware "gym-server/shared/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.Log.Level,
		Encoding: "json",
		Service:  cfg.ServiceID,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("Starting notifications service...", zap.String("env", cfg.Env))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgPool, err := database.ConnectPostgres(rootCtx, cfg.DatabaseConfig(), database.DefaultRetryPolicy, logger)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	migrator := migration.NewMigrator(migration.Config{
		MigrationsFS:   database.MigrationsFS,
		MigrationsPath: database.MigrationsDir,
	}, pgPool, migration.NewLogger(cfg.Log.Level, cfg.ServiceID))
	if err := migrator.Up(rootCtx); err != nil {
		logger.Fatal("Failed to apply database migrations", zap.Error(err))
	}

	mqConn, err := messaging.Connect(rootCtx, cfg.RabbitMQ.URL, 50, 5*time.Second, logger)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()

	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Fatal("Unexpected gin validator engine")
	}
	translator, err := i18n.NewTranslator(validate)
	if err != nil {
		logger.Fatal("Failed to initialize translator", zap.Error(err))
	}

	// --- Push senders ---
	fcmSender, err := service.NewFCMSender(rootCtx, cfg.FCM, logger)
	if err != nil {
		logger.Fatal("Failed to initialize FCM sender", zap.Error(err))
	}
	apnsSender, err := service.NewApnsSender(cfg.APNS, logger)
	if err != nil {
		logger.Fatal("Failed to initialize APNS sender", zap.Error(err))
	}
	timezone, err := cfg.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", zap.Error(err))
	}

	// --- Dependency Injection ---
	tokenRepo := repository.NewPgDeviceTokenRepository(pgPool, logger)
	deviceSvc := service.NewDeviceService(tokenRepo, logger)
	notificationSvc := service.NewNotificationService(tokenRepo, translator, timezone, fcmSender, apnsSender, logger)

	trainingEvents := notificationsMessaging.NewTrainingEventsHandler(notificationSvc, logger)
	consumerCfg := notificationsMessaging.ConsumerConfig()
	consumerCfg.Prefetch = cfg.RabbitMQ.Prefetch
	consumer := messaging.NewConsumer(mqConn, consumerCfg, trainingEvents.Handle, logger)
	if err := consumer.Start(rootCtx); err != nil {
		logger.Fatal("Failed to start training notifications consumer", zap.Error(err))
	}

	verifier, err := authutils.NewJWTVerifier(cfg.JWTSecret, logger)
	if err != nil {
		logger.Fatal("Failed to create token verifier", zap.Error(err))
	}
	devicesHandler := handler.NewDevicesHandler(deviceSvc, verifier, translator, logger)

	// --- HTTP Server Setup (Gin) ---
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(gin.Recovery())
	router.Use(sharedMiddleware.GinLocale())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.GetAllowedOrigins()
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept-Language"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	devicesHandler.RegisterRoutes(router)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	logger.Info("Shutting down notifications service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP Server forced to shutdown", zap.Error(err))
	}
	if err := consumer.Stop(); err != nil {
		logger.Error("Failed to stop consumer", zap.Error(err))
	}

	logger.Info("Notifications service stopped")
}
