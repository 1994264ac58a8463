package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Infinite-Tech-Repair/service-repair/internal/application"
	"github.com/Infinite-Tech-Repair/service-repair/internal/cache"
	"github.com/Infinite-Tech-Repair/service-repair/internal/config"
	"github.com/Infinite-Tech-Repair/service-repair/internal/database"
	"github.com/Infinite-Tech-Repair/service-repair/internal/events"
	"github.com/Infinite-Tech-Repair/service-repair/internal/handler"
	"github.com/Infinite-Tech-Repair/service-repair/internal/health"
	"github.com/Infinite-Tech-Repair/service-repair/internal/logger"
	"github.com/Infinite-Tech-Repair/service-repair/internal/middleware"
	"github.com/Infinite-Tech-Repair/service-repair/internal/notification"
	"github.com/Infinite-Tech-Repair/service-repair/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-repair")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-repair",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.BookingModel{}, &repository.ArchivedBookingModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(database.URL(cfg.DBConfig), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka publisher when brokers are configured
	var publisher application.EventPublisher
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaPublisher := events.NewPublisher(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
	} else {
		log.Info("no kafka brokers configured, event publishing disabled")
	}

	// Initialize tracking cache when redis is configured
	var trackingCache application.TrackingCache
	if cfg.RedisConfig.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer func() { _ = redisClient.Close() }()
		trackingCache = cache.NewTrackingCache(redisClient, cfg.RedisConfig.TTL, log)
	} else {
		log.Info("no redis address configured, lookup caching disabled")
	}

	// Initialize notification dispatcher
	mailer := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTPConfig.Host,
		Port:     cfg.SMTPConfig.Port,
		Username: cfg.SMTPConfig.Username,
		Password: cfg.SMTPConfig.Password,
		From:     cfg.SMTPConfig.From,
		FromName: cfg.SMTPConfig.FromName,
	})
	dispatcher := notification.NewDispatcher(mailer, log)

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	archiver := repository.NewGormArchiver(db)
	searchEngine := repository.NewGormSearchEngine(db)

	// Initialize application service
	bookingService := application.NewBookingService(
		bookingRepo,
		archiver,
		searchEngine,
		dispatcher,
		publisher,
		trackingCache,
		log,
	)

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminHandler := handler.NewAdminHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-repair")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup)
	adminHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-repair...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	// Drain pending notifications before exiting
	dispatcher.Close()

	log.Info("service-repair stopped")
}
