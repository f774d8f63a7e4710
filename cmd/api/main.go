package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/act-survey-api/internal/catalog"
	"github.com/noah-isme/act-survey-api/internal/config"
	"github.com/noah-isme/act-survey-api/internal/database"
	"github.com/noah-isme/act-survey-api/internal/events"
	"github.com/noah-isme/act-survey-api/internal/handler"
	"github.com/noah-isme/act-survey-api/internal/middleware"
	"github.com/noah-isme/act-survey-api/internal/repository"
	"github.com/noah-isme/act-survey-api/internal/router"
	"github.com/noah-isme/act-survey-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.RequireAdminCredentials(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to access database handle: %v", err)
	}
	defer sqlDB.Close()

	questions := catalog.Default()
	if cfg.CatalogPath != "" {
		questions, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("failed to load question catalog: %v", err)
		}
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher, err := events.NewPublisher(cfg.NATSURL, cfg.NATSSubject, logger)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer publisher.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	responseRepo := repository.NewResponseRepository(db)
	reportService := service.NewReportService(responseRepo, redisClient, cfg.StatsCacheTTL, logger)
	surveyService, err := service.NewSurveyService(service.NewResponseScorer(questions, validate), responseRepo, publisher, reportService, logger)
	if err != nil {
		log.Fatalf("failed to build survey service: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AccessLog:    cfg.AppEnv != "production",
		AllowOrigins: cfg.AllowOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		SurveyHandler: handler.NewSurveyHandler(surveyService, logger),
		StatsHandler:  handler.NewStatsHandler(reportService, logger),
		AdminHandler:  handler.NewAdminHandler(surveyService, reportService, logger),
		Database:      sqlDB,
		AdminAuth: middleware.AdminAuth(middleware.AdminCredentials{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
		}),
		SubmitLimiter: middleware.RateLimit("submit", cfg.SubmitRateLimit, time.Minute),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("driver", cfg.DatabaseDriver).Msg("survey api listening")
	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
