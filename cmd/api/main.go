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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/config"
	"github.com/studioclass/review-api/internal/handler"
	"github.com/studioclass/review-api/internal/middleware"
	"github.com/studioclass/review-api/internal/repository"
	"github.com/studioclass/review-api/internal/router"
	"github.com/studioclass/review-api/internal/service"
	"github.com/studioclass/review-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	fileStorage, uploadDir, err := buildStorage(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise file storage: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid redis url: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewStaticUserRepository(repository.SeedUsers())
	submissionRepo := repository.NewMemorySubmissionRepository()

	hub := service.NewRealtimeHub(logger)
	scorer := service.NewCannedScoringService(logger)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, scorer, hub, fileStorage, validate, logger)
	statsService := service.NewStatsService(submissionRepo, redisClient, cfg.StatsCacheTTL, logger)
	uploadService := service.NewUploadService(fileStorage, cfg.MaxUploadSizeMB, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.MaxUploadSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		WebhookHandler:    handler.NewWebhookHandler(submissionService, logger),
		StatsHandler:      handler.NewStatsHandler(statsService, logger),
		UploadHandler:     handler.NewUploadHandler(uploadService, logger),
		RealtimeHandler:   handler.NewRealtimeHandler(hub, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
		UploadDir:         uploadDir,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildStorage selects the configured file backend. The local backend also
// reports its directory so the router can serve it statically.
func buildStorage(cfg config.Config, logger zerolog.Logger) (service.FileStorage, string, error) {
	if cfg.StorageBackend == "cloudinary" {
		backend, err := storage.NewCloudinary(storage.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
		if err != nil {
			return nil, "", err
		}
		return backend, "", nil
	}

	backend, err := storage.NewLocal(cfg.UploadDir, logger)
	if err != nil {
		return nil, "", err
	}
	return backend, backend.Dir(), nil
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
