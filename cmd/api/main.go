package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peer-backend/config"
	v1 "peer-backend/internal/delivery/http/v1"
	"peer-backend/internal/repository/postgres"
	"peer-backend/internal/usecase"
	"peer-backend/pkg/auth"
	"peer-backend/pkg/database"
	"peer-backend/pkg/email"
	"peer-backend/pkg/logger"
	"peer-backend/pkg/redis"
	"peer-backend/pkg/security"
	"peer-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           Peer API
// @version         1.0
// @description     Backend for the Peer professional network.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Log.Info("Starting peer backend", "port", cfg.Port)

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Redis backs rate limiting and the failed-login tracker; both fall
	// back gracefully when it is absent.
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, falling back to in-memory rate limiting", "error", err)
		}
		defer redis.Close()
	}

	store, uploadsDir, err := buildStore(cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	postRepo := postgres.NewPostRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)

	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - welcome emails disabled")
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	tracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	})

	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo, issuer, emailService)
	profileUC := usecase.NewProfileUsecase(profileRepo, userRepo, store, validate)
	postUC := usecase.NewPostUsecase(postRepo, userRepo, store)
	jobUC := usecase.NewJobUsecase(jobRepo)
	messageUC := usecase.NewMessageUsecase(messageRepo)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:     authUC,
		ProfileUC:  profileUC,
		PostUC:     postUC,
		JobUC:      jobUC,
		MessageUC:  messageUC,
		Issuer:     issuer,
		Tracker:    tracker,
		Config:     cfg,
		UploadsDir: uploadsDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// buildStore selects the photo storage backend. The second return value
// is the local directory to serve statically, empty for S3.
func buildStore(cfg *config.Config) (storage.Store, string, error) {
	if cfg.StorageBackend == "s3" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			return nil, "", err
		}
		if err := s3Store.CheckAccess(context.Background()); err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	}

	localStore, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", err
	}
	return localStore, localStore.Dir(), nil
}
