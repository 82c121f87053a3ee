package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"moviehub/database"
	"moviehub/internal/admin"
	"moviehub/internal/config"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/adminsite"
	"moviehub/internal/microservices/http-api/handler"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// Flash messages are optional: without redis they only come back inline.
	var messages repository.MessageStore
	rdb, err := repository.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis_unavailable", "addr", cfg.RedisAddr(), "error", err)
		messages = repository.NewRedisMessageStore(nil, cfg.MessageTTL)
	} else {
		defer rdb.Close()
		messages = repository.NewRedisMessageStore(rdb, cfg.MessageTTL)
	}

	storage := media.NewStorage(cfg.MediaURL, cfg.MediaRoot)

	// Repositories
	movieRepo := repository.NewMovieRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	actorRepo := repository.NewActorRepo(db)
	reviewRepo := repository.NewReviewRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	staffRepo := repository.NewStaffUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)

	// Services
	catalogService := service.NewCatalogService(movieRepo, genreRepo, actorRepo, reviewRepo, ratingRepo, storage.URL, logger)
	reviewService := service.NewReviewService(reviewRepo, movieRepo, logger)
	ratingService := service.NewRatingService(ratingRepo, movieRepo)
	authService := service.NewAuthService(staffRepo, refreshRepo, cfg)

	site, err := adminsite.NewSite(admin.SiteConfig{
		Title:  cfg.AdminSiteTitle,
		Header: cfg.AdminSiteHeader,
	}, db, storage, logger)
	if err != nil {
		logger.Error("admin_site_failed", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	limiter := middleware.NewIPRateLimiter(cfg.SubmissionRate, cfg.SubmissionBurst)
	limit := middleware.RateLimit(limiter)

	handler.NewCatalogHandler(catalogService).RegisterRoutes(r)
	handler.NewReviewHandler(reviewService).RegisterRoutes(r, limit)
	handler.NewRatingHandler(ratingService).RegisterRoutes(r, limit)
	handler.NewAuthHandler(authService).RegisterRoutes(r.Group("/auth"))

	adminGroup := r.Group("/admin", middleware.AuthMiddleware(authService), middleware.RequireAdmin())
	handler.NewAdminHandler(site, messages).RegisterRoutes(adminGroup)

	r.Static(strings.TrimSuffix(cfg.MediaURL, "/"), storage.Root())

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", srv.Addr, "tls", cfg.TLSEnabled)
		var err error
		if cfg.TLSEnabled {
			err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
		return
	}
	logger.Info("server_stopped_gracefully")
}
