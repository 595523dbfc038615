package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/learning-content-service/internal/cache"
	"github.com/SAP-F-2025/learning-content-service/internal/config"
	"github.com/SAP-F-2025/learning-content-service/internal/handlers"
	"github.com/SAP-F-2025/learning-content-service/internal/progress"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/SAP-F-2025/learning-content-service/internal/validator"
	"github.com/SAP-F-2025/learning-content-service/pkg"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory cache", "error", err)
		cacheService = cache.NewMemoryCache()
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger, "learning:")
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		log.Fatalf("failed to create event publisher: %v", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.LogError(err, "Failed to close event publisher")
		}
	}()

	var idp services.IdentityProvider
	if cfg.Casdoor.ClientID != "" {
		idp = casdoorsdk.NewClient(
			cfg.Casdoor.Endpoint,
			cfg.Casdoor.ClientID,
			cfg.Casdoor.ClientSecret,
			cfg.Casdoor.Certificate,
			cfg.Casdoor.OrganizationName,
			cfg.Casdoor.ApplicationName,
		)
	} else {
		logger.Warn("CASDOOR_CLIENT_ID not set, login disabled")
	}

	repo := postgres.NewRepository(db, cacheService, slogger)
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:               repo,
		Cache:              cacheService,
		Publisher:          publisher,
		IdentityProvider:   idp,
		Validator:          validator.New(),
		Logger:             slogger,
		UploadProgress:     progress.NewTweenSource(cfg.UploadDuration),
		GenerationProgress: progress.NewTweenSource(cfg.GenerationDuration),
		MaxUploadBytes:     cfg.MaxUploadBytes,
		TokenTTL:           cfg.TokenTTL,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestIDMiddleware(), utils.LoggerMiddleware(logger))
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	handlerManager := handlers.NewHandlerManager(serviceManager, map[string]handlers.HealthCheck{
		"database": repo.Ping,
		"cache":    cacheService.Ping,
	}, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.LogError(err, "Server forced to shutdown")
	}
}
