package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"houseprice/internal/config"
	"houseprice/internal/handler"
	"houseprice/internal/logger"
	"houseprice/internal/repository"
	"houseprice/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, closeLog, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer closeLog()

	zlog.Info("House Price Prediction API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// The model is loaded exactly once; the server never starts without it
	artifact, err := repository.LoadArtifact(cfg.Model.Path)
	if err != nil {
		zlog.Fatal("Failed to load model", zap.Error(err))
	}
	linear, err := service.NewLinearModel(artifact, cfg.Model.Path)
	if err != nil {
		zlog.Fatal("Model does not match the feature schema", zap.Error(err))
	}
	predictor := service.NewPredictionService(linear)

	info := predictor.Info()
	zlog.Info("Model loaded",
		zap.String("path", cfg.Model.Path),
		zap.String("model_type", info.ModelType),
		zap.String("schema_version", info.SchemaVersion),
		zap.Int("feature_count", info.FeatureCount),
	)

	// Initialize handlers
	predictionHandler, err := handler.NewPredictionHandler(predictor, zlog, cfg.Prediction.BatchMaxSize)
	if err != nil {
		zlog.Fatal("Failed to initialize handlers", zap.Error(err))
	}
	infoHandler := handler.NewInfoHandler(predictor, handler.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	})

	// Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(logger.RequestLogger(zlog), logger.Recovery(zlog))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", logger.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	handler.Register(router, predictionHandler, infoHandler)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}
	zlog.Info("Server stopped")
}
