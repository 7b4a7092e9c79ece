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
	"go.uber.org/zap"

	"github.com/chandlerpc/SignSpeak/internal/adapter/http/router"
	"github.com/chandlerpc/SignSpeak/internal/adapter/model"
	"github.com/chandlerpc/SignSpeak/internal/infrastructure/config"
	"github.com/chandlerpc/SignSpeak/internal/infrastructure/logger"
	"github.com/chandlerpc/SignSpeak/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Load class labels; failure is fatal, there is no partial service
	labels, err := model.LoadLabelTable(cfg.Model.LabelsPath)
	if err != nil {
		log.Error("Failed to load class labels", zap.Error(err))
		return fmt.Errorf("failed to load class labels: %w", err)
	}
	log.Info("Loaded class labels", zap.Int("count", labels.Len()))

	// Load the model; failure is fatal
	mdl, err := model.NewONNXModel(cfg.Model.Path, cfg.Model.MetadataPath)
	if err != nil {
		log.Error("Failed to load model", zap.Error(err))
		return fmt.Errorf("failed to load model: %w", err)
	}
	defer mdl.Close()
	log.Info("Model loaded",
		zap.String("path", cfg.Model.Path),
		zap.String("input_shape", mdl.InputShape().String()),
	)

	// The model and labels are loaded: the service is Ready from here
	// on and never transitions back.
	predictUC := usecase.NewPredictUsecase(mdl, labels, log, cfg.Model.InferTimeout)

	imageSize := imageSizeFromShape(mdl)
	r := router.Setup(predictUC, imageSize, true, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

// imageSizeFromShape derives the upload resize target from the
// model's (1, H, W, C) input shape.
func imageSizeFromShape(mdl *model.ONNXModel) int {
	shape := mdl.InputShape()
	if len(shape) == 4 {
		return shape[1]
	}
	return 160
}
