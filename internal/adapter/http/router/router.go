package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chandlerpc/SignSpeak/internal/adapter/http/handler"
	"github.com/chandlerpc/SignSpeak/internal/adapter/http/middleware"
	"github.com/chandlerpc/SignSpeak/internal/usecase"
)

// Setup creates and configures the Gin router. imageSize is the model
// input side length used by the image upload endpoint; modelLoaded
// reflects whether startup loading completed (always true once the
// listener is up).
func Setup(predictUC usecase.PredictUsecase, imageSize int, modelLoaded bool, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(modelLoaded)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Prediction endpoints
	predictHandler := handler.NewPredictHandler(predictUC, imageSize)
	router.POST("/predict", predictHandler.Predict)
	router.POST("/predict/image", predictHandler.PredictFromImage)

	return router
}
