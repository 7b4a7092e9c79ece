package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PredictionResponse is the success payload for the predict endpoints.
type PredictionResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// ErrorResponse is the error payload for every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}

// A request yields exactly one of these payloads, never both.

func respondPrediction(c *gin.Context, prediction string, confidence float64) {
	c.JSON(http.StatusOK, PredictionResponse{
		Prediction: prediction,
		Confidence: confidence,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}
