package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chandlerpc/SignSpeak/internal/usecase"
)

// MapPredictError maps pipeline errors to an HTTP status and client
// message. Input problems are the client's fault (400); anything that
// went wrong past the model boundary is ours (500).
func MapPredictError(err error) (int, string) {
	var shapeErr *usecase.InvalidShapeError
	var infErr *usecase.InferenceError

	switch {
	case errors.Is(err, usecase.ErrMissingImage),
		errors.Is(err, usecase.ErrMalformedImage):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &shapeErr):
		return http.StatusBadRequest, shapeErr.Error()
	case errors.As(err, &infErr):
		return http.StatusInternalServerError, infErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// HandlePredictError sends the error payload for a pipeline failure.
func HandlePredictError(c *gin.Context, err error) {
	status, message := MapPredictError(err)
	respondError(c, status, message)
}
