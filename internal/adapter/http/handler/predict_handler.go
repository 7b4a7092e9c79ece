package handler

import (
	"encoding/json"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chandlerpc/SignSpeak/internal/usecase"
)

// PredictRequest is the JSON body for POST /predict. Image stays raw
// until the pipeline parses it into a tensor.
type PredictRequest struct {
	Image json.RawMessage `json:"image"`
}

// PredictHandler handles the prediction endpoints
type PredictHandler struct {
	predictUC usecase.PredictUsecase
	imageSize int
}

// NewPredictHandler creates a new predict handler. imageSize is the
// side length uploaded images are resized to before inference.
func NewPredictHandler(predictUC usecase.PredictUsecase, imageSize int) *PredictHandler {
	return &PredictHandler{predictUC: predictUC, imageSize: imageSize}
}

// Predict handles POST /predict
func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	output, err := h.predictUC.Predict(c.Request.Context(), req.Image)
	if err != nil {
		HandlePredictError(c, err)
		return
	}

	respondPrediction(c, output.Prediction, output.Confidence)
}

// PredictFromImage handles POST /predict/image. It accepts a
// multipart JPEG or PNG upload, resizes it to the model's input size
// and runs the same pipeline as /predict.
func (h *PredictHandler) PredictFromImage(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no image file provided; use 'image' as the form field name")
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid image format; supported: JPEG, PNG")
		return
	}

	tensor := imageToTensor(img, h.imageSize)

	output, err := h.predictUC.PredictTensor(c.Request.Context(), tensor)
	if err != nil {
		HandlePredictError(c, err)
		return
	}

	respondPrediction(c, output.Prediction, output.Confidence)
}
