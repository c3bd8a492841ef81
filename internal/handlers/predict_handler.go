package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/hiring"
	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
)

type PredictHandler struct {
	predictor *hiring.Predictor
}

func NewPredictHandler(predictor *hiring.Predictor) *PredictHandler {
	return &PredictHandler{predictor: predictor}
}

// HandlePredictHiring handles POST /predict-hiring
func (h *PredictHandler) HandlePredictHiring(c *fiber.Ctx) error {
	if !h.predictor.Available() {
		return writeError(c, &matching.ModelUnavailableError{Model: "hiring prediction model"})
	}

	var req models.HiringPredictionRequest
	if err := decodeStrict(c, &req); err != nil {
		return writeError(c, err)
	}

	prediction, err := h.predictor.Predict(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.HiringPredictionResponse{
		HiredPrediction:   prediction.Hired,
		HiringProbability: prediction.Probability,
		Message:           prediction.Message,
	})
}
