package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/hiring"
	"alfredoptarigan/resume-matcher/internal/matching"
)

type HealthHandler struct {
	ranker    *matching.Ranker
	predictor *hiring.Predictor
	database  bool
}

func NewHealthHandler(ranker *matching.Ranker, predictor *hiring.Predictor, database bool) *HealthHandler {
	return &HealthHandler{ranker: ranker, predictor: predictor, database: database}
}

// HandleRoot handles GET /
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Resume Matching API is running"})
}

// HandleHealth handles GET /api/v1/health. Missing models degrade the
// service but never fail the health check.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	embedding := h.ranker.EmbeddingAvailable()
	classifier := h.predictor.Available()

	status := "ok"
	if !embedding || !classifier || !h.database {
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":          status,
		"embedding_model": embedding,
		"hiring_model":    classifier,
		"database":        h.database,
	})
}
