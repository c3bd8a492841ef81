package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Health   *HealthHandler
	Match    *MatchHandler
	Predict  *PredictHandler
	Resume   *ResumeHandler
	Analysis *AnalysisHandler
}

// Register mounts every route on app.
func Register(app *fiber.App, h Handlers) {
	app.Get("/", h.Health.HandleRoot)
	app.Post("/match-resumes", h.Match.HandleMatchResumes)
	app.Post("/predict-hiring", h.Predict.HandlePredictHiring)

	api := app.Group("/api/v1")
	api.Get("/health", h.Health.HandleHealth)

	api.Post("/jobs/rank", h.Match.HandleRankStored)
	api.Get("/match-runs", h.Match.HandleListRuns)
	api.Get("/match-runs/:id", h.Match.HandleGetRun)

	api.Post("/resumes", h.Resume.HandleUpload)
	api.Post("/resumes/search", h.Resume.HandleSearch)
	api.Get("/resumes/:id", h.Resume.HandleGet)

	api.Post("/analyses", h.Analysis.HandleCreate)
	api.Get("/analyses/:id", h.Analysis.HandleGet)
}

// ErrorHandler renders framework errors (unknown routes, body limits,
// panics caught by recover) as {"error", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
