package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

type AnalysisHandler struct {
	analysisRepo repositories.AnalysisRepository
	resumeRepo   repositories.ResumeRepository
	worker       services.Worker
}

func NewAnalysisHandler(
	analysisRepo repositories.AnalysisRepository,
	resumeRepo repositories.ResumeRepository,
	worker services.Worker,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisRepo: analysisRepo,
		resumeRepo:   resumeRepo,
		worker:       worker,
	}
}

func (h *AnalysisHandler) available() bool {
	return h.analysisRepo != nil && h.resumeRepo != nil && h.worker != nil
}

// HandleCreate handles POST /api/v1/analyses
func (h *AnalysisHandler) HandleCreate(c *fiber.Ctx) error {
	if !h.available() {
		return writeError(c, &matching.ModelUnavailableError{Model: "analysis store"})
	}

	var req models.AnalyzeRequest
	if err := decodeStrict(c, &req); err != nil {
		return writeError(c, err)
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return badRequest(c, "invalid resume_id format")
	}

	if _, err := h.resumeRepo.FindByID(resumeID); err != nil {
		return writeError(c, err)
	}

	analysis := &models.Analysis{
		ID:             uuid.New(),
		ResumeID:       resumeID,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Status:         models.StatusQueued,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		return writeError(c, err)
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:     analysis.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGet handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) HandleGet(c *fiber.Ctx) error {
	if !h.available() {
		return writeError(c, &matching.ModelUnavailableError{Model: "analysis store"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid analysis id format")
	}

	analysis, err := h.analysisRepo.FindByID(id)
	if err != nil {
		return writeError(c, err)
	}

	resp := models.AnalysisResponse{
		ID:           analysis.ID.String(),
		Status:       string(analysis.Status),
		ErrorMessage: analysis.ErrorMessage,
	}

	if analysis.Status == models.StatusCompleted {
		resp.Result = &models.AnalysisResult{
			Strengths:   deref(analysis.Strengths),
			Gaps:        deref(analysis.Gaps),
			Suggestions: deref(analysis.Suggestions),
			Summary:     deref(analysis.Summary),
			Degraded:    analysis.Degraded,
		}
	}

	return c.JSON(resp)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
