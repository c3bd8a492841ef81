package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type ResumeHandler struct {
	resumeService services.ResumeService
	maxFileSize   int64
}

// NewResumeHandler accepts a nil service; every route then answers 503.
func NewResumeHandler(resumeService services.ResumeService, maxFileSize int64) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
		maxFileSize:   maxFileSize,
	}
}

func (h *ResumeHandler) unavailable(c *fiber.Ctx) error {
	return writeError(c, &matching.ModelUnavailableError{Model: "resume store"})
}

// HandleUpload handles POST /api/v1/resumes
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	if h.resumeService == nil {
		return h.unavailable(c)
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return badRequest(c, "resume file is required")
	}

	if file.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize))
	}

	if services.ContentTypeFor(file.Filename) == "" {
		return badRequest(c, "resume must be a .pdf, .docx or .txt file")
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		return badRequest(c, "failed to read uploaded file")
	}

	resume, err := h.resumeService.Ingest(c.UserContext(), services.UploadInput{
		Filename:      file.Filename,
		CandidateName: c.FormValue("name"),
		Data:          data,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resume.ToResponse())
}

// HandleGet handles GET /api/v1/resumes/:id
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	if h.resumeService == nil {
		return h.unavailable(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid resume id format")
	}

	resume, err := h.resumeService.Get(id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resume.ToResponse())
}

// HandleSearch handles POST /api/v1/resumes/search
func (h *ResumeHandler) HandleSearch(c *fiber.Ctx) error {
	if h.resumeService == nil {
		return h.unavailable(c)
	}

	var req models.SearchRequest
	if err := decodeStrict(c, &req); err != nil {
		return writeError(c, err)
	}

	results, err := h.resumeService.Search(c.UserContext(), req.Query, req.Limit)
	if err != nil {
		return writeError(c, err)
	}

	hits := make([]models.SearchHit, len(results))
	for i, r := range results {
		hits[i] = models.SearchHit{ResumeID: r.ResumeID, Name: r.Name, Score: r.Score}
	}

	return c.JSON(fiber.Map{"results": hits})
}
