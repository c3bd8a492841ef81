package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// HandleMatchResumes handles POST /match-resumes
func (h *MatchHandler) HandleMatchResumes(c *fiber.Ctx) error {
	var req models.MatchRequest
	if err := decodeStrict(c, &req); err != nil {
		return writeError(c, err)
	}

	results, err := h.matchService.Rank(c.UserContext(), req.Job.ToJob(), req.ToCandidates())
	if err != nil {
		return writeError(c, err)
	}

	matched := make([]models.MatchedCandidate, len(results))
	for i, r := range results {
		matched[i] = models.MatchedCandidate{Name: r.Name, Match: r.Match}
	}

	return c.JSON(models.MatchResponse{Candidates: matched})
}

// HandleRankStored handles POST /api/v1/jobs/rank
func (h *MatchHandler) HandleRankStored(c *fiber.Ctx) error {
	var req models.RankStoredRequest
	if err := decodeStrict(c, &req); err != nil {
		return writeError(c, err)
	}

	ids := make([]uuid.UUID, 0, len(req.ResumeIDs))
	for _, raw := range req.ResumeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid resume id: "+raw)
		}
		ids = append(ids, id)
	}

	ranked, err := h.matchService.RankStored(c.UserContext(), req.Job.ToJob(), ids)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]models.RankedResume, len(ranked.Results))
	for i, r := range ranked.Results {
		out[i] = models.RankedResume{
			ResumeID:  ranked.Resumes[r.Index].ID.String(),
			Name:      r.Name,
			Match:     r.Match,
			Breakdown: toBreakdown(r.Breakdown),
		}
	}

	return c.JSON(models.RankStoredResponse{
		MatchRunID: ranked.MatchRunID.String(),
		Candidates: out,
	})
}

// HandleListRuns handles GET /api/v1/match-runs
func (h *MatchHandler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.matchService.ListRuns(c.QueryInt("limit", 20))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"runs": runs})
}

// HandleGetRun handles GET /api/v1/match-runs/:id
func (h *MatchHandler) HandleGetRun(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid match run id format")
	}

	run, err := h.matchService.GetRun(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(run)
}

func toBreakdown(b matching.Breakdown) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		Semantic: b.Semantic,
		TFIDF:    b.TFIDF,
		Skills:   b.Skills,
		Graph:    b.Graph,
	}
}
