package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

type RankedStored struct {
	MatchRunID uuid.UUID
	Resumes    []models.Resume
	Results    []matching.Result
}

// MatchService runs the ranker over inline or stored candidates and records
// each successful ranking in the background.
type MatchService struct {
	ranker  *matching.Ranker
	resumes repositories.ResumeRepository
	runs    repositories.MatchRunRepository
	log     *zap.Logger
	pending sync.WaitGroup
}

// NewMatchService wires the ranker to persistence. resumes and runs may be
// nil when no database is configured.
func NewMatchService(ranker *matching.Ranker, resumes repositories.ResumeRepository, runs repositories.MatchRunRepository, log *zap.Logger) *MatchService {
	return &MatchService{
		ranker:  ranker,
		resumes: resumes,
		runs:    runs,
		log:     log,
	}
}

func (s *MatchService) Ranker() *matching.Ranker {
	return s.ranker
}

// Rank ranks inline candidates.
func (s *MatchService) Rank(ctx context.Context, job models.JobDescription, candidates []models.Candidate) ([]matching.Result, error) {
	results, err := s.ranker.Rank(ctx, job, candidates)
	if err != nil {
		return nil, err
	}
	s.record(uuid.New(), job, results)
	return results, nil
}

// RankStored loads resumes by id, in request order, and ranks them.
func (s *MatchService) RankStored(ctx context.Context, job models.JobDescription, ids []uuid.UUID) (*RankedStored, error) {
	if err := matching.ValidateJob(job); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, &matching.InvalidRequestError{Reason: "at least one resume id must be provided"}
	}
	if s.resumes == nil {
		return nil, &matching.ModelUnavailableError{Model: "resume store"}
	}

	resumes, err := s.resumes.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, len(resumes))
	for i := range resumes {
		candidates[i] = resumes[i].ToCandidate()
	}

	results, err := s.ranker.Rank(ctx, job, candidates)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	s.record(runID, job, results)

	return &RankedStored{
		MatchRunID: runID,
		Resumes:    resumes,
		Results:    results,
	}, nil
}

// record persists a match run without blocking the caller. Failures are
// logged only.
func (s *MatchService) record(id uuid.UUID, job models.JobDescription, results []matching.Result) {
	if s.runs == nil || len(results) == 0 {
		return
	}

	payload, err := json.Marshal(results)
	if err != nil {
		s.log.Warn("⚠️ Failed to encode match run", zap.Error(err))
		return
	}

	run := &models.MatchRun{
		ID:             id,
		JobTitle:       job.Title,
		CandidateCount: len(results),
		TopMatch:       results[0].Match,
		Results:        string(payload),
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.runs.Create(run); err != nil {
			s.log.Warn("⚠️ Failed to record match run", zap.String("match_run_id", id.String()), zap.Error(err))
		}
	}()
}

// Wait blocks until background match run writes finish.
func (s *MatchService) Wait() {
	s.pending.Wait()
}

func (s *MatchService) ListRuns(limit int) ([]models.MatchRun, error) {
	if s.runs == nil {
		return nil, &matching.ModelUnavailableError{Model: "match run store"}
	}
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	return s.runs.ListRecent(limit)
}

func (s *MatchService) GetRun(id uuid.UUID) (*models.MatchRun, error) {
	if s.runs == nil {
		return nil, &matching.ModelUnavailableError{Model: "match run store"}
	}
	return s.runs.FindByID(id)
}
