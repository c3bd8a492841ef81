package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

type UploadInput struct {
	Filename      string
	CandidateName string
	Data          []byte
}

// ResumeService turns uploaded files into stored, skill-tagged resumes and
// keeps the vector index in step.
type ResumeService interface {
	Ingest(ctx context.Context, in UploadInput) (*models.Resume, error)
	Get(id uuid.UUID) (*models.Resume, error)
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

type resumeService struct {
	parser   ResumeParser
	storage  FileStorage
	repo     repositories.ResumeRepository
	ontology *matching.Ontology
	embedder matching.Embedder
	index    ResumeIndex
	log      *zap.Logger
}

// NewResumeService wires the ingestion pipeline. embedder and index may be
// nil; resumes are then stored unindexed and search is unavailable.
func NewResumeService(
	parser ResumeParser,
	storage FileStorage,
	repo repositories.ResumeRepository,
	ontology *matching.Ontology,
	embedder matching.Embedder,
	index ResumeIndex,
	log *zap.Logger,
) ResumeService {
	return &resumeService{
		parser:   parser,
		storage:  storage,
		repo:     repo,
		ontology: ontology,
		embedder: embedder,
		index:    index,
		log:      log,
	}
}

func (s *resumeService) Ingest(ctx context.Context, in UploadInput) (*models.Resume, error) {
	content, err := s.parser.ExtractText(in.Filename, in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	key, err := s.storage.Save(ctx, in.Filename, content.ContentType, in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	skills := s.ontology.ExtractSkills(content.Text).Sorted()

	name := strings.TrimSpace(in.CandidateName)
	if name == "" {
		name = guessName(content.Text)
	}

	resume := &models.Resume{
		ID:               uuid.New(),
		CandidateName:    name,
		Filename:         key,
		OriginalFileName: in.Filename,
		ContentType:      content.ContentType,
		StorageKey:       key,
		Text:             content.Text,
		Skills:           strings.Join(skills, ","),
	}

	if err := s.repo.Create(resume); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn("⚠️ Failed to remove orphaned file", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	log := s.log.With(zap.String("resume_id", resume.ID.String()))
	log.Info("📄 Resume stored",
		zap.String("file", in.Filename),
		zap.Int("skills", len(skills)),
		zap.Int("chars", len(content.Text)),
	)

	if err := s.indexResume(ctx, resume, skills); err != nil {
		log.Warn("⚠️ Resume not indexed", zap.Error(err))
	} else {
		resume.Indexed = true
	}

	return resume, nil
}

func (s *resumeService) indexResume(ctx context.Context, resume *models.Resume, skills []string) error {
	if s.embedder == nil || s.index == nil {
		return fmt.Errorf("vector index not configured")
	}

	embedding, err := s.embedder.Embed(ctx, resume.Text)
	if err != nil {
		return fmt.Errorf("failed to embed resume: %w", err)
	}

	if err := s.index.UpsertResume(ctx, resume.ID, resume.CandidateName, skills, embedding); err != nil {
		return err
	}

	return s.repo.MarkIndexed(resume.ID)
}

func (s *resumeService) Get(id uuid.UUID) (*models.Resume, error) {
	return s.repo.FindByID(id)
}

// Search returns the stored resumes nearest to query in embedding space.
func (s *resumeService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if s.embedder == nil || s.index == nil {
		return nil, &matching.ModelUnavailableError{Model: "resume search index"}
	}
	if strings.TrimSpace(query) == "" {
		return nil, &matching.InvalidRequestError{Reason: "query is empty"}
	}
	if limit <= 0 {
		limit = 10
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &matching.ComputationError{Step: "query embedding", Err: err}
	}

	results, err := s.index.SearchSimilar(ctx, embedding, limit)
	if err != nil {
		return nil, err
	}

	s.log.Debug("🔍 Resume search",
		zap.String("query", logger.Truncate(query, 80)),
		zap.Int("hits", len(results)),
	)
	return results, nil
}

// guessName uses the first line of a resume, which is where most resumes
// carry the candidate's name.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return logger.Truncate(line, 80)
	}
	return "Unknown"
}
