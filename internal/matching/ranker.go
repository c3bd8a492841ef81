// Package matching scores and ranks candidates against a job description.
package matching

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/textvec"
)

// Aggregation weights for the final match score.
const (
	semanticWeight = 0.6
	tfidfWeight    = 0.2
	skillsWeight   = 0.1
	graphWeight    = 0.1
)

// Breakdown holds the sub-scores that went into a match.
type Breakdown struct {
	Semantic float64 `json:"semantic"`
	TFIDF    float64 `json:"tfidf"`
	Skills   float64 `json:"skills"`
	Graph    float64 `json:"graph"`
	Final    float64 `json:"final"`
}

// Result is one ranked candidate. Index is the candidate's input position.
type Result struct {
	Index     int       `json:"-"`
	Name      string    `json:"name"`
	Match     int       `json:"match"`
	Breakdown Breakdown `json:"breakdown"`
}

// Ranker combines the four similarity signals into one ranking. It holds only
// read-only state and may serve concurrent requests.
type Ranker struct {
	ontology    *Ontology
	embedder    Embedder
	concurrency int
	logger      *zap.Logger
}

func NewRanker(ontology *Ontology, embedder Embedder, concurrency int, logger *zap.Logger) *Ranker {
	if ontology == nil {
		ontology = DefaultOntology()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		ontology:    ontology,
		embedder:    embedder,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Ontology returns the skill graph the ranker scores with.
func (r *Ranker) Ontology() *Ontology {
	return r.ontology
}

// EmbeddingAvailable reports whether semantic scoring can run.
func (r *Ranker) EmbeddingAvailable() bool {
	return r.embedder != nil
}

// ValidateJob checks that job carries a description and required skills.
func ValidateJob(job models.JobDescription) error {
	if strings.TrimSpace(job.Description) == "" {
		return &InvalidRequestError{Reason: "job description is required"}
	}
	if len(NewSkillSet(job.RequiredSkills...)) == 0 {
		return &InvalidRequestError{Reason: "job required skills are required"}
	}
	return nil
}

// Validate checks the ranking preconditions.
func Validate(job models.JobDescription, candidates []models.Candidate) error {
	if err := ValidateJob(job); err != nil {
		return err
	}
	if len(candidates) == 0 {
		return &InvalidRequestError{Reason: "at least one candidate must be provided"}
	}
	return nil
}

// Rank scores every candidate against job and returns them sorted by match,
// highest first. Ties keep input order. Any scoring failure fails the whole
// call; partial rankings are never returned.
func (r *Ranker) Rank(ctx context.Context, job models.JobDescription, candidates []models.Candidate) ([]Result, error) {
	if err := Validate(job, candidates); err != nil {
		return nil, err
	}
	if r.embedder == nil {
		return nil, &ModelUnavailableError{Model: "embedding model"}
	}

	start := time.Now()

	jobVec, err := r.embedder.Embed(ctx, job.Description)
	if err != nil {
		return nil, &ComputationError{Step: "job embedding", Err: err}
	}

	jobSkills := make([]string, 0, len(job.RequiredSkills)+len(job.PreferredSkills))
	jobSkills = append(jobSkills, job.RequiredSkills...)
	jobSkills = append(jobSkills, job.PreferredSkills...)

	results := make([]Result, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, candidate := range candidates {
		g.Go(func() error {
			breakdown, err := r.score(gctx, job, jobSkills, jobVec, candidate)
			if err != nil {
				return err
			}
			results[i] = Result{
				Index:     i,
				Name:      candidate.Name,
				Match:     matchPercentage(breakdown.Final),
				Breakdown: breakdown,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Warn("ranking failed",
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Match > results[j].Match
	})

	r.logger.Info("ranked candidates",
		zap.String("job_title", job.Title),
		zap.Int("candidates", len(candidates)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return results, nil
}

func (r *Ranker) score(ctx context.Context, job models.JobDescription, jobSkills []string, jobVec []float32, candidate models.Candidate) (Breakdown, error) {
	var b Breakdown

	b.Skills = SkillsMatchScore(candidate.ExtractedSkills, job.RequiredSkills, job.PreferredSkills)

	if strings.TrimSpace(candidate.ResumeText) != "" {
		resumeVec, err := r.embedder.Embed(ctx, candidate.ResumeText)
		if err != nil {
			return b, &ComputationError{Step: "semantic similarity", Candidate: candidate.Name, Err: err}
		}
		b.Semantic = textvec.CosineDense(resumeVec, jobVec) * 100
	}

	b.TFIDF = TFIDFSimilarity(candidate.ResumeText, job.Description)
	b.Graph = r.ontology.SkillGraphScore(candidate.ExtractedSkills, jobSkills)

	b.Final = semanticWeight*b.Semantic +
		tfidfWeight*b.TFIDF +
		skillsWeight*b.Skills +
		graphWeight*b.Graph

	return b, nil
}

// matchPercentage rounds half to even and clamps into [0,100]. Sub-scores
// are non-negative for text embeddings in practice, but a negative cosine
// must not leak a negative match.
func matchPercentage(final float64) int {
	if math.IsNaN(final) {
		return 0
	}
	m := math.RoundToEven(final)
	if m > 100 {
		m = 100
	}
	if m < 0 {
		m = 0
	}
	return int(m)
}
