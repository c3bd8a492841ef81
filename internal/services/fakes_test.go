package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

type fakeResumeRepo struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*models.Resume
	failOn  string
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{resumes: map[uuid.UUID]*models.Resume{}}
}

func (r *fakeResumeRepo) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != "" && strings.Contains(resume.Text, r.failOn) {
		return errors.New("insert failed")
	}
	cp := *resume
	r.resumes[resume.ID] = &cp
	return nil
}

func (r *fakeResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return nil, fmt.Errorf("resume %s: %w", id, repositories.ErrNotFound)
	}
	cp := *resume
	return &cp, nil
}

func (r *fakeResumeRepo) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	out := make([]models.Resume, 0, len(ids))
	for _, id := range ids {
		resume, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, *resume)
	}
	return out, nil
}

func (r *fakeResumeRepo) MarkIndexed(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	resume.Indexed = true
	return nil
}

type fakeAnalysisRepo struct {
	mu        sync.Mutex
	analyses  map[uuid.UUID]*models.Analysis
	updateErr error
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{analyses: map[uuid.UUID]*models.Analysis{}}
}

func (r *fakeAnalysisRepo) Create(a *models.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.analyses[a.ID] = &cp
	return nil
}

func (r *fakeAnalysisRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAnalysisRepo) Claim(id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok || a.Status != models.StatusQueued {
		return false, nil
	}
	a.Status = models.StatusProcessing
	return true, nil
}

func (r *fakeAnalysisRepo) UpdateResult(id uuid.UUID, result *models.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	a := r.analyses[id]
	a.Status = models.StatusCompleted
	a.Strengths = &result.Strengths
	a.Gaps = &result.Gaps
	a.Suggestions = &result.Suggestions
	a.Summary = &result.Summary
	a.Degraded = result.Degraded
	return nil
}

func (r *fakeAnalysisRepo) UpdateError(id uuid.UUID, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.analyses[id]
	a.Status = models.StatusFailed
	a.ErrorMessage = &msg
	return nil
}

func (r *fakeAnalysisRepo) FindPendingJobs(limit int) ([]models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Analysis
	for _, a := range r.analyses {
		if a.Status == models.StatusQueued && len(out) < limit {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeMatchRunRepo struct {
	mu        sync.Mutex
	runs      []models.MatchRun
	err       error
	lastLimit int
}

func (r *fakeMatchRunRepo) Create(run *models.MatchRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.runs = append(r.runs, *run)
	return nil
}

func (r *fakeMatchRunRepo) FindByID(id uuid.UUID) (*models.MatchRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, run := range r.runs {
		if run.ID == id {
			cp := run
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeMatchRunRepo) ListRecent(limit int) ([]models.MatchRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	return append([]models.MatchRun(nil), r.runs...), nil
}

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (g *fakeGenerator) GenerateTextWithRetry(_ context.Context, _ string, _ float32, _ int) (string, error) {
	g.calls++
	return g.reply, g.err
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (s *memStorage) Save(_ context.Context, name string, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := storageKey(name)
	s.objects[key] = data
	return key, nil
}

func (s *memStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("missing")
	}
	return data, nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// wordEmbedder embeds text as counts of a few fixed words.
type wordEmbedder struct {
	err error
}

var embedWords = []string{"python", "golang", "sales", "data"}

func (e *wordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	lower := strings.ToLower(text)
	vec := make([]float32, len(embedWords))
	for i, w := range embedWords {
		vec[i] = float32(strings.Count(lower, w))
	}
	return vec, nil
}

type fakeIndex struct {
	mu      sync.Mutex
	points  map[uuid.UUID][]float32
	names   map[uuid.UUID]string
	failErr error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{points: map[uuid.UUID][]float32{}, names: map[uuid.UUID]string{}}
}

func (f *fakeIndex) InitCollection(context.Context) error { return nil }

func (f *fakeIndex) UpsertResume(_ context.Context, id uuid.UUID, name string, _ []string, vec []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.points[id] = vec
	f.names[id] = name
	return nil
}

func (f *fakeIndex) SearchSimilar(_ context.Context, query []float32, limit int) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []SearchResult
	for id, vec := range f.points {
		var dot float32
		for i := range vec {
			dot += vec[i] * query[i]
		}
		if dot > 0 {
			out = append(out, SearchResult{ResumeID: id.String(), Name: f.names[id], Score: dot})
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeIndex) DeleteResume(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.points, id)
	return nil
}
