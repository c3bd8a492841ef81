package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/matching"
)

const janeResume = "Jane Doe\nSenior engineer with Python, Django and PostgreSQL.\nRuns Docker on AWS."

func TestIngest_StoresAndIndexes(t *testing.T) {
	repo, storage, index := newFakeResumeRepo(), newMemStorage(), newFakeIndex()
	svc := NewResumeService(NewResumeParser(), storage, repo, matching.DefaultOntology(), &wordEmbedder{}, index, zap.NewNop())

	resume, err := svc.Ingest(context.Background(), UploadInput{Filename: "jane.txt", Data: []byte(janeResume)})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resume.CandidateName)
	assert.Equal(t, []string{"aws", "django", "docker", "postgresql", "python"}, resume.SkillList())
	assert.True(t, resume.Indexed)
	assert.Contains(t, storage.objects, resume.StorageKey)
	assert.Contains(t, index.points, resume.ID)

	stored, err := svc.Get(resume.ID)
	require.NoError(t, err)
	assert.True(t, stored.Indexed)
}

func TestIngest_IndexFailureStillStores(t *testing.T) {
	repo, index := newFakeResumeRepo(), newFakeIndex()
	index.failErr = errors.New("qdrant down")
	svc := NewResumeService(NewResumeParser(), newMemStorage(), repo, matching.DefaultOntology(), &wordEmbedder{}, index, zap.NewNop())

	resume, err := svc.Ingest(context.Background(), UploadInput{Filename: "jane.txt", CandidateName: "J. Doe", Data: []byte(janeResume)})
	require.NoError(t, err)

	assert.Equal(t, "J. Doe", resume.CandidateName)
	assert.False(t, resume.Indexed)
	_, err = repo.FindByID(resume.ID)
	assert.NoError(t, err)
}

func TestIngest_DatabaseFailureRemovesFile(t *testing.T) {
	repo, storage := newFakeResumeRepo(), newMemStorage()
	repo.failOn = "Jane"
	svc := NewResumeService(NewResumeParser(), storage, repo, matching.DefaultOntology(), nil, nil, zap.NewNop())

	_, err := svc.Ingest(context.Background(), UploadInput{Filename: "jane.txt", Data: []byte(janeResume)})
	require.Error(t, err)
	assert.Empty(t, storage.objects)
}

func TestIngest_RejectsUnsupportedFile(t *testing.T) {
	svc := NewResumeService(NewResumeParser(), newMemStorage(), newFakeResumeRepo(), matching.DefaultOntology(), nil, nil, zap.NewNop())

	_, err := svc.Ingest(context.Background(), UploadInput{Filename: "jane.rtf", Data: []byte(janeResume)})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSearch(t *testing.T) {
	repo, index := newFakeResumeRepo(), newFakeIndex()
	svc := NewResumeService(NewResumeParser(), newMemStorage(), repo, matching.DefaultOntology(), &wordEmbedder{}, index, zap.NewNop())

	jane, err := svc.Ingest(context.Background(), UploadInput{Filename: "jane.txt", Data: []byte(janeResume)})
	require.NoError(t, err)
	_, err = svc.Ingest(context.Background(), UploadInput{Filename: "bob.txt", Data: []byte("Bob\nEnterprise sales lead")})
	require.NoError(t, err)

	hits, err := svc.Search(context.Background(), "python engineer", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, jane.ID.String(), hits[0].ResumeID)

	_, err = svc.Search(context.Background(), "  ", 5)
	assert.ErrorIs(t, err, matching.ErrInvalidRequest)
}

func TestSearch_UnavailableWithoutIndex(t *testing.T) {
	svc := NewResumeService(NewResumeParser(), newMemStorage(), newFakeResumeRepo(), matching.DefaultOntology(), nil, nil, zap.NewNop())

	_, err := svc.Search(context.Background(), "python", 5)
	assert.ErrorIs(t, err, matching.ErrModelUnavailable)
}

func TestGuessName(t *testing.T) {
	assert.Equal(t, "Jane Doe", guessName("\n  Jane Doe  \nEngineer"))
	assert.Equal(t, "Unknown", guessName(""))
}
