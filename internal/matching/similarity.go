package matching

import (
	"context"
	"strings"

	"alfredoptarigan/resume-matcher/internal/textvec"
)

// Embedder turns text into a fixed-length dense vector. Implementations must
// be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// TFIDFSimilarity is the lexical similarity of two documents, in [0,100].
func TFIDFSimilarity(resumeText, jobDescription string) float64 {
	return textvec.Similarity(resumeText, jobDescription)
}

// SemanticSimilarity embeds both documents and returns their cosine
// similarity scaled by 100. Blank text scores 0 without calling the model.
func SemanticSimilarity(ctx context.Context, embedder Embedder, resumeText, jobDescription string) (float64, error) {
	if embedder == nil {
		return 0, &ModelUnavailableError{Model: "embedding model"}
	}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return 0, nil
	}

	resumeVec, err := embedder.Embed(ctx, resumeText)
	if err != nil {
		return 0, &ComputationError{Step: "resume embedding", Err: err}
	}
	jobVec, err := embedder.Embed(ctx, jobDescription)
	if err != nil {
		return 0, &ComputationError{Step: "job embedding", Err: err}
	}

	return textvec.CosineDense(resumeVec, jobVec) * 100, nil
}
