package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-matcher/internal/logger"
)

const (
	// text-embedding-004 accepts about 2048 tokens per input.
	embedChunkSize    = 6000
	embedChunkOverlap = 200
)

// GeminiService is the embedding and text generation provider. It satisfies
// matching.Embedder.
type GeminiService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

type GeminiOptions struct {
	APIKey     string
	TextModel  string
	EmbedModel string
	RetryDelay time.Duration
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	retryDelay time.Duration
	chunker    TextChunker
	log        *zap.Logger
}

func NewGeminiService(ctx context.Context, opts GeminiOptions, log *zap.Logger) (GeminiService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if opts.TextModel == "" {
		opts.TextModel = "gemini-2.5-flash"
	}
	if opts.EmbedModel == "" {
		opts.EmbedModel = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  opts.TextModel,
		embedModel: opts.EmbedModel,
		retryDelay: opts.RetryDelay,
		chunker:    NewTextChunker(),
		log:        logger.With(log, logger.AIFields("gemini", opts.TextModel)...),
	}, nil
}

// Embed returns one vector for text of any length. Long text is chunked and
// the chunk vectors are averaged.
func (g *geminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	chunks := g.chunker.ChunkText(text, embedChunkSize, embedChunkOverlap)
	if len(chunks) <= 1 {
		return g.GenerateEmbedding(ctx, text)
	}

	contents := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contents = append(contents, genai.Text(chunk)...)
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	vectors := make([][]float32, 0, len(result.Embeddings))
	for _, e := range result.Embeddings {
		vectors = append(vectors, e.Values)
	}

	g.log.Debug("embedded chunked text",
		zap.Int("chunks", len(chunks)),
		zap.String(logger.FieldModel, g.embedModel),
	)

	return meanVector(vectors)
}

func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		g.log.Error("❌ Gemini API error", zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	g.log.Debug("📊 Gemini response received",
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(text)),
	)

	return text, nil
}

// GenerateTextWithRetry retries GenerateText with exponential backoff
// starting at the configured retry delay.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	delay := g.retryDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		g.log.Warn("⚠️ Gemini attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

func meanVector(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors to average")
	}

	dim := len(vectors[0])
	out := make([]float32, dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
		for j, x := range v {
			out[j] += x
		}
	}
	n := float32(len(vectors))
	for j := range out {
		out[j] /= n
	}
	return out, nil
}
