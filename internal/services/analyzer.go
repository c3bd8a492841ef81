package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

const degradedFeedback = "Automated analysis is unavailable right now. Please try again later."

// TextGenerator is the slice of GeminiService the analyzer needs.
type TextGenerator interface {
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error
}

type analyzerService struct {
	analysisRepo  repositories.AnalysisRepository
	resumeRepo    repositories.ResumeRepository
	generator     TextGenerator
	promptBuilder *PromptBuilder
	maxRetries    int
	log           *zap.Logger
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	resumeRepo repositories.ResumeRepository,
	generator TextGenerator,
	maxRetries int,
	log *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		analysisRepo:  analysisRepo,
		resumeRepo:    resumeRepo,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		log:           log,
	}
}

// AnalyzeResume runs one queued analysis. Model failures never fail the
// analysis; they complete it with a degraded default result. Only missing
// records and database errors mark it failed.
func (a *analyzerService) AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error {
	claimed, err := a.analysisRepo.Claim(analysisID)
	if err != nil {
		return err
	}
	if !claimed {
		a.log.Debug("analysis already claimed", zap.String("analysis_id", analysisID.String()))
		return nil
	}

	log := a.log.With(zap.String("analysis_id", analysisID.String()))
	log.Info("🔄 Starting resume analysis")

	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		a.fail(analysisID, err)
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	resume, err := a.resumeRepo.FindByID(analysis.ResumeID)
	if err != nil {
		a.fail(analysisID, err)
		return fmt.Errorf("failed to get resume: %w", err)
	}

	result := a.generate(ctx, log, resume, analysis)

	if err := a.analysisRepo.UpdateResult(analysisID, result); err != nil {
		a.fail(analysisID, err)
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Info("✅ Resume analysis completed", zap.Bool("degraded", result.Degraded))
	return nil
}

func (a *analyzerService) generate(ctx context.Context, log *zap.Logger, resume *models.Resume, analysis *models.Analysis) *models.AnalysisResult {
	if a.generator == nil {
		log.Warn("⚠️ No text generator configured, using default analysis")
		return defaultAnalysis()
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(resume.Text, analysis.JobTitle, analysis.JobDescription, resume.SkillList())
	log.Debug("📝 Analysis prompt built", zap.Int("prompt_chars", len(prompt)))

	response, err := a.generator.GenerateTextWithRetry(ctx, prompt, 0.3, a.maxRetries)
	if err != nil {
		log.Warn("⚠️ Analysis generation failed, using default analysis", zap.Error(err))
		return defaultAnalysis()
	}

	result, err := parseAnalysis(response)
	if err != nil {
		log.Warn("⚠️ Unparsable analysis response, using default analysis", zap.Error(err))
		return defaultAnalysis()
	}
	return result
}

func (a *analyzerService) fail(id uuid.UUID, cause error) {
	if err := a.analysisRepo.UpdateError(id, cause.Error()); err != nil {
		a.log.Error("failed to record analysis error", zap.String("analysis_id", id.String()), zap.Error(err))
	}
}

func defaultAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		Strengths:   "",
		Gaps:        "",
		Suggestions: "",
		Summary:     degradedFeedback,
		Degraded:    true,
	}
}

func parseAnalysis(response string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if strings.TrimSpace(result.Summary) == "" && strings.TrimSpace(result.Strengths) == "" {
		return nil, fmt.Errorf("analysis response has no content")
	}
	result.Degraded = false
	return &result, nil
}

// extractJSON strips markdown fences and surrounding prose from a model reply.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
