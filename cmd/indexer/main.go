// Command indexer bulk-loads resume files from a directory: it extracts their
// text and skills, stores them, and indexes their embeddings for search.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

type options struct {
	dir          string
	recursive    bool
	nameFromFile bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "indexer",
		Short:        "indexer ingests a directory of resumes into storage, the database and the vector index",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "./resumes", "directory to scan for .pdf, .docx and .txt resumes")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().BoolVar(&opts.nameFromFile, "name-from-file", false, "use the file name as the candidate name")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("🚀 Starting resume ingestion", zap.String("dir", opts.dir))

	files, err := collectResumes(opts.dir, opts.recursive)
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}
	if len(files) == 0 {
		log.Warn("⚠️ No resume files found")
		return nil
	}

	resumeService, err := newResumeService(ctx, cfg, log)
	if err != nil {
		return err
	}

	start := time.Now()
	var ok, indexed, failed int

	for i, path := range files {
		if ctx.Err() != nil {
			log.Warn("⚠️ Interrupted", zap.Int("remaining", len(files)-i))
			break
		}

		fileLog := log.With(zap.String("file", path), zap.Int("n", i+1), zap.Int("of", len(files)))

		data, err := os.ReadFile(path)
		if err != nil {
			fileLog.Error("❌ Failed to read file", zap.Error(err))
			failed++
			continue
		}
		if int64(len(data)) > cfg.Storage.MaxFileSize {
			fileLog.Warn("⚠️ File too large, skipping", zap.Int("bytes", len(data)))
			failed++
			continue
		}

		in := services.UploadInput{Filename: filepath.Base(path), Data: data}
		if opts.nameFromFile {
			in.CandidateName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		resume, err := resumeService.Ingest(ctx, in)
		if err != nil {
			fileLog.Error("❌ Failed to ingest", zap.Error(err))
			failed++
			continue
		}

		ok++
		if resume.Indexed {
			indexed++
		}
		fileLog.Info("✅ Ingested",
			zap.String("resume_id", resume.ID.String()),
			zap.Strings("skills", resume.SkillList()),
		)
	}

	log.Info("📊 Ingestion summary",
		zap.Int("ingested", ok),
		zap.Int("indexed", indexed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d resumes failed", failed, len(files))
	}
	return nil
}

// newResumeService builds the full ingestion pipeline. Unlike the API
// server the indexer needs every collaborator, so any failure is fatal.
func newResumeService(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.ResumeService, error) {
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var storage services.FileStorage
	if cfg.Storage.Driver == "s3" {
		storage, err = services.NewS3Storage(ctx, services.S3Options{
			Bucket:    cfg.Storage.S3.Bucket,
			Region:    cfg.Storage.S3.Region,
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
		})
	} else {
		storage, err = services.NewLocalStorage(cfg.Storage.UploadPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	gemini, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:     cfg.Gemini.APIKey,
		TextModel:  cfg.Gemini.TextModel,
		EmbedModel: cfg.Gemini.EmbedModel,
	}, log.Named("gemini"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log.Named("qdrant"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Qdrant: %w", err)
	}
	if err := index.InitCollection(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize collection: %w", err)
	}

	return services.NewResumeService(
		services.NewResumeParser(),
		storage,
		repositories.NewResumeRepository(db),
		matching.DefaultOntology(),
		gemini,
		index,
		log.Named("resumes"),
	), nil
}

// collectResumes lists supported resume files under dir in lexical order.
func collectResumes(dir string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if services.ContentTypeFor(path) != "" {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
