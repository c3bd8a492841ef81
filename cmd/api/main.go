package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/hiring"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.EnvFileLoaded {
		log.Info("No .env file found. Using environment and defaults.")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Invalid configuration", zap.Error(err))
	}
	log.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ontology := matching.DefaultOntology()

	// Embedding model. Without it ranking answers 503 but the server still runs.
	var (
		gemini   services.GeminiService
		embedder matching.Embedder
	)
	if cfg.Gemini.APIKey == "" {
		log.Warn("⚠️ GEMINI_API_KEY not set, semantic ranking disabled")
	} else if g, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:     cfg.Gemini.APIKey,
		TextModel:  cfg.Gemini.TextModel,
		EmbedModel: cfg.Gemini.EmbedModel,
		RetryDelay: cfg.Worker.RetryInitialDelay,
	}, log.Named("gemini")); err != nil {
		log.Warn("⚠️ Failed to initialize Gemini, semantic ranking disabled", zap.Error(err))
	} else {
		gemini, embedder = g, g
		log.Info("✅ Gemini initialized", zap.String("embed_model", cfg.Gemini.EmbedModel))
	}

	ranker := matching.NewRanker(ontology, embedder, cfg.Scoring.Concurrency, log.Named("ranker"))

	// Hiring classifier, loaded once.
	var classifier hiring.Classifier
	if path, err := hiring.Locate(cfg.Hiring.ModelDir, cfg.Hiring.ModelPath); err != nil {
		log.Warn("⚠️ Hiring model not found, predictions disabled", zap.Error(err))
	} else if model, err := hiring.LoadModel(path); err != nil {
		log.Warn("⚠️ Failed to load hiring model, predictions disabled", zap.String("path", path), zap.Error(err))
	} else {
		classifier = model
		log.Info("✅ Hiring model loaded", zap.String("path", path), zap.String("version", model.Version()))
	}
	predictor := hiring.NewPredictor(classifier, ontology, log.Named("hiring"))

	// Persistence. The stateless scoring endpoints keep working without it.
	var (
		resumeRepo   repositories.ResumeRepository
		analysisRepo repositories.AnalysisRepository
		matchRunRepo repositories.MatchRunRepository
	)
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Warn("⚠️ Database unavailable, persistence disabled", zap.Error(err))
	} else {
		resumeRepo = repositories.NewResumeRepository(db)
		analysisRepo = repositories.NewAnalysisRepository(db)
		matchRunRepo = repositories.NewMatchRunRepository(db)
		log.Info("✅ Repositories initialized successfully")
	}

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		log.Warn("⚠️ File storage unavailable, uploads disabled", zap.Error(err))
	}

	var index services.ResumeIndex
	if embedder != nil {
		q, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log.Named("qdrant"))
		if err == nil {
			initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = q.InitCollection(initCtx)
			cancel()
		}
		if err != nil {
			log.Warn("⚠️ Qdrant unavailable, resume search disabled", zap.Error(err))
		} else {
			index = q
			log.Info("✅ Qdrant initialized successfully")
		}
	}

	var resumeService services.ResumeService
	if resumeRepo != nil && storage != nil {
		resumeService = services.NewResumeService(
			services.NewResumeParser(),
			storage,
			resumeRepo,
			ontology,
			embedder,
			index,
			log.Named("resumes"),
		)
	}

	var worker services.Worker
	if analysisRepo != nil {
		var generator services.TextGenerator
		if gemini != nil {
			generator = gemini
		}
		analyzer := services.NewAnalyzerService(analysisRepo, resumeRepo, generator, cfg.Worker.RetryMaxAttempts, log.Named("analyzer"))
		worker = services.NewWorker(analysisRepo, analyzer, cfg.Worker.Concurrency, log.Named("worker"))
		worker.Start(ctx)
	}

	matchService := services.NewMatchService(ranker, resumeRepo, matchRunRepo, log.Named("match"))

	app := fiber.New(fiber.Config{
		AppName:      "Resume Matching API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.Register(app, handlers.Handlers{
		Health:   handlers.NewHealthHandler(ranker, predictor, db != nil),
		Match:    handlers.NewMatchHandler(matchService),
		Predict:  handlers.NewPredictHandler(predictor),
		Resume:   handlers.NewResumeHandler(resumeService, cfg.Storage.MaxFileSize),
		Analysis: handlers.NewAnalysisHandler(analysisRepo, resumeRepo, worker),
	})

	go func() {
		<-ctx.Done()
		log.Info("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
			log.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
	}

	if worker != nil {
		worker.Stop()
	}
	matchService.Wait()
	log.Info("✅ Server stopped")
}

func newStorage(ctx context.Context, cfg *config.Config) (services.FileStorage, error) {
	if cfg.Storage.Driver == "s3" {
		return services.NewS3Storage(ctx, services.S3Options{
			Bucket:    cfg.Storage.S3.Bucket,
			Region:    cfg.Storage.S3.Region,
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
		})
	}
	return services.NewLocalStorage(cfg.Storage.UploadPath)
}
