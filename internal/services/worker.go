package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type worker struct {
	analysisRepo repositories.AnalysisRepository
	analyzer     AnalyzerService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
	log          *zap.Logger
}

func NewWorker(
	analysisRepo repositories.AnalysisRepository,
	analyzer AnalyzerService,
	concurrency int,
	log *zap.Logger,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &worker{
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: 10 * time.Second,
		stopChan:     make(chan struct{}),
		log:          log,
	}
}

func (w *worker) Start(ctx context.Context) {
	w.log.Info("🚀 Starting analysis worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Picks up analyses queued before a restart or dropped from a full queue.
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("🛑 Stopping analysis worker...")
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("✅ Analysis worker stopped")
	})
}

// EnqueueJob never blocks: when the queue is full the poller picks the job
// up later from the database.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	select {
	case <-w.stopChan:
		w.log.Warn("⚠️ Worker stopped, cannot enqueue job", zap.String("analysis_id", analysisID.String()))
		return
	default:
	}

	select {
	case w.jobQueue <- analysisID:
		w.log.Debug("📥 Job enqueued", zap.String("analysis_id", analysisID.String()))
	default:
		w.log.Warn("⚠️ Job queue full, leaving job for the poller", zap.String("analysis_id", analysisID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case analysisID := <-w.jobQueue:
			log := w.log.With(zap.Int("worker", workerID), zap.String("analysis_id", analysisID.String()))
			if err := w.analyzer.AnalyzeResume(ctx, analysisID); err != nil {
				log.Error("❌ Analysis job failed", zap.Error(err))
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pendingJobs, err := w.analysisRepo.FindPendingJobs(10)
			if err != nil {
				w.log.Warn("⚠️ Failed to fetch pending jobs", zap.Error(err))
				continue
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
