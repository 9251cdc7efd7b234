package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/store"
)

type enrichmentJob struct {
	docID  string
	label  string
	userID string
}

// EnrichmentWorker fills in calories on stored predictions asynchronously.
// Everything here is best-effort: a dropped job, a failed estimate or a
// failed update leaves the prediction as it was and is only logged.
type EnrichmentWorker struct {
	queue     chan enrichmentJob
	store     store.PredictionStore
	estimator CalorieEstimator
	hub       *RealtimeHub // optional
	timeout   time.Duration
	logger    *zap.Logger

	wg   sync.WaitGroup
	once sync.Once
}

func NewEnrichmentWorker(st store.PredictionStore, estimator CalorieEstimator, hub *RealtimeHub, logger *zap.Logger) *EnrichmentWorker {
	return &EnrichmentWorker{
		queue:     make(chan enrichmentJob, 64),
		store:     st,
		estimator: estimator,
		hub:       hub,
		timeout:   30 * time.Second,
		logger:    logger.Named("enrichment"),
	}
}

// Start launches the worker loop. Call Stop to drain and shut down.
func (w *EnrichmentWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for job := range w.queue {
			w.process(job)
		}
	}()
}

// Stop closes the queue and waits for in-flight jobs.
func (w *EnrichmentWorker) Stop() {
	w.once.Do(func() { close(w.queue) })
	w.wg.Wait()
}

// Enqueue never blocks; when the queue is full the job is dropped.
func (w *EnrichmentWorker) Enqueue(docID, label, userID string) {
	select {
	case w.queue <- enrichmentJob{docID: docID, label: label, userID: userID}:
	default:
		w.logger.Warn("enrichment queue full, dropping job", zap.String("docId", docID))
	}
}

func (w *EnrichmentWorker) process(job enrichmentJob) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	calories, err := w.estimator.Estimate(ctx, job.label)
	if err != nil {
		w.logger.Warn("calorie estimate failed",
			zap.String("docId", job.docID),
			zap.String("label", job.label),
			zap.Error(err))
		return
	}

	updated, err := w.store.Update(ctx, job.docID, models.PredictionUpdate{Calories: &calories})
	if err != nil {
		// The record may have been deleted while we were estimating.
		w.logger.Warn("calorie update failed",
			zap.String("docId", job.docID),
			zap.Error(err))
		return
	}

	w.logger.Info("prediction enriched",
		zap.String("docId", job.docID),
		zap.Int("calories", calories))

	if w.hub != nil {
		w.hub.Broadcast(job.userID, map[string]any{
			"kind":       "prediction.updated",
			"prediction": updated,
		})
	}
}
