package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/apperrors"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/classifier"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/store"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/utils"
)

// Archiver stores a validated upload somewhere durable (S3 in production).
type Archiver interface {
	Archive(ctx context.Context, storedName string, data []byte) (string, error)
}

// Enqueuer hands a freshly created prediction to the calorie enrichment
// worker. Must never block the caller.
type Enqueuer interface {
	Enqueue(docID, label, userID string)
}

// PredictionService owns the predict pipeline and the CRUD surface over
// stored predictions. Archiver and Enqueuer are optional; everything they do
// is best-effort decoration.
type PredictionService struct {
	store     store.PredictionStore
	audit     *AuditService
	model     classifier.Classifier
	archiver  Archiver
	enricher  Enqueuer
	maxUpload int64
	logger    *zap.Logger
}

func NewPredictionService(
	st store.PredictionStore,
	audit *AuditService,
	model classifier.Classifier,
	archiver Archiver,
	enricher Enqueuer,
	maxUpload int64,
	logger *zap.Logger,
) *PredictionService {
	if maxUpload <= 0 {
		maxUpload = utils.DefaultMaxUploadBytes
	}
	return &PredictionService{
		store:     st,
		audit:     audit,
		model:     model,
		archiver:  archiver,
		enricher:  enricher,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Predict runs the full pipeline: validate the upload, classify it, persist
// the result. Nothing is written unless inference succeeded; creation is the
// last step.
func (s *PredictionService) Predict(ctx context.Context, userID, filename string, imageBytes []byte) (*models.Prediction, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := utils.ValidateImage(filename, "", imageBytes, s.maxUpload); err != nil {
		return nil, err
	}

	candidates, err := s.model.Classify(ctx, imageBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInference, err)
	}
	top, ok := classifier.Top(candidates)
	if !ok {
		return nil, fmt.Errorf("%w: model returned no candidates", apperrors.ErrInference)
	}
	if err := validConfidence(top.Confidence); err != nil {
		return nil, err
	}

	doc := &models.Prediction{
		UserID:     userID,
		Filename:   filename,
		Prediction: top.Label,
		Confidence: top.Confidence,
	}
	if _, err := s.store.Create(ctx, doc); err != nil {
		return nil, err
	}

	storedName := utils.RenameImage(filename)
	s.audit.RecordUpload(ctx, userID, storedName, top.Confidence)
	if s.archiver != nil {
		go func(data []byte) {
			if _, err := s.archiver.Archive(context.Background(), storedName, data); err != nil {
				s.logger.Warn("image archival failed",
					zap.String("filename", storedName),
					zap.Error(err))
			}
		}(imageBytes)
	}
	if s.enricher != nil {
		s.enricher.Enqueue(doc.ID, doc.Prediction, doc.UserID)
	}

	s.logger.Info("prediction created",
		zap.String("id", doc.ID),
		zap.String("label", doc.Prediction),
		zap.Float64("confidence", doc.Confidence))
	return doc, nil
}

// List returns the caller's predictions, never anyone else's.
func (s *PredictionService) List(ctx context.Context, userID string) ([]models.Prediction, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return s.store.ListByUser(ctx, userID)
}

// Update applies the whitelisted mutable fields to an owned prediction. The
// ownership check happens strictly before any mutating store call; a
// document owned by someone else yields Forbidden, a missing one NotFound.
func (s *PredictionService) Update(ctx context.Context, userID, docID string, fields models.PredictionUpdate) (*models.Prediction, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if fields.Confidence != nil {
		if err := validConfidence(*fields.Confidence); err != nil {
			return nil, fmt.Errorf("%w: confidence out of range", apperrors.ErrValidation)
		}
	}
	if fields.Empty() {
		return doc, nil
	}
	return s.store.Update(ctx, docID, fields)
}

// Delete removes an owned prediction. Same ownership ordering as Update;
// deleting an already-deleted id yields NotFound, never a second success.
func (s *PredictionService) Delete(ctx context.Context, userID, docID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}
	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return err
	}
	if doc.UserID != userID {
		return apperrors.ErrForbidden
	}
	return s.store.Delete(ctx, docID)
}

// validConfidence rejects non-finite and out-of-range scores outright rather
// than clamping them into range.
func validConfidence(c float64) error {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 || c > 1 {
		return fmt.Errorf("%w: confidence %v outside [0,1]", apperrors.ErrInference, c)
	}
	return nil
}
