package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/store"
)

// AuditService appends interaction and upload entries. Writes are
// best-effort: a failed audit write is logged and never escalates to the
// operation it accompanies.
type AuditService struct {
	interactions store.InteractionStore
	uploads      store.UploadStore
	logger       *zap.Logger
}

func NewAuditService(interactions store.InteractionStore, uploads store.UploadStore, logger *zap.Logger) *AuditService {
	return &AuditService{interactions: interactions, uploads: uploads, logger: logger}
}

// Record appends one interaction entry. userID is empty when the request
// never passed authentication.
func (s *AuditService) Record(ctx context.Context, endpoint, method, userID string) {
	in := &models.Interaction{
		UserID:    userID,
		Endpoint:  endpoint,
		Method:    method,
		Timestamp: time.Now().UTC(),
	}
	if err := s.interactions.Create(ctx, in); err != nil {
		s.logger.Warn("failed to record interaction",
			zap.String("endpoint", endpoint),
			zap.String("method", method),
			zap.Error(err))
	}
}

// RecordUpload notes a stored image and the confidence it scored.
func (s *AuditService) RecordUpload(ctx context.Context, userID, storedName string, confidence float64) {
	up := &models.Upload{
		UserID:     userID,
		Filename:   storedName,
		Confidence: confidence,
		UploadTime: time.Now().UTC(),
	}
	if err := s.uploads.Create(ctx, up); err != nil {
		s.logger.Warn("failed to record upload",
			zap.String("filename", storedName),
			zap.Error(err))
	}
}

func (s *AuditService) ListInteractions(ctx context.Context, userID string) ([]models.Interaction, error) {
	return s.interactions.ListByUser(ctx, userID)
}

func (s *AuditService) ListUploads(ctx context.Context, userID string) ([]models.Upload, error) {
	return s.uploads.ListByUser(ctx, userID)
}
