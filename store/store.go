// Package store abstracts the persistence layer behind typed per-collection
// stores. Business services only see these interfaces; the gorm and in-memory
// implementations are interchangeable.
package store

import (
	"context"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
)

// PredictionStore persists classification results. Create assigns the id.
// Update merges only the supplied mutable fields; id and userId cannot be
// touched through it. Missing documents surface as apperrors.ErrNotFound.
type PredictionStore interface {
	Create(ctx context.Context, p *models.Prediction) (string, error)
	Get(ctx context.Context, id string) (*models.Prediction, error)
	ListByUser(ctx context.Context, userID string) ([]models.Prediction, error)
	Update(ctx context.Context, id string, fields models.PredictionUpdate) (*models.Prediction, error)
	Delete(ctx context.Context, id string) error
}

// InteractionStore is append-only: no update or delete exists on purpose.
type InteractionStore interface {
	Create(ctx context.Context, in *models.Interaction) error
	ListByUser(ctx context.Context, userID string) ([]models.Interaction, error)
}

// UploadStore records stored images, append-only like interactions.
type UploadStore interface {
	Create(ctx context.Context, up *models.Upload) error
	ListByUser(ctx context.Context, userID string) ([]models.Upload, error)
}
