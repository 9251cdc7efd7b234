package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/apperrors"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
)

// GormStore backs all three collections with Postgres via gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the backing tables.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.Prediction{}, &models.Interaction{}, &models.Upload{})
}

func (s *GormStore) Create(ctx context.Context, p *models.Prediction) (string, error) {
	p.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return "", fmt.Errorf("%w: create prediction: %v", apperrors.ErrStore, err)
	}
	return p.ID, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Prediction, error) {
	var p models.Prediction
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get prediction: %v", apperrors.ErrStore, err)
	}
	return &p, nil
}

func (s *GormStore) ListByUser(ctx context.Context, userID string) ([]models.Prediction, error) {
	var out []models.Prediction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list predictions: %v", apperrors.ErrStore, err)
	}
	return out, nil
}

func (s *GormStore) Update(ctx context.Context, id string, fields models.PredictionUpdate) (*models.Prediction, error) {
	updates := map[string]any{}
	if fields.Prediction != nil {
		updates["prediction"] = *fields.Prediction
	}
	if fields.Confidence != nil {
		updates["confidence"] = *fields.Confidence
	}
	if fields.Calories != nil {
		updates["calories"] = *fields.Calories
	}

	if len(updates) > 0 {
		tx := s.db.WithContext(ctx).
			Model(&models.Prediction{}).
			Where("id = ?", id).
			Updates(updates)
		if tx.Error != nil {
			return nil, fmt.Errorf("%w: update prediction: %v", apperrors.ErrStore, tx.Error)
		}
		if tx.RowsAffected == 0 {
			return nil, apperrors.ErrNotFound
		}
	}
	return s.Get(ctx, id)
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&models.Prediction{}, "id = ?", id)
	if tx.Error != nil {
		return fmt.Errorf("%w: delete prediction: %v", apperrors.ErrStore, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Interactions returns the append-only interaction collection.
func (s *GormStore) Interactions() InteractionStore { return &gormInteractions{db: s.db} }

// Uploads returns the append-only upload collection.
func (s *GormStore) Uploads() UploadStore { return &gormUploads{db: s.db} }

type gormInteractions struct {
	db *gorm.DB
}

func (s *gormInteractions) Create(ctx context.Context, in *models.Interaction) error {
	if err := s.db.WithContext(ctx).Create(in).Error; err != nil {
		return fmt.Errorf("%w: create interaction: %v", apperrors.ErrStore, err)
	}
	return nil
}

func (s *gormInteractions) ListByUser(ctx context.Context, userID string) ([]models.Interaction, error) {
	var out []models.Interaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list interactions: %v", apperrors.ErrStore, err)
	}
	return out, nil
}

type gormUploads struct {
	db *gorm.DB
}

func (s *gormUploads) Create(ctx context.Context, up *models.Upload) error {
	if err := s.db.WithContext(ctx).Create(up).Error; err != nil {
		return fmt.Errorf("%w: create upload: %v", apperrors.ErrStore, err)
	}
	return nil
}

func (s *gormUploads) ListByUser(ctx context.Context, userID string) ([]models.Upload, error) {
	var out []models.Upload
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list uploads: %v", apperrors.ErrStore, err)
	}
	return out, nil
}
