package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/apperrors"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
)

// MemoryStore keeps all collections in process memory. Used by tests and as
// a zero-dependency dev mode. Insertion order is preserved for listings.
type MemoryStore struct {
	mu           sync.RWMutex
	predictions  []models.Prediction
	interactions []models.Interaction
	uploads      []models.Upload
	nextID       uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Create(_ context.Context, p *models.Prediction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.predictions = append(s.predictions, *p)
	return p.ID, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.predictions {
		if s.predictions[i].ID == id {
			cp := s.predictions[i]
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Prediction{}
	for _, p := range s.predictions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fields models.PredictionUpdate) (*models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.predictions {
		if s.predictions[i].ID != id {
			continue
		}
		if fields.Prediction != nil {
			s.predictions[i].Prediction = *fields.Prediction
		}
		if fields.Confidence != nil {
			s.predictions[i].Confidence = *fields.Confidence
		}
		if fields.Calories != nil {
			cal := *fields.Calories
			s.predictions[i].Calories = &cal
		}
		cp := s.predictions[i]
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.predictions {
		if s.predictions[i].ID == id {
			s.predictions = append(s.predictions[:i], s.predictions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *MemoryStore) Interactions() InteractionStore { return (*memoryInteractions)(s) }

func (s *MemoryStore) Uploads() UploadStore { return (*memoryUploads)(s) }

type memoryInteractions MemoryStore

func (s *memoryInteractions) Create(_ context.Context, in *models.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.nextID
	s.nextID++
	s.interactions = append(s.interactions, *in)
	return nil
}

func (s *memoryInteractions) ListByUser(_ context.Context, userID string) ([]models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Interaction{}
	for _, in := range s.interactions {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

// All returns every interaction regardless of user. Test helper.
func (s *MemoryStore) AllInteractions() []models.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Interaction(nil), s.interactions...)
}

type memoryUploads MemoryStore

func (s *memoryUploads) Create(_ context.Context, up *models.Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	up.ID = s.nextID
	s.nextID++
	s.uploads = append(s.uploads, *up)
	return nil
}

func (s *memoryUploads) ListByUser(_ context.Context, userID string) ([]models.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Upload{}
	for _, up := range s.uploads {
		if up.UserID == userID {
			out = append(out, up)
		}
	}
	return out, nil
}
