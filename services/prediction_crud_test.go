package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/apperrors"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/store"
)

func seedPrediction(t *testing.T, mem *store.MemoryStore, userID, label string) string {
	t.Helper()
	id, err := mem.Create(context.Background(), &models.Prediction{
		UserID:     userID,
		Prediction: label,
		Confidence: 0.8,
	})
	require.NoError(t, err)
	return id
}

func TestList_OnlyOwnDocuments(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := newTestService(mem, stubClassifier{}, nil)

	seedPrediction(t, mem, "a", "pizza")
	seedPrediction(t, mem, "b", "sushi")
	seedPrediction(t, mem, "a", "ramen")

	got, err := svc.List(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "a", p.UserID)
	}
}

func TestList_NoDocuments_EmptyNotError(t *testing.T) {
	svc := newTestService(store.NewMemoryStore(), stubClassifier{}, nil)

	got, err := svc.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdate_OwnDocument(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := newTestService(mem, stubClassifier{}, nil)
	id := seedPrediction(t, mem, "a", "pizza")

	label := "calzone"
	cal := 450
	got, err := svc.Update(context.Background(), "a", id, models.PredictionUpdate{Prediction: &label, Calories: &cal})
	require.NoError(t, err)
	assert.Equal(t, "calzone", got.Prediction)
	require.NotNil(t, got.Calories)
	assert.Equal(t, 450, *got.Calories)
	assert.Equal(t, "a", got.UserID)
}

func TestUpdate_OtherOwner_ForbiddenAndUnchanged(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := newTestService(mem, stubClassifier{}, nil)
	id := seedPrediction(t, mem, "a", "pizza")

	label := "stolen"
	_, err := svc.Update(context.Background(), "b", id, models.PredictionUpdate{Prediction: &label})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	stored, err := mem.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "pizza", stored.Prediction)
	assert.Equal(t, "a", stored.UserID)
}

func TestUpdate_Missing_NotFoundRegardlessOfOwner(t *testing.T) {
	svc := newTestService(store.NewMemoryStore(), stubClassifier{}, nil)

	label := "x"
	_, err := svc.Update(context.Background(), "anyone", "missing-id", models.PredictionUpdate{Prediction: &label})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdate_EmptyBody_NoOp(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := newTestService(mem, stubClassifier{}, nil)
	id := seedPrediction(t, mem, "a", "pizza")

	got, err := svc.Update(context.Background(), "a", id, models.PredictionUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "pizza", got.Prediction)
	assert.Equal(t, 0.8, got.Confidence)
}

func TestUpdate_ConfidenceOutOfRange(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := newTestService(mem, stubClassifier{}, nil)
	id := seedPrediction(t, mem, "a", "pizza")

	bad := 1.5
	_, err := svc.Update(context.Background(), "a", id, models.PredictionUpdate{Confidence: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	stored, _ := mem.Get(context.Background(), id)
	assert.Equal(t, 0.8, stored.Confidence)
}

func TestDelete_OwnDocument_ThenNotFound(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := newTestService(mem, stubClassifier{}, nil)
	id := seedPrediction(t, mem, "a", "pizza")

	require.NoError(t, svc.Delete(context.Background(), "a", id))
	assert.ErrorIs(t, svc.Delete(context.Background(), "a", id), apperrors.ErrNotFound)
}

func TestDelete_OtherOwner_Forbidden(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := newTestService(mem, stubClassifier{}, nil)
	id := seedPrediction(t, mem, "a", "pizza")

	assert.ErrorIs(t, svc.Delete(context.Background(), "b", id), apperrors.ErrForbidden)

	// still there
	_, err := mem.Get(context.Background(), id)
	assert.NoError(t, err)
}

func TestDelete_Missing_NotFound(t *testing.T) {
	svc := newTestService(store.NewMemoryStore(), stubClassifier{}, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), "a", "missing"), apperrors.ErrNotFound)
}
