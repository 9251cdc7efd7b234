package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/classifier"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/models"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/services"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/store"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/utils"
)

var testSecret = []byte("test-secret")

type stubClassifier struct {
	candidates []classifier.Candidate
}

func (s stubClassifier) Classify(context.Context, []byte) ([]classifier.Candidate, error) {
	return s.candidates, nil
}

type env struct {
	router *gin.Engine
	mem    *store.MemoryStore
}

func newEnv(t *testing.T, model classifier.Classifier, ratePerMinute int) env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	logger := zap.NewNop()
	audit := services.NewAuditService(mem.Interactions(), mem.Uploads(), logger)
	predictions := services.NewPredictionService(mem, audit, model, nil, nil, 0, logger)

	r := SetupRouter(Deps{
		Predictions:   predictions,
		Audit:         audit,
		Hub:           services.NewRealtimeHub(),
		JWTSecret:     testSecret,
		RatePerMinute: ratePerMinute,
	})
	return env{router: r, mem: mem}
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, testSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

func multipartImage(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func do(e env, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestPredict_EndToEnd(t *testing.T) {
	e := newEnv(t, stubClassifier{candidates: []classifier.Candidate{
		{Label: "pizza", Confidence: 0.99999821},
	}}, 0)

	start := time.Now().UTC()
	body, contentType := multipartImage(t, "lunch.png")
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer(t, "user-a"))

	rec := do(e, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID         string `json:"id"`
		Prediction struct {
			Label      string  `json:"label"`
			Confidence float64 `json:"confidence"`
		} `json:"prediction"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "pizza", resp.Prediction.Label)
	assert.InDelta(t, 0.99999821, resp.Prediction.Confidence, 1e-9)
	assert.Equal(t, "lunch.png", resp.Filename)

	stored, err := e.mem.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-a", stored.UserID)

	// exactly one interaction, attributed, timestamped after the call began
	entries := e.mem.AllInteractions()
	require.Len(t, entries, 1)
	assert.Equal(t, "/predict", entries[0].Endpoint)
	assert.Equal(t, "POST", entries[0].Method)
	assert.Equal(t, "user-a", entries[0].UserID)
	assert.False(t, entries[0].Timestamp.Before(start))
}

func TestPredict_Unauthenticated_StillRecordsInteraction(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 0)

	body, contentType := multipartImage(t, "lunch.png")
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	rec := do(e, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	entries := e.mem.AllInteractions()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].UserID)

	// and nothing was classified or stored
	preds, _ := e.mem.ListByUser(context.Background(), "user-a")
	assert.Empty(t, preds)
}

func TestListPredictions_PerUserIsolation(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 0)
	seed := func(user, label string) {
		_, err := e.mem.Create(context.Background(), &models.Prediction{UserID: user, Prediction: label})
		require.NoError(t, err)
	}
	seed("a", "pizza")
	seed("b", "sushi")

	req := httptest.NewRequest(http.MethodGet, "/predictions", nil)
	req.Header.Set("Authorization", bearer(t, "a"))
	rec := do(e, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Predictions []models.Prediction `json:"predictions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Predictions, 1)
	assert.Equal(t, "pizza", resp.Predictions[0].Prediction)
}

func TestUpdatePrediction_CannotChangeOwner(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 0)
	id, err := e.mem.Create(context.Background(), &models.Prediction{UserID: "a", Prediction: "pizza"})
	require.NoError(t, err)

	// userId in the body is not a mutable field and is ignored
	payload := bytes.NewBufferString(`{"prediction":"calzone","userId":"b","id":"hijack"}`)
	req := httptest.NewRequest(http.MethodPut, "/predictions/"+id, payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "a"))
	rec := do(e, req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := e.mem.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "calzone", stored.Prediction)
	assert.Equal(t, "a", stored.UserID)
	assert.Equal(t, id, stored.ID)
}

func TestUpdatePrediction_ForbiddenVsNotFound(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 0)
	id, err := e.mem.Create(context.Background(), &models.Prediction{UserID: "a", Prediction: "pizza"})
	require.NoError(t, err)

	payload := `{"prediction":"stolen"}`

	req := httptest.NewRequest(http.MethodPut, "/predictions/"+id, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "b"))
	assert.Equal(t, http.StatusForbidden, do(e, req).Code)

	req = httptest.NewRequest(http.MethodPut, "/predictions/does-not-exist", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "b"))
	assert.Equal(t, http.StatusNotFound, do(e, req).Code)
}

func TestDeletePrediction_Idempotence(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 0)
	id, err := e.mem.Create(context.Background(), &models.Prediction{UserID: "a", Prediction: "pizza"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/predictions/"+id, nil)
	req.Header.Set("Authorization", bearer(t, "a"))
	assert.Equal(t, http.StatusOK, do(e, req).Code)

	req = httptest.NewRequest(http.MethodDelete, "/predictions/"+id, nil)
	req.Header.Set("Authorization", bearer(t, "a"))
	assert.Equal(t, http.StatusNotFound, do(e, req).Code)
}

func TestListInteractions_OwnEntriesOnly(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 0)

	// two calls as user-a, one as user-b
	for _, uid := range []string{"a", "a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/predictions", nil)
		req.Header.Set("Authorization", bearer(t, uid))
		require.Equal(t, http.StatusOK, do(e, req).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/interactions", nil)
	req.Header.Set("Authorization", bearer(t, "a"))
	rec := do(e, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Interactions []models.Interaction `json:"interactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// the two earlier list calls; the /interactions call itself is recorded
	// after the response is written
	require.Len(t, resp.Interactions, 2)
	for _, in := range resp.Interactions {
		assert.Equal(t, "a", in.UserID)
		assert.Equal(t, "/predictions", in.Endpoint)
	}
}

func TestEveryCallRecordsExactlyOneInteraction(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 0)

	req := httptest.NewRequest(http.MethodDelete, "/predictions/missing", nil)
	req.Header.Set("Authorization", bearer(t, "a"))
	assert.Equal(t, http.StatusNotFound, do(e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/predictions", nil)
	req.Header.Set("Authorization", bearer(t, "a"))
	assert.Equal(t, http.StatusOK, do(e, req).Code)

	assert.Len(t, e.mem.AllInteractions(), 2)
}

func TestRateLimit(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 2)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/predictions", nil)
		req.Header.Set("Authorization", bearer(t, "a"))
		last = do(e, req).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestHealth_NoAuth(t *testing.T) {
	e := newEnv(t, stubClassifier{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := do(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	// health checks are not audited
	assert.Empty(t, e.mem.AllInteractions())
}
