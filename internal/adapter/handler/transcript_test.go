package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/internal/infrastructure/queue"
	"github.com/insighthub/meeting-insights/pkg/metrics"
	"github.com/insighthub/meeting-insights/pkg/validator"
)

type fakeService struct {
	store map[uuid.UUID]*entities.Transcript
}

func newFakeService() *fakeService {
	return &fakeService{store: make(map[uuid.UUID]*entities.Transcript)}
}

func (f *fakeService) GetAll(ctx context.Context) ([]*entities.Transcript, error) {
	all := make([]*entities.Transcript, 0, len(f.store))
	for _, t := range f.store {
		all = append(all, t)
	}
	return all, nil
}

func (f *fakeService) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	return f.store[id], nil
}

func (f *fakeService) Save(ctx context.Context, t *entities.Transcript) error {
	f.store[t.ID] = t
	return nil
}

func (f *fakeService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.store[id]; !ok {
		return false, nil
	}
	delete(f.store, id)
	return true, nil
}

func (f *fakeService) Search(ctx context.Context, term string) ([]*entities.Transcript, error) {
	var results []*entities.Transcript
	for _, t := range f.store {
		if strings.Contains(t.Title, term) || strings.Contains(t.Content, term) {
			results = append(results, t)
		}
	}
	return results, nil
}

func newTestHandler() (*Transcript, *fakeService, *queue.MemoryQueue, *echo.Echo) {
	svc := newFakeService()
	q := queue.NewMemoryQueue(8)
	h := NewTranscriptHandler(svc, q, metrics.New(prometheus.NewRegistry()), zap.NewNop())

	e := echo.New()
	e.Validator = validator.New()
	return h, svc, q, e
}

func TestCreateTranscript(t *testing.T) {
	h, svc, _, e := newTestHandler()

	body := `{"meetingId": "meet-1", "title": "Weekly sync", "content": "we talked", "durationSeconds": 1800}`
	req := httptest.NewRequest(http.MethodPost, "/v1/transcripts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, svc.store, 1)

	var resp struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.Data.Status)
	_, err := uuid.Parse(resp.Data.ID)
	assert.NoError(t, err)
}

func TestCreateTranscriptMissingMeetingID(t *testing.T) {
	h, _, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/transcripts", strings.NewReader(`{"title": "No meeting"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTranscriptNotFound(t *testing.T) {
	h, _, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTranscript(t *testing.T) {
	h, svc, _, e := newTestHandler()
	transcript := entities.NewTranscript("meet-1", "Weekly sync", "content")
	svc.store[transcript.ID] = transcript

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(transcript.ID.String())

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Weekly sync")
}

func TestSearchRequiresTerm(t *testing.T) {
	h, _, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/transcripts/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTranscript(t *testing.T) {
	h, svc, _, e := newTestHandler()
	transcript := entities.NewTranscript("meet-1", "Weekly sync", "content")
	svc.store[transcript.ID] = transcript

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(transcript.ID.String())

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(transcript.ID.String())

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProcessEnqueuesTrigger(t *testing.T) {
	h, svc, q, e := newTestHandler()
	transcript := entities.NewTranscript("meet-1", "Weekly sync", "content")
	svc.store[transcript.ID] = transcript

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(transcript.ID.String())

	require.NoError(t, h.Process(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	id, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, transcript.ID, id)
}

func TestProcessUnknownTranscript(t *testing.T) {
	h, _, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	require.NoError(t, h.Process(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
