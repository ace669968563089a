package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/pkg/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.SearchConfig{
		Endpoint:  serverURL,
		APIKey:    "test-key",
		IndexName: "transcripts",
	})
}

func TestIndex(t *testing.T) {
	var gotPath, gotAuth string
	var gotDocs []document

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDocs))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transcript := entities.NewTranscript("meet-1", "Weekly sync", "we talked about roadmap")
	transcript.AiInsights = &entities.AiInsights{Summary: "Roadmap discussion"}

	err := newTestClient(server.URL).Index(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, "/indexes/transcripts/documents", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotDocs, 1)
	assert.Equal(t, transcript.ID.String(), gotDocs[0].ID)
	assert.Equal(t, "Roadmap discussion", gotDocs[0].Summary)
}

func TestIndexServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	transcript := entities.NewTranscript("meet-1", "Weekly sync", "content")
	err := newTestClient(server.URL).Index(context.Background(), transcript)
	assert.Error(t, err)
}

func TestDeleteTolerates404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Delete(context.Background(), uuid.New())
	assert.NoError(t, err)
}

func TestSearch(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "budget", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(searchResponse{Hits: []document{
			{ID: id.String(), MeetingID: "meet-2", Title: "Budget review", Status: "completed"},
		}})
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "budget", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, id, results[0].ID)
	assert.Equal(t, entities.ProcessingStatusCompleted, results[0].Status)
}

func TestSearchSkipsMalformedIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{Hits: []document{
			{ID: "not-a-uuid", Title: "broken"},
			{ID: uuid.New().String(), Title: "ok"},
		}})
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ok", results[0].Title)
}
