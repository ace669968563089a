package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/pkg/config"
)

// Client is a minimal client for the external search service
type Client struct {
	endpoint  string
	apiKey    string
	indexName string
	client    *http.Client
}

// NewClient creates a search client from the provided config
func NewClient(cfg *config.SearchConfig) *Client {
	return &Client{
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		indexName: cfg.IndexName,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// document is the indexed projection of a transcript
type document struct {
	ID          string    `json:"id"`
	MeetingID   string    `json:"meetingId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Organizer   string    `json:"organizer"`
	Summary     string    `json:"summary,omitempty"`
	Status      string    `json:"status"`
	CreatedDate time.Time `json:"createdDate"`
}

type searchResponse struct {
	Hits []document `json:"hits"`
}

// Index upserts a transcript document
func (c *Client) Index(ctx context.Context, transcript *entities.Transcript) error {
	doc := document{
		ID:          transcript.ID.String(),
		MeetingID:   transcript.MeetingID,
		Title:       transcript.Title,
		Content:     transcript.Content,
		Organizer:   transcript.Organizer,
		Status:      string(transcript.Status),
		CreatedDate: transcript.CreatedDate,
	}
	if transcript.AiInsights != nil {
		doc.Summary = transcript.AiInsights.Summary
	}

	b, err := json.Marshal([]document{doc})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/indexes/%s/documents", c.endpoint, c.indexName)
	req, err := http.NewRequestWithContext(ctx, "PUT", endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("search service returned status %d", resp.StatusCode)
	}
	return nil
}

// Delete removes a transcript document from the index
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	endpoint := fmt.Sprintf("%s/indexes/%s/documents/%s", c.endpoint, c.indexName, id)
	req, err := http.NewRequestWithContext(ctx, "DELETE", endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("search service returned status %d", resp.StatusCode)
	}
	return nil
}

// Search returns a relevance-ordered sequence bounded by maxResults
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]*entities.Transcript, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(maxResults))

	endpoint := fmt.Sprintf("%s/indexes/%s/search?%s", c.endpoint, c.indexName, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search service returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}

	results := make([]*entities.Transcript, 0, len(sr.Hits))
	for _, hit := range sr.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		results = append(results, &entities.Transcript{
			ID:          id,
			MeetingID:   hit.MeetingID,
			Title:       hit.Title,
			Content:     hit.Content,
			Organizer:   hit.Organizer,
			Status:      entities.ProcessingStatus(hit.Status),
			CreatedDate: hit.CreatedDate,
		})
	}
	return results, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
}
