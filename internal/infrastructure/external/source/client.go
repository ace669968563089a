package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
	"gorm.io/datatypes"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/pkg/config"
)

// Client retrieves newly completed meeting transcripts from the meeting
// platform. Meeting metadata comes from the platform API; the transcript
// text itself is fetched from AssemblyAI using the job id the platform
// attached to the meeting.
type Client struct {
	baseURL     string
	pageSize    int
	httpClient  *http.Client
	transcriber *aai.Client
	logger      *zap.Logger

	mu    sync.Mutex
	since time.Time
}

// NewClient creates a source client using the provided config.
// Falls back to environment variables for the AssemblyAI key.
func NewClient(cfg *config.SourceConfig, logger *zap.Logger) *Client {
	apiKey := cfg.AssemblyAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}

	oauthCfg := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	lookback := time.Duration(cfg.LookbackHours) * time.Hour
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		pageSize:    cfg.PageSize,
		httpClient:  oauthCfg.Client(context.Background()),
		transcriber: aai.NewClient(apiKey),
		logger:      logger,
		since:       time.Now().UTC().Add(-lookback),
	}
}

// meeting is the platform's listing shape
type meeting struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	Organizer    string    `json:"organizer"`
	EndTime      time.Time `json:"endTime"`
	TranscriptID string    `json:"transcriptId"`
	Participants []struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Email       string `json:"email"`
		Role        string `json:"role"`
	} `json:"participants"`
}

type meetingsResponse struct {
	Meetings []meeting `json:"meetings"`
}

// FetchNewTranscripts lists meetings completed since the previous fetch and
// resolves their transcript text. The cursor only advances on success, so a
// failed run is retried in full on the next interval.
func (c *Client) FetchNewTranscripts(ctx context.Context) ([]*entities.Transcript, error) {
	c.mu.Lock()
	since := c.since
	c.mu.Unlock()

	meetings, err := c.listMeetings(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	transcripts := make([]*entities.Transcript, 0, len(meetings))
	latest := since
	for _, m := range meetings {
		if m.TranscriptID == "" {
			continue
		}

		transcript, err := c.resolveTranscript(ctx, m)
		if err != nil {
			c.logger.Warn("⚠️ Skipping meeting with unresolvable transcript",
				zap.String("meeting_id", m.ID),
				zap.Error(err))
			continue
		}

		transcripts = append(transcripts, transcript)
		if m.EndTime.After(latest) {
			latest = m.EndTime
		}
	}

	c.mu.Lock()
	c.since = latest
	c.mu.Unlock()

	return transcripts, nil
}

func (c *Client) listMeetings(ctx context.Context, since time.Time) ([]meeting, error) {
	params := url.Values{}
	params.Set("since", since.Format(time.RFC3339))
	params.Set("hasTranscript", "true")
	if c.pageSize > 0 {
		params.Set("limit", strconv.Itoa(c.pageSize))
	}

	endpoint := fmt.Sprintf("%s/v1/meetings?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("meeting platform returned status %d", resp.StatusCode)
	}

	var mr meetingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, err
	}
	return mr.Meetings, nil
}

func (c *Client) resolveTranscript(ctx context.Context, m meeting) (*entities.Transcript, error) {
	job, err := c.transcriber.Transcripts.Get(ctx, m.TranscriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript %s: %w", m.TranscriptID, err)
	}
	if job.Text == nil || *job.Text == "" {
		return nil, fmt.Errorf("transcript %s has no text", m.TranscriptID)
	}

	transcript := entities.NewTranscript(m.ID, m.Subject, *job.Text)
	transcript.Organizer = m.Organizer
	transcript.RawPayload = datatypes.NewJSONType(map[string]interface{}{
		"meetingId":    m.ID,
		"transcriptId": m.TranscriptID,
		"endTime":      m.EndTime.Format(time.RFC3339),
	})
	if job.AudioDuration != nil {
		transcript.Duration = time.Duration(*job.AudioDuration * float64(time.Second))
	}
	for _, p := range m.Participants {
		transcript.Participants = append(transcript.Participants, entities.Participant{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Email:       p.Email,
			Role:        p.Role,
		})
	}
	return transcript, nil
}
