package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/insighthub/meeting-insights/internal/domain/entities"
)

// TranscriptSource pulls newly available transcripts from the meeting
// platform. Repeated calls against unchanged source state return the
// same set.
type TranscriptSource interface {
	FetchNewTranscripts(ctx context.Context) ([]*entities.Transcript, error)
}

// InsightsGenerator derives insights from raw transcript content.
// Implementations must be safe to call again for the same content.
type InsightsGenerator interface {
	GenerateInsights(ctx context.Context, content string) (*entities.AiInsights, error)
}

// SearchIndex is the external search engine boundary. Index upserts,
// Search returns a relevance-ordered sequence bounded by maxResults.
type SearchIndex interface {
	Index(ctx context.Context, transcript *entities.Transcript) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, maxResults int) ([]*entities.Transcript, error)
}

// AnalyticsExporter forwards a completed transcript to the analytics sink
type AnalyticsExporter interface {
	Export(ctx context.Context, transcript *entities.Transcript) error
}

// ProcessingQueue carries single-item processing triggers
type ProcessingQueue interface {
	Enqueue(ctx context.Context, transcriptID uuid.UUID) error

	// Dequeue blocks for the next transcript id, bounded by the
	// implementation's poll timeout. Returns (uuid.Nil, nil) when the
	// timeout elapses with nothing queued.
	Dequeue(ctx context.Context) (uuid.UUID, error)
}
