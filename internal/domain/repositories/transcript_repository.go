package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/insighthub/meeting-insights/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript data access.
// Lookups return (nil, nil) when no record exists; absence is not an error.
type TranscriptRepository interface {
	// FindAll retrieves all transcripts ordered by creation date
	FindAll(ctx context.Context) ([]*entities.Transcript, error)

	// FindByID retrieves a transcript by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)

	// Create inserts a new transcript
	Create(ctx context.Context, transcript *entities.Transcript) error

	// Update persists all fields of an existing transcript
	Update(ctx context.Context, transcript *entities.Transcript) error

	// Delete removes a transcript, reporting whether a record existed
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Search matches title and content against a term, bounded by limit
	Search(ctx context.Context, term string, limit int) ([]*entities.Transcript, error)
}
