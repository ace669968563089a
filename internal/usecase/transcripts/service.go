package transcripts

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/internal/domain/repositories"
	"github.com/insighthub/meeting-insights/pkg/config"
)

// Service defines transcript management methods
type Service interface {
	GetAll(ctx context.Context) ([]*entities.Transcript, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	Save(ctx context.Context, transcript *entities.Transcript) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, term string) ([]*entities.Transcript, error)
}

type transcriptService struct {
	repo        repositories.TranscriptRepository
	searchIndex repositories.SearchIndex
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService constructs a transcript service. searchIndex may be nil when
// search is disabled.
func NewService(
	repo repositories.TranscriptRepository,
	searchIndex repositories.SearchIndex,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &transcriptService{
		repo:        repo,
		searchIndex: searchIndex,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *transcriptService) GetAll(ctx context.Context) ([]*entities.Transcript, error) {
	return s.repo.FindAll(ctx)
}

func (s *transcriptService) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	return s.repo.FindByID(ctx, id)
}

// Save inserts or updates the transcript, then refreshes the search index.
// Index failures are logged and swallowed; the save outcome is already
// decided by the store.
func (s *transcriptService) Save(ctx context.Context, transcript *entities.Transcript) error {
	existing, err := s.repo.FindByID(ctx, transcript.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		if err := s.repo.Create(ctx, transcript); err != nil {
			return err
		}
	} else {
		if err := s.repo.Update(ctx, transcript); err != nil {
			return err
		}
	}

	if s.searchEnabled() {
		if err := s.searchIndex.Index(ctx, transcript); err != nil {
			s.logger.Warn("⚠️ Failed to index transcript",
				zap.String("transcript_id", transcript.ID.String()),
				zap.Error(err),
			)
		}
	}

	return nil
}

// Delete removes the transcript and, when it existed, its index document.
// The store outcome is returned regardless of what the index does.
func (s *transcriptService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if existed && s.searchEnabled() {
		if err := s.searchIndex.Delete(ctx, id); err != nil {
			s.logger.Warn("⚠️ Failed to remove transcript from index",
				zap.String("transcript_id", id.String()),
				zap.Error(err),
			)
		}
	}

	return existed, nil
}

// Search queries the search engine first and falls back to the store only
// when the engine errors. An empty engine result is returned as-is.
func (s *transcriptService) Search(ctx context.Context, term string) ([]*entities.Transcript, error) {
	if s.searchEnabled() {
		results, err := s.searchIndex.Search(ctx, term, 10)
		if err == nil {
			return results, nil
		}
		s.logger.Warn("⚠️ Search engine query failed, falling back to store",
			zap.String("term", term),
			zap.Error(err),
		)
	}

	return s.repo.Search(ctx, term, 10)
}

func (s *transcriptService) searchEnabled() bool {
	return s.searchIndex != nil && s.cfg.Search.Enabled
}
