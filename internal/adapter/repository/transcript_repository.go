package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
)

// TranscriptRepository handles transcript data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// FindAll retrieves all transcripts ordered by creation date
func (r *TranscriptRepository) FindAll(ctx context.Context) ([]*entities.Transcript, error) {
	var transcripts []*entities.Transcript
	if err := r.db.WithContext(ctx).
		Order("created_date DESC").
		Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}

// FindByID retrieves a transcript by ID
func (r *TranscriptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}

// Create inserts a new transcript
func (r *TranscriptRepository) Create(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	return r.db.WithContext(ctx).Create(transcript).Error
}

// Update persists all fields of an existing transcript
func (r *TranscriptRepository) Update(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	return r.db.WithContext(ctx).Save(transcript).Error
}

// Delete removes a transcript, reporting whether a record existed
func (r *TranscriptRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Transcript{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Search matches title and content against a term, bounded by limit
func (r *TranscriptRepository) Search(ctx context.Context, term string, limit int) ([]*entities.Transcript, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + term + "%"
	var transcripts []*entities.Transcript
	if err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Order("created_date DESC").
		Limit(limit).
		Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}
