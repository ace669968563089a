package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/pkg/config"
)

// MinIOExporter writes analytics records for enriched transcripts to object storage
type MinIOExporter struct {
	client *minio.Client
	bucket string
}

// NewMinIOExporter creates the exporter and ensures the target bucket exists
func NewMinIOExporter(cfg *config.ExportConfig) (*MinIOExporter, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exporter := &MinIOExporter{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx := context.Background()
	if err := exporter.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return exporter, nil
}

func (m *MinIOExporter) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// analyticsRecord is the flattened export shape consumed by downstream reporting
type analyticsRecord struct {
	ID              string     `json:"id"`
	MeetingID       string     `json:"meetingId"`
	Title           string     `json:"title"`
	Organizer       string     `json:"organizer"`
	DurationSeconds float64    `json:"durationSeconds"`
	CreatedDate     time.Time  `json:"createdDate"`
	ProcessedDate   *time.Time `json:"processedDate,omitempty"`
	Sentiment       string     `json:"sentiment,omitempty"`
	SentimentScore  float64    `json:"sentimentScore,omitempty"`
	Themes          []string   `json:"themes,omitempty"`
	Summary         string     `json:"summary,omitempty"`
	Confidence      float64    `json:"confidence,omitempty"`
	ActionItemCount int        `json:"actionItemCount"`
}

// Export uploads one JSON record per transcript, keyed by transcript ID
func (m *MinIOExporter) Export(ctx context.Context, transcript *entities.Transcript) error {
	record := analyticsRecord{
		ID:              transcript.ID.String(),
		MeetingID:       transcript.MeetingID,
		Title:           transcript.Title,
		Organizer:       transcript.Organizer,
		DurationSeconds: transcript.Duration.Seconds(),
		CreatedDate:     transcript.CreatedDate,
		ProcessedDate:   transcript.ProcessedDate,
	}

	if insights := transcript.AiInsights; insights != nil {
		record.Sentiment = insights.Sentiment.Overall
		record.SentimentScore = insights.Sentiment.Score
		record.Summary = insights.Summary
		record.Confidence = insights.Confidence
		record.ActionItemCount = len(insights.ActionItems)
		for _, theme := range insights.Themes {
			record.Themes = append(record.Themes, theme.Name)
		}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics record: %w", err)
	}

	objectName := fmt.Sprintf("transcripts/%s.json", transcript.ID)
	_, err = m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload analytics record: %w", err)
	}

	return nil
}
