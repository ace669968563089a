package processing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/insighthub/meeting-insights/errors"
	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/internal/domain/repositories"
	"github.com/insighthub/meeting-insights/pkg/config"
	"github.com/insighthub/meeting-insights/pkg/metrics"
)

// Orchestrator drives transcripts through the processing state machine:
// pending -> processing -> completed | failed. Search indexing and analytics
// export are optional stages whose failures never fail the transcript.
type Orchestrator struct {
	repo        repositories.TranscriptRepository
	source      repositories.TranscriptSource
	enricher    repositories.InsightsGenerator
	searchIndex repositories.SearchIndex
	exporter    repositories.AnalyticsExporter
	cfg         *config.Config
	metrics     *metrics.PipelineMetrics
	logger      *zap.Logger
}

// NewOrchestrator constructs the processing orchestrator. searchIndex and
// exporter may be nil when the corresponding stage is disabled.
func NewOrchestrator(
	repo repositories.TranscriptRepository,
	source repositories.TranscriptSource,
	enricher repositories.InsightsGenerator,
	searchIndex repositories.SearchIndex,
	exporter repositories.AnalyticsExporter,
	cfg *config.Config,
	pipelineMetrics *metrics.PipelineMetrics,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		repo:        repo,
		source:      source,
		enricher:    enricher,
		searchIndex: searchIndex,
		exporter:    exporter,
		cfg:         cfg,
		metrics:     pipelineMetrics,
		logger:      logger,
	}
}

// RunBatch retrieves new transcripts from the source and processes each one.
// A per-transcript failure is recorded on that transcript and the loop moves
// on. Only a retrieval failure aborts the run.
func (o *Orchestrator) RunBatch(ctx context.Context) error {
	o.logger.Info("🔄 Starting batch processing run")

	transcripts, err := o.source.FetchNewTranscripts(ctx)
	if err != nil {
		o.logger.Error("❌ Failed to retrieve transcripts from source", zap.Error(err))
		o.metrics.BatchRunsTotal.WithLabelValues("failed").Inc()
		return apperrors.ErrSourceRetrievalFailed(err)
	}

	o.logger.Info("📋 Retrieved transcripts from source",
		zap.Int("count", len(transcripts)),
	)

	processed := 0
	failed := 0
	for _, transcript := range transcripts {
		if err := o.processOne(ctx, transcript); err != nil {
			failed++
			o.logger.Error("❌ Failed to process transcript",
				zap.String("transcript_id", transcript.ID.String()),
				zap.String("meeting_id", transcript.MeetingID),
				zap.Error(err),
			)
			continue
		}
		processed++
	}

	o.metrics.BatchRunsTotal.WithLabelValues("completed").Inc()
	o.logger.Info("✅ Batch processing run finished",
		zap.Int("processed", processed),
		zap.Int("failed", failed),
	)
	return nil
}

// RunOne processes a single stored transcript by id. An unknown id is logged
// and reported as success; a processing failure is re-signaled after being
// recorded on the transcript.
func (o *Orchestrator) RunOne(ctx context.Context, id uuid.UUID) error {
	transcript, err := o.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if transcript == nil {
		o.logger.Warn("⚠️ Transcript not found for processing",
			zap.String("transcript_id", id.String()),
		)
		return nil
	}

	return o.processOne(ctx, transcript)
}

// processOne runs the state machine for one transcript. The processing status
// is persisted before the AI call so observers see the transition; insights,
// processed date and completed status are persisted together afterwards.
func (o *Orchestrator) processOne(ctx context.Context, transcript *entities.Transcript) error {
	start := time.Now()

	o.logger.Info("🔄 Processing transcript",
		zap.String("transcript_id", transcript.ID.String()),
		zap.String("meeting_id", transcript.MeetingID),
		zap.String("status", string(transcript.Status)),
	)

	transcript.MarkAsProcessing()
	if err := o.save(ctx, transcript); err != nil {
		return o.fail(ctx, transcript, err)
	}

	insights, err := o.generateInsights(ctx, transcript.Content)
	if err != nil {
		return o.fail(ctx, transcript, err)
	}

	transcript.MarkAsCompleted(insights)
	if err := o.save(ctx, transcript); err != nil {
		return o.fail(ctx, transcript, err)
	}

	o.indexTranscript(ctx, transcript)
	o.exportTranscript(ctx, transcript)

	o.metrics.TranscriptsProcessedTotal.WithLabelValues(string(entities.ProcessingStatusCompleted)).Inc()
	o.metrics.ProcessingSeconds.Observe(time.Since(start).Seconds())

	o.logger.Info("✅ Transcript processed",
		zap.String("transcript_id", transcript.ID.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// fail records the failed status and re-signals the original error. The
// status write is best-effort; the caller's error wins either way.
func (o *Orchestrator) fail(ctx context.Context, transcript *entities.Transcript, cause error) error {
	transcript.MarkAsFailed()
	if err := o.save(ctx, transcript); err != nil {
		o.logger.Error("❌ Failed to persist failed status",
			zap.String("transcript_id", transcript.ID.String()),
			zap.Error(err),
		)
	}

	o.metrics.TranscriptsProcessedTotal.WithLabelValues(string(entities.ProcessingStatusFailed)).Inc()
	return cause
}

func (o *Orchestrator) generateInsights(ctx context.Context, content string) (*entities.AiInsights, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.Processing.CallTimeout)
	defer cancel()
	return o.enricher.GenerateInsights(callCtx, content)
}

// indexTranscript refreshes the search document. The enable flag is read per
// transcript, not cached per batch. Failures are logged and swallowed.
func (o *Orchestrator) indexTranscript(ctx context.Context, transcript *entities.Transcript) {
	if !o.cfg.Search.Enabled || o.searchIndex == nil {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.Processing.CallTimeout)
	defer cancel()

	if err := o.searchIndex.Index(callCtx, transcript); err != nil {
		o.metrics.OptionalStageFailures.WithLabelValues("search_index").Inc()
		o.logger.Warn("⚠️ Search indexing failed",
			zap.String("transcript_id", transcript.ID.String()),
			zap.Error(err),
		)
	}
}

// exportTranscript writes the analytics record. Same isolation policy as
// indexing.
func (o *Orchestrator) exportTranscript(ctx context.Context, transcript *entities.Transcript) {
	if !o.cfg.Export.Enabled || o.exporter == nil {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.Processing.CallTimeout)
	defer cancel()

	if err := o.exporter.Export(callCtx, transcript); err != nil {
		o.metrics.OptionalStageFailures.WithLabelValues("analytics_export").Inc()
		o.logger.Warn("⚠️ Analytics export failed",
			zap.String("transcript_id", transcript.ID.String()),
			zap.Error(err),
		)
	}
}

// save inserts or updates depending on whether the row already exists. Batch
// items arrive unsaved; queue items are always stored already.
func (o *Orchestrator) save(ctx context.Context, transcript *entities.Transcript) error {
	existing, err := o.repo.FindByID(ctx, transcript.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return o.repo.Create(ctx, transcript)
	}
	return o.repo.Update(ctx, transcript)
}
