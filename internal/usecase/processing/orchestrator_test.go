package processing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/pkg/config"
	"github.com/insighthub/meeting-insights/pkg/metrics"
)

type savedState struct {
	id     uuid.UUID
	status entities.ProcessingStatus
}

type fakeRepo struct {
	store   map[uuid.UUID]*entities.Transcript
	history []savedState
	findErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[uuid.UUID]*entities.Transcript)}
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]*entities.Transcript, error) { return nil, nil }

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.store[id], nil
}

func (f *fakeRepo) Create(ctx context.Context, t *entities.Transcript) error {
	copied := *t
	f.store[t.ID] = &copied
	f.history = append(f.history, savedState{id: t.ID, status: t.Status})
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, t *entities.Transcript) error {
	return f.Create(ctx, t)
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }

func (f *fakeRepo) Search(ctx context.Context, term string, limit int) ([]*entities.Transcript, error) {
	return nil, nil
}

func (f *fakeRepo) statusHistory(id uuid.UUID) []entities.ProcessingStatus {
	var statuses []entities.ProcessingStatus
	for _, s := range f.history {
		if s.id == id {
			statuses = append(statuses, s.status)
		}
	}
	return statuses
}

type fakeSource struct {
	transcripts []*entities.Transcript
	err         error
}

func (f *fakeSource) FetchNewTranscripts(ctx context.Context) ([]*entities.Transcript, error) {
	return f.transcripts, f.err
}

type fakeEnricher struct {
	insights *entities.AiInsights
	failFor  map[string]error
	calls    []string
}

func (f *fakeEnricher) GenerateInsights(ctx context.Context, content string) (*entities.AiInsights, error) {
	f.calls = append(f.calls, content)
	if err, ok := f.failFor[content]; ok {
		return nil, err
	}
	insights := *f.insights
	return &insights, nil
}

type fakeIndex struct {
	indexed []uuid.UUID
	err     error
}

func (f *fakeIndex) Index(ctx context.Context, t *entities.Transcript) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, t.ID)
	return nil
}

func (f *fakeIndex) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeIndex) Search(ctx context.Context, query string, maxResults int) ([]*entities.Transcript, error) {
	return nil, nil
}

type fakeExporter struct {
	exported []uuid.UUID
	err      error
}

func (f *fakeExporter) Export(ctx context.Context, t *entities.Transcript) error {
	if f.err != nil {
		return f.err
	}
	f.exported = append(f.exported, t.ID)
	return nil
}

type fixture struct {
	orchestrator *Orchestrator
	repo         *fakeRepo
	source       *fakeSource
	enricher     *fakeEnricher
	index        *fakeIndex
	exporter     *fakeExporter
	cfg          *config.Config
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newFakeRepo(),
		source: &fakeSource{},
		enricher: &fakeEnricher{
			insights: &entities.AiInsights{
				Sentiment:  entities.SentimentAnalysis{Overall: "positive", Score: 0.8},
				Summary:    "A productive meeting.",
				Confidence: 0.9,
			},
			failFor: make(map[string]error),
		},
		index:    &fakeIndex{},
		exporter: &fakeExporter{},
		cfg: &config.Config{
			Search:     config.SearchConfig{Enabled: true},
			Export:     config.ExportConfig{Enabled: true},
			Processing: config.ProcessingConfig{CallTimeout: time.Minute},
		},
	}
	f.orchestrator = NewOrchestrator(
		f.repo, f.source, f.enricher, f.index, f.exporter,
		f.cfg, metrics.New(prometheus.NewRegistry()), zap.NewNop(),
	)
	return f
}

func TestProcessOneHappyPath(t *testing.T) {
	f := newFixture()
	transcript := entities.NewTranscript("meet-1", "Sync", "we discussed things")
	f.source.transcripts = []*entities.Transcript{transcript}

	require.NoError(t, f.orchestrator.RunBatch(context.Background()))

	stored := f.repo.store[transcript.ID]
	require.NotNil(t, stored)
	assert.Equal(t, entities.ProcessingStatusCompleted, stored.Status)
	require.NotNil(t, stored.AiInsights)
	assert.Equal(t, "A productive meeting.", stored.AiInsights.Summary)
	require.NotNil(t, stored.ProcessedDate)

	// Processing status must hit the store before enrichment, and the
	// completed status lands together with the insights.
	statuses := f.repo.statusHistory(transcript.ID)
	assert.Equal(t, []entities.ProcessingStatus{
		entities.ProcessingStatusProcessing,
		entities.ProcessingStatusCompleted,
	}, statuses)

	assert.Equal(t, []uuid.UUID{transcript.ID}, f.index.indexed)
	assert.Equal(t, []uuid.UUID{transcript.ID}, f.exporter.exported)
}

func TestRunBatchIsolatesPerItemFailure(t *testing.T) {
	f := newFixture()
	first := entities.NewTranscript("meet-1", "First", "first content")
	second := entities.NewTranscript("meet-2", "Second", "second content")
	third := entities.NewTranscript("meet-3", "Third", "third content")
	f.source.transcripts = []*entities.Transcript{first, second, third}
	f.enricher.failFor["second content"] = fmt.Errorf("model overloaded")

	require.NoError(t, f.orchestrator.RunBatch(context.Background()))

	assert.Equal(t, entities.ProcessingStatusCompleted, f.repo.store[first.ID].Status)
	assert.Equal(t, entities.ProcessingStatusFailed, f.repo.store[second.ID].Status)
	assert.Equal(t, entities.ProcessingStatusCompleted, f.repo.store[third.ID].Status)
	assert.Len(t, f.enricher.calls, 3)
}

func TestRunBatchFailsOnRetrievalError(t *testing.T) {
	f := newFixture()
	f.source.err = fmt.Errorf("platform unreachable")

	err := f.orchestrator.RunBatch(context.Background())
	assert.Error(t, err)
	assert.Empty(t, f.enricher.calls)
}

func TestIndexFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.index.err = fmt.Errorf("index down")
	transcript := entities.NewTranscript("meet-1", "Sync", "content")
	f.source.transcripts = []*entities.Transcript{transcript}

	require.NoError(t, f.orchestrator.RunBatch(context.Background()))

	assert.Equal(t, entities.ProcessingStatusCompleted, f.repo.store[transcript.ID].Status)
	// Export still runs after the index failure
	assert.Equal(t, []uuid.UUID{transcript.ID}, f.exporter.exported)
}

func TestExportFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.exporter.err = fmt.Errorf("bucket unreachable")
	transcript := entities.NewTranscript("meet-1", "Sync", "content")
	f.source.transcripts = []*entities.Transcript{transcript}

	require.NoError(t, f.orchestrator.RunBatch(context.Background()))
	assert.Equal(t, entities.ProcessingStatusCompleted, f.repo.store[transcript.ID].Status)
}

func TestDisabledStagesAreSkipped(t *testing.T) {
	f := newFixture()
	f.cfg.Search.Enabled = false
	f.cfg.Export.Enabled = false
	transcript := entities.NewTranscript("meet-1", "Sync", "content")
	f.source.transcripts = []*entities.Transcript{transcript}

	require.NoError(t, f.orchestrator.RunBatch(context.Background()))

	assert.Equal(t, entities.ProcessingStatusCompleted, f.repo.store[transcript.ID].Status)
	assert.Empty(t, f.index.indexed)
	assert.Empty(t, f.exporter.exported)
}

func TestRunOneUnknownIDIsSuccess(t *testing.T) {
	f := newFixture()

	err := f.orchestrator.RunOne(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Empty(t, f.enricher.calls)
}

func TestRunOneResignalsFailure(t *testing.T) {
	f := newFixture()
	transcript := entities.NewTranscript("meet-1", "Sync", "doomed content")
	f.repo.store[transcript.ID] = transcript
	f.enricher.failFor["doomed content"] = fmt.Errorf("model overloaded")

	err := f.orchestrator.RunOne(context.Background(), transcript.ID)
	require.Error(t, err)
	assert.Equal(t, entities.ProcessingStatusFailed, f.repo.store[transcript.ID].Status)
	assert.Nil(t, f.repo.store[transcript.ID].ProcessedDate)
}

func TestRunOneReprocessingOverwritesInsights(t *testing.T) {
	f := newFixture()
	transcript := entities.NewTranscript("meet-1", "Sync", "content")
	transcript.MarkAsCompleted(&entities.AiInsights{Summary: "old summary"})
	f.repo.store[transcript.ID] = transcript

	require.NoError(t, f.orchestrator.RunOne(context.Background(), transcript.ID))

	stored := f.repo.store[transcript.ID]
	assert.Equal(t, entities.ProcessingStatusCompleted, stored.Status)
	assert.Equal(t, "A productive meeting.", stored.AiInsights.Summary)
}

func TestEmptyContentStillReachesEnrichment(t *testing.T) {
	f := newFixture()
	transcript := entities.NewTranscript("meet-1", "Sync", "")
	f.repo.store[transcript.ID] = transcript

	// The fixture enricher succeeds on any content, including empty
	require.NoError(t, f.orchestrator.RunOne(context.Background(), transcript.ID))
	assert.Equal(t, []string{""}, f.enricher.calls)
}

func TestStageEnableCheckedPerTranscript(t *testing.T) {
	f := newFixture()
	first := entities.NewTranscript("meet-1", "First", "first content")
	second := entities.NewTranscript("meet-2", "Second", "second content")
	f.repo.store[first.ID] = first
	f.repo.store[second.ID] = second

	require.NoError(t, f.orchestrator.RunOne(context.Background(), first.ID))
	f.cfg.Export.Enabled = false
	require.NoError(t, f.orchestrator.RunOne(context.Background(), second.ID))

	assert.Equal(t, []uuid.UUID{first.ID}, f.exporter.exported)
}
