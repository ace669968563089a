package ai

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/insighthub/meeting-insights/errors"
	"github.com/insighthub/meeting-insights/internal/domain/entities"
	pkgai "github.com/insighthub/meeting-insights/pkg/ai"
)

const insightsPrompt = `You are an expert meeting analyst. Analyze the following meeting transcript and respond with a single JSON object, no prose, using exactly this shape:

{
  "sentiment": {"overall": "positive|neutral|negative", "score": 0.0, "confidence": 0.0, "detailed": {"topic": 0.0}},
  "themes": [{"name": "", "category": "", "relevance": 0.0, "mentions": 0, "quotes": [""]}],
  "keyPoints": [""],
  "actionItems": [{"description": "", "assignedTo": "", "priority": "low|medium|high|critical"}],
  "summary": "",
  "confidence": 0.0
}

Scores are in [0, 1]. Omit assignedTo when no owner was named. The summary must be 2-4 sentences.

Transcript:
%s`

// Enricher generates structured insights for transcript content using Groq
type Enricher struct {
	groqClient *pkgai.GroqClient
	parser     *Parser
	logger     *zap.Logger
}

// NewEnricher constructs a new Enricher
func NewEnricher(groq *pkgai.GroqClient, logger *zap.Logger) *Enricher {
	return &Enricher{
		groqClient: groq,
		parser:     NewParser(),
		logger:     logger,
	}
}

// GenerateInsights sends the transcript content to Groq and parses the
// structured result. Transient Groq failures are retried with exponential
// backoff; an unparseable response is terminal.
func (e *Enricher) GenerateInsights(ctx context.Context, content string) (*entities.AiInsights, error) {
	if e.groqClient == nil {
		return nil, apperrors.ErrAIServiceUnavailable("groq")
	}
	if content == "" {
		return nil, apperrors.ErrEnrichmentFailed(fmt.Errorf("transcript content is empty"))
	}

	e.logger.Info("🤖 Generating insights with Groq",
		zap.Int("content_length", len(content)),
	)

	var raw string
	completeFn := func() error {
		response, err := e.groqClient.Complete(ctx, fmt.Sprintf(insightsPrompt, content))
		if err != nil {
			e.logger.Warn("⚠️ Groq completion failed, will retry",
				zap.Error(err),
			)
			return err
		}
		raw = response
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 60 * time.Second

	if err := backoff.Retry(completeFn, backoff.WithContext(bo, ctx)); err != nil {
		e.logger.Error("❌ Groq completion failed after retries", zap.Error(err))
		return nil, apperrors.ErrEnrichmentFailed(err)
	}

	insights, err := e.parser.ParseInsightsResponse(raw)
	if err != nil {
		e.logger.Error("❌ Failed to parse Groq response",
			zap.Error(err),
			zap.String("raw_response", raw[:min(500, len(raw))]),
		)
		return nil, apperrors.ErrAIResponseUnparseable(err)
	}

	insights.ProcessedDate = time.Now().UTC()

	e.logger.Info("✅ Insights generated",
		zap.String("sentiment", insights.Sentiment.Overall),
		zap.Int("theme_count", len(insights.Themes)),
		zap.Int("action_item_count", len(insights.ActionItems)),
		zap.Float64("confidence", insights.Confidence),
	)

	return insights, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
