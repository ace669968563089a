package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/insighthub/meeting-insights/errors"
	"github.com/insighthub/meeting-insights/internal/adapter/dto/transcript"
	"github.com/insighthub/meeting-insights/internal/domain/repositories"
	transcriptUsecase "github.com/insighthub/meeting-insights/internal/usecase/transcripts"
	"github.com/insighthub/meeting-insights/pkg/metrics"
)

// Transcript handles transcript-related HTTP requests
type Transcript struct {
	service transcriptUsecase.Service
	queue   repositories.ProcessingQueue
	metrics *metrics.PipelineMetrics
	logger  *zap.Logger
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(
	service transcriptUsecase.Service,
	queue repositories.ProcessingQueue,
	pipelineMetrics *metrics.PipelineMetrics,
	logger *zap.Logger,
) *Transcript {
	return &Transcript{
		service: service,
		queue:   queue,
		metrics: pipelineMetrics,
		logger:  logger,
	}
}

// List handles GET /transcripts
// @Summary      List transcripts
// @Description  Returns all stored transcripts, newest first
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  transcript.TranscriptResponse
// @Router       /transcripts [get]
func (h *Transcript) List(c echo.Context) error {
	transcripts, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, transcript.FromEntities(transcripts))
}

// Get handles GET /transcripts/:id
// @Summary      Get a transcript
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  transcript.TranscriptResponse
// @Failure      404  {object}  map[string]interface{}  "Transcript not found"
// @Router       /transcripts/{id} [get]
func (h *Transcript) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("transcript ID must be a valid UUID"))
	}

	t, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if t == nil {
		return HandleError(h.logger, c, apperrors.ErrTranscriptNotFound(id.String()))
	}

	return HandleSuccess(h.logger, c, transcript.FromEntity(t))
}

// Search handles GET /transcripts/search?q=
// @Summary      Search transcripts
// @Description  Queries the search engine, falling back to the store when the engine is unavailable
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search term"
// @Success      200  {array}   transcript.TranscriptResponse
// @Failure      400  {object}  map[string]interface{}  "Missing search term"
// @Router       /transcripts/search [get]
func (h *Transcript) Search(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("query parameter q is required"))
	}

	results, err := h.service.Search(c.Request().Context(), term)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, transcript.FromEntities(results))
}

// Create handles POST /transcripts
// @Summary      Create a transcript
// @Description  Stores a transcript in the pending state; id, created date and status are server-assigned
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      transcript.CreateTranscriptRequest  true  "Transcript payload"
// @Success      201      {object}  transcript.TranscriptResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid payload"
// @Router       /transcripts [post]
func (h *Transcript) Create(c echo.Context) error {
	var req transcript.CreateTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	entity := req.ToEntity()
	if err := h.service.Save(c.Request().Context(), entity); err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("✅ Transcript created",
		zap.String("transcript_id", entity.ID.String()),
		zap.String("meeting_id", entity.MeetingID),
	)
	return HandleCreated(h.logger, c, transcript.FromEntity(entity))
}

// Delete handles DELETE /transcripts/:id
// @Summary      Delete a transcript
// @Tags         Transcripts
// @Security     BearerAuth
// @Param        id  path  string  true  "Transcript ID (UUID)"
// @Success      204  "Deleted"
// @Failure      404  {object}  map[string]interface{}  "Transcript not found"
// @Router       /transcripts/{id} [delete]
func (h *Transcript) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("transcript ID must be a valid UUID"))
	}

	existed, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if !existed {
		return HandleError(h.logger, c, apperrors.ErrTranscriptNotFound(id.String()))
	}

	return c.NoContent(http.StatusNoContent)
}

// Process handles POST /transcripts/:id/process
// @Summary      Trigger processing for one transcript
// @Description  Enqueues a single-item processing trigger; the pipeline picks it up asynchronously
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Transcript ID (UUID)"
// @Success      200  {object}  transcript.ProcessTriggerResponse
// @Failure      404  {object}  map[string]interface{}  "Transcript not found"
// @Router       /transcripts/{id}/process [post]
func (h *Transcript) Process(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("transcript ID must be a valid UUID"))
	}

	t, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if t == nil {
		return HandleError(h.logger, c, apperrors.ErrTranscriptNotFound(id.String()))
	}

	if err := h.queue.Enqueue(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, apperrors.ErrQueueFailed("enqueue", err))
	}
	h.metrics.QueueItemsTotal.Inc()

	h.logger.Info("📬 Processing trigger enqueued",
		zap.String("transcript_id", id.String()),
	)
	return HandleSuccess(h.logger, c, transcript.ProcessTriggerResponse{
		TranscriptID: id.String(),
		Queued:       true,
	})
}
