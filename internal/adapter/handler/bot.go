package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/insighthub/meeting-insights/errors"
	"github.com/insighthub/meeting-insights/internal/adapter/dto/transcript"
	transcriptUsecase "github.com/insighthub/meeting-insights/internal/usecase/transcripts"
)

// Bot handles inbound bot activities on the messaging boundary
type Bot struct {
	service transcriptUsecase.Service
	logger  *zap.Logger
}

// NewBotHandler creates a new bot handler
func NewBotHandler(service transcriptUsecase.Service, logger *zap.Logger) *Bot {
	return &Bot{
		service: service,
		logger:  logger,
	}
}

// Messages handles POST /messages
// @Summary      Receive a bot activity
// @Description  Accepts an inbound activity and replies with a short status message
// @Tags         Bot
// @Accept       json
// @Produce      json
// @Param        request  body      transcript.BotMessageRequest  true  "Inbound activity"
// @Success      200      {object}  transcript.BotMessageResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid payload"
// @Router       /messages [post]
func (h *Bot) Messages(c echo.Context) error {
	var req transcript.BotMessageRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	h.logger.Info("💬 Received bot activity",
		zap.String("type", req.Type),
		zap.String("from", req.From.Name),
		zap.String("conversation", req.Conversation.ID),
	)

	if req.Type != "message" {
		return HandleSuccess(h.logger, c, transcript.BotMessageResponse{Type: "message", Text: ""})
	}

	reply, err := h.buildReply(c, req.Text)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, transcript.BotMessageResponse{
		Type: "message",
		Text: reply,
	})
}

func (h *Bot) buildReply(c echo.Context, text string) (string, error) {
	term := strings.TrimSpace(text)
	if term == "" {
		return "Send me a search term and I'll look through the meeting transcripts.", nil
	}

	results, err := h.service.Search(c.Request().Context(), term)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("No transcripts matched %q.", term), nil
	}

	titles := make([]string, 0, len(results))
	for _, t := range results {
		titles = append(titles, t.Title)
	}
	return fmt.Sprintf("Found %d transcript(s): %s", len(results), strings.Join(titles, ", ")), nil
}
