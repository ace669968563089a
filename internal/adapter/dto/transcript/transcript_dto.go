package transcript

import (
	"time"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
)

// CreateTranscriptRequest is the payload for POST /v1/transcripts
type CreateTranscriptRequest struct {
	MeetingID       string               `json:"meetingId" validate:"required"`
	Title           string               `json:"title" validate:"max=512"`
	Content         string               `json:"content"`
	Organizer       string               `json:"organizer" validate:"max=255"`
	DurationSeconds float64              `json:"durationSeconds" validate:"gte=0"`
	Participants    []ParticipantRequest `json:"participants" validate:"dive"`
}

// ParticipantRequest is one attendee in a create request
type ParticipantRequest struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Role        string `json:"role"`
}

// ToEntity builds a pending transcript from the request. The server assigns
// id, created date and status.
func (r *CreateTranscriptRequest) ToEntity() *entities.Transcript {
	t := entities.NewTranscript(r.MeetingID, r.Title, r.Content)
	t.Organizer = r.Organizer
	t.Duration = time.Duration(r.DurationSeconds * float64(time.Second))
	for _, p := range r.Participants {
		t.Participants = append(t.Participants, entities.Participant{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Email:       p.Email,
			Role:        p.Role,
		})
	}
	return t
}

// TranscriptResponse is the API projection of a transcript
type TranscriptResponse struct {
	ID              string                 `json:"id"`
	MeetingID       string                 `json:"meetingId"`
	Title           string                 `json:"title"`
	Content         string                 `json:"content"`
	Organizer       string                 `json:"organizer"`
	DurationSeconds float64                `json:"durationSeconds"`
	Participants    []entities.Participant `json:"participants,omitempty"`
	Status          string                 `json:"status"`
	CreatedDate     time.Time              `json:"createdDate"`
	ProcessedDate   *time.Time             `json:"processedDate,omitempty"`
	AiInsights      *entities.AiInsights   `json:"aiInsights,omitempty"`
}

// FromEntity maps a transcript entity to its response shape
func FromEntity(t *entities.Transcript) *TranscriptResponse {
	return &TranscriptResponse{
		ID:              t.ID.String(),
		MeetingID:       t.MeetingID,
		Title:           t.Title,
		Content:         t.Content,
		Organizer:       t.Organizer,
		DurationSeconds: t.Duration.Seconds(),
		Participants:    t.Participants,
		Status:          string(t.Status),
		CreatedDate:     t.CreatedDate,
		ProcessedDate:   t.ProcessedDate,
		AiInsights:      t.AiInsights,
	}
}

// FromEntities maps a slice of transcripts
func FromEntities(transcripts []*entities.Transcript) []*TranscriptResponse {
	responses := make([]*TranscriptResponse, 0, len(transcripts))
	for _, t := range transcripts {
		responses = append(responses, FromEntity(t))
	}
	return responses
}

// ProcessTriggerResponse acknowledges an enqueued processing request
type ProcessTriggerResponse struct {
	TranscriptID string `json:"transcriptId"`
	Queued       bool   `json:"queued"`
}

// BotMessageRequest is the inbound bot activity payload
type BotMessageRequest struct {
	Type         string          `json:"type" validate:"required"`
	Text         string          `json:"text"`
	From         BotAccount      `json:"from"`
	Conversation BotConversation `json:"conversation"`
}

// BotAccount identifies the sender of a bot activity
type BotAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BotConversation identifies the conversation of a bot activity
type BotConversation struct {
	ID string `json:"id"`
}

// BotMessageResponse is the reply activity
type BotMessageResponse struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
