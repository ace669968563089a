package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProcessingStatus represents the lifecycle state of a transcript
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"    // Waiting for the orchestrator to pick it up
	ProcessingStatusProcessing ProcessingStatus = "processing" // Enrichment in flight
	ProcessingStatusCompleted  ProcessingStatus = "completed"  // Enriched and persisted
	ProcessingStatusFailed     ProcessingStatus = "failed"     // Enrichment or persistence failed
	ProcessingStatusRetry      ProcessingStatus = "retry"      // Reserved; not driven by the current workflow
)

// Participant is an immutable snapshot of a meeting attendee, stored
// as JSONB on the transcript row
type Participant struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// SentimentAnalysis is the sentiment portion of the enrichment result
type SentimentAnalysis struct {
	Overall    string             `json:"overall"`
	Score      float64            `json:"score"`
	Confidence float64            `json:"confidence"`
	Detailed   map[string]float64 `json:"detailed,omitempty"`
}

// Theme is a recurring topic extracted from the transcript
type Theme struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Relevance float64  `json:"relevance"`
	Mentions  int      `json:"mentions"`
	Quotes    []string `json:"quotes,omitempty"`
}

// ActionItemPriority levels for extracted action items
type ActionItemPriority string

const (
	ActionItemPriorityLow      ActionItemPriority = "low"
	ActionItemPriorityMedium   ActionItemPriority = "medium"
	ActionItemPriorityHigh     ActionItemPriority = "high"
	ActionItemPriorityCritical ActionItemPriority = "critical"
)

// ActionItemStatus tracks follow-up state of an action item
type ActionItemStatus string

const (
	ActionItemStatusOpen       ActionItemStatus = "open"
	ActionItemStatusInProgress ActionItemStatus = "in_progress"
	ActionItemStatusCompleted  ActionItemStatus = "completed"
	ActionItemStatusCancelled  ActionItemStatus = "cancelled"
)

// ActionItem is a task extracted from the transcript content
type ActionItem struct {
	Description string             `json:"description"`
	AssignedTo  string             `json:"assignedTo,omitempty"`
	Priority    ActionItemPriority `json:"priority"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	Status      ActionItemStatus   `json:"status"`
}

// NewActionItem creates an action item with default priority and status
func NewActionItem(description string) ActionItem {
	return ActionItem{
		Description: description,
		Priority:    ActionItemPriorityMedium,
		Status:      ActionItemStatusOpen,
	}
}

// AiInsights is the full enrichment result for one transcript.
// It is owned by its transcript and replaced wholesale on re-processing.
type AiInsights struct {
	Sentiment     SentimentAnalysis `json:"sentiment"`
	Themes        []Theme           `json:"themes"`
	KeyPoints     []string          `json:"keyPoints"`
	ActionItems   []ActionItem      `json:"actionItems"`
	Summary       string            `json:"summary"`
	Confidence    float64           `json:"confidence"`
	ProcessedDate time.Time         `json:"processedDate"`
}

// Transcript is the stored meeting transcript and its processing state
type Transcript struct {
	ID            uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID     string                                     `json:"meetingId" gorm:"type:varchar(255);not null;index"`
	Title         string                                     `json:"title" gorm:"type:varchar(512)"`
	Content       string                                     `json:"content" gorm:"type:text"`
	Participants  []Participant                              `json:"participants" gorm:"type:jsonb;serializer:json"`
	CreatedDate   time.Time                                  `json:"createdDate" gorm:"autoCreateTime"`
	Duration      time.Duration                              `json:"duration"`
	Organizer     string                                     `json:"organizer" gorm:"type:varchar(255)"`
	ProcessedDate *time.Time                                 `json:"processedDate,omitempty" gorm:"type:timestamp"`
	Status        ProcessingStatus                           `json:"status" gorm:"type:varchar(50);not null;index;default:'pending'"`
	AiInsights    *AiInsights                                `json:"aiInsights,omitempty" gorm:"type:jsonb;serializer:json"`
	RawPayload    datatypes.JSONType[map[string]interface{}] `json:"rawPayload,omitempty" gorm:"type:jsonb"`
	UpdatedAt     time.Time                                  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a transcript in the pending state
func NewTranscript(meetingID, title, content string) *Transcript {
	return &Transcript{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Title:       title,
		Content:     content,
		Status:      ProcessingStatusPending,
		CreatedDate: time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

// MarkAsProcessing flags the transcript as picked up by the orchestrator
func (t *Transcript) MarkAsProcessing() {
	t.Status = ProcessingStatusProcessing
	t.UpdatedAt = time.Now().UTC()
}

// MarkAsCompleted attaches the enrichment result and flags terminal success.
// ProcessedDate is set here and nowhere else.
func (t *Transcript) MarkAsCompleted(insights *AiInsights) {
	now := time.Now().UTC()
	t.AiInsights = insights
	t.ProcessedDate = &now
	t.Status = ProcessingStatusCompleted
	t.UpdatedAt = now
}

// MarkAsFailed flags terminal failure for this attempt. Any previously
// attached insights are left untouched.
func (t *Transcript) MarkAsFailed() {
	t.Status = ProcessingStatusFailed
	t.UpdatedAt = time.Now().UTC()
}
