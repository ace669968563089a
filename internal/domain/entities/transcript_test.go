package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscriptDefaults(t *testing.T) {
	transcript := NewTranscript("meet-1", "Weekly sync", "we talked about roadmap")

	assert.NotEqual(t, uuid.Nil, transcript.ID)
	assert.Equal(t, "meet-1", transcript.MeetingID)
	assert.Equal(t, "Weekly sync", transcript.Title)
	assert.Equal(t, ProcessingStatusPending, transcript.Status)
	assert.False(t, transcript.CreatedDate.IsZero())
	assert.Nil(t, transcript.ProcessedDate)
	assert.Nil(t, transcript.AiInsights)
}

func TestNewActionItemDefaults(t *testing.T) {
	item := NewActionItem("Follow up with vendor")

	assert.Equal(t, "Follow up with vendor", item.Description)
	assert.Equal(t, ActionItemPriorityMedium, item.Priority)
	assert.Equal(t, ActionItemStatusOpen, item.Status)
	assert.Nil(t, item.DueDate)
}

func TestMarkAsProcessing(t *testing.T) {
	transcript := NewTranscript("meet-1", "Sync", "content")
	transcript.MarkAsProcessing()

	assert.Equal(t, ProcessingStatusProcessing, transcript.Status)
	assert.Nil(t, transcript.ProcessedDate)
}

func TestMarkAsCompletedSetsProcessedDate(t *testing.T) {
	transcript := NewTranscript("meet-1", "Sync", "content")
	insights := &AiInsights{Summary: "Brief summary"}

	transcript.MarkAsCompleted(insights)

	assert.Equal(t, ProcessingStatusCompleted, transcript.Status)
	require.NotNil(t, transcript.ProcessedDate)
	assert.Equal(t, insights, transcript.AiInsights)
}

func TestMarkAsCompletedReplacesInsights(t *testing.T) {
	transcript := NewTranscript("meet-1", "Sync", "content")
	transcript.MarkAsCompleted(&AiInsights{Summary: "first run"})
	firstProcessed := *transcript.ProcessedDate

	transcript.MarkAsCompleted(&AiInsights{Summary: "second run"})

	assert.Equal(t, "second run", transcript.AiInsights.Summary)
	assert.False(t, transcript.ProcessedDate.Before(firstProcessed))
}

func TestMarkAsFailedKeepsInsights(t *testing.T) {
	transcript := NewTranscript("meet-1", "Sync", "content")
	transcript.MarkAsCompleted(&AiInsights{Summary: "previous success"})

	transcript.MarkAsFailed()

	assert.Equal(t, ProcessingStatusFailed, transcript.Status)
	require.NotNil(t, transcript.AiInsights)
	assert.Equal(t, "previous success", transcript.AiInsights.Summary)
}
