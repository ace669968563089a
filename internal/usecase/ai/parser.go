package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/insighthub/meeting-insights/internal/domain/entities"
)

// Parser handles parsing and validation of Groq API responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseInsightsResponse parses the JSON response from Groq into AiInsights
func (p *Parser) ParseInsightsResponse(jsonString string) (*entities.AiInsights, error) {
	// Extract JSON from response (Groq might wrap it in markdown code blocks)
	jsonString = extractJSON(jsonString)

	var insights entities.AiInsights
	if err := json.Unmarshal([]byte(jsonString), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := p.ValidateInsights(&insights); err != nil {
		return nil, err
	}

	return &insights, nil
}

// ValidateInsights validates that all required fields are present and
// normalizes optional collections
func (p *Parser) ValidateInsights(insights *entities.AiInsights) error {
	if insights == nil {
		return fmt.Errorf("insights is nil")
	}

	if insights.Summary == "" {
		return fmt.Errorf("missing summary in response")
	}

	// Themes, key points, etc. can be empty for short meetings
	// Just ensure they're initialized
	if insights.Themes == nil {
		insights.Themes = make([]entities.Theme, 0)
	}
	if insights.KeyPoints == nil {
		insights.KeyPoints = make([]string, 0)
	}
	if insights.ActionItems == nil {
		insights.ActionItems = make([]entities.ActionItem, 0)
	}

	for i := range insights.ActionItems {
		item := &insights.ActionItems[i]
		if item.Priority == "" {
			item.Priority = entities.ActionItemPriorityMedium
		}
		if item.Status == "" {
			item.Status = entities.ActionItemStatusOpen
		}
	}

	if insights.Confidence < 0 {
		insights.Confidence = 0
	}
	if insights.Confidence > 1 {
		insights.Confidence = 1
	}

	return nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
