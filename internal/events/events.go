package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of domain events the service emits
type EventType string

const (
	// Material events
	EventMaterialUploadProgress EventType = "material.upload_progress"
	EventMaterialUploaded       EventType = "material.uploaded"
	EventMaterialTagged         EventType = "material.tagged"

	// Assessment events
	EventGenerationProgress  EventType = "assessment.generation_progress"
	EventAssessmentGenerated EventType = "assessment.generated"

	// Matching events
	EventMatchChecked EventType = "match.checked"
)

const (
	eventSource  = "learning-content-service"
	eventVersion = "1.0"
)

// Event is the envelope for all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent wraps data in an envelope with a fresh id and timestamp
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// Payloads

type ProgressEvent struct {
	ResourceID uint    `json:"resource_id"`
	UserID     string  `json:"user_id"`
	Percent    float64 `json:"percent"`
	Done       bool    `json:"done"`
}

type MaterialUploadedEvent struct {
	MaterialID uint     `json:"material_id"`
	Title      string   `json:"title"`
	Size       int64    `json:"size"`
	Tags       []string `json:"tags"`
	CreatorID  string   `json:"creator_id"`
}

type MaterialTaggedEvent struct {
	MaterialID uint     `json:"material_id"`
	Tags       []string `json:"tags"`
}

type AssessmentGeneratedEvent struct {
	AssessmentID   uint   `json:"assessment_id"`
	MaterialID     uint   `json:"material_id"`
	QuestionsCount int    `json:"questions_count"`
	CreatorID      string `json:"creator_id"`
}

type MatchCheckedEvent struct {
	AttemptID  uint   `json:"attempt_id"`
	QuestionID uint   `json:"question_id"`
	UserID     string `json:"user_id"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Passed     bool   `json:"passed"`
}
