package services

import (
	"encoding/json"
	"time"

	"github.com/SAP-F-2025/learning-content-service/internal/matching"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
)

// ===== MATERIAL =====

type UploadMaterialRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	FileName    string   `json:"file_name" validate:"required,max=255"`
	ContentType string   `json:"content_type" validate:"required,content_type"`
	Tags        []string `json:"tags" validate:"max=20,dive,tag_name"`
	Body        []byte   `json:"-" validate:"min=1"`
}

type UpdateTagsRequest struct {
	Tags []string `json:"tags" validate:"max=20,dive,tag_name"`
}

type MaterialResponse struct {
	*models.Material
	PreviewAvailable bool `json:"preview_available"`
}

type MaterialListResponse struct {
	Materials []*models.Material `json:"materials"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

type MaterialPreview struct {
	MaterialID uint   `json:"material_id"`
	Title      string `json:"title"`
	HTML       string `json:"html"`
}

// ===== QUESTION =====

type CreateQuestionRequest struct {
	Type       models.QuestionType    `json:"type" validate:"required,question_type"`
	Text       string                 `json:"text" validate:"required,min=1,max=2000"`
	Points     int                    `json:"points" validate:"omitempty,min=1,max=100"`
	Difficulty models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
	Content    json.RawMessage        `json:"content" validate:"required"`
	MaterialID *uint                  `json:"material_id"`
}

// ===== ASSESSMENT =====

type GenerateAssessmentRequest struct {
	MaterialID    uint                  `json:"material_id" validate:"required"`
	Title         string                `json:"title" validate:"omitempty,max=200"`
	QuestionTypes []models.QuestionType `json:"question_types" validate:"omitempty,dive,question_type"`
}

// ===== MATCHING =====

type StartSessionRequest struct {
	AssessmentID *uint `json:"assessment_id"`
	// Resume replays the user's latest checked attempt into the new session.
	Resume bool `json:"resume"`
}

type ItemBounds struct {
	ID     string  `json:"id" validate:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

type LayoutRequest struct {
	Items []ItemBounds `json:"items" validate:"required,min=1,dive"`
}

type PointerRequest struct {
	ItemID string  `json:"item_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type MatchSessionResponse struct {
	QuestionID                   uint                  `json:"question_id"`
	State                        matching.GestureState `json:"state"`
	Sources                      []matching.Item       `json:"sources"`
	Destinations                 []matching.Item       `json:"destinations"`
	Connections                  []matching.Connection `json:"connections"`
	Drag                         *matching.DragSession `json:"drag,omitempty"`
	Lines                        []matching.Segment    `json:"lines"`
	LayoutReady                  bool                  `json:"layout_ready"`
	EnforceDestinationUniqueness bool                  `json:"enforce_destination_uniqueness"`
	// Changed reports whether the last operation altered the session.
	Changed bool `json:"changed"`
}

type MatchCheckResponse struct {
	AttemptID uint           `json:"attempt_id"`
	Score     matching.Score `json:"score"`
	Message   string         `json:"message"`
}

// ===== AUTH =====

type LoginRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

type LoginResponse struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Principal `json:"user"`
}

// Principal is the authenticated caller.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
