package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is wrapped by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// Repository aggregates every repository behind one handle.
type Repository interface {
	Material() MaterialRepository
	Question() QuestionRepository
	Assessment() AssessmentRepository
	MatchAttempt() MatchAttemptRepository

	// WithTransaction runs fn inside a database transaction. Pass tx to the
	// repository methods that should join it.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Ping(ctx context.Context) error
}

// ===== SHARED FILTER STRUCTS =====

type MaterialFilters struct {
	Tags      []string               `json:"tags"`
	Query     string                 `json:"query"`
	Status    *models.MaterialStatus `json:"status"`
	CreatedBy *string                `json:"created_by"`
	Limit     int                    `json:"limit"`
	Offset    int                    `json:"offset"`
	SortBy    string                 `json:"sort_by"`    // "created_at", "title", "size"
	SortOrder string                 `json:"sort_order"` // "asc", "desc"
}

type QuestionFilters struct {
	Type       *models.QuestionType `json:"type"`
	MaterialID *uint                `json:"material_id"`
	CreatedBy  *string              `json:"created_by"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

type AttemptFilters struct {
	QuestionID   *uint   `json:"question_id"`
	AssessmentID *uint   `json:"assessment_id"`
	UserID       *string `json:"user_id"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type MatchStats struct {
	Attempts     int     `json:"attempts"`
	PassRate     float64 `json:"pass_rate"`
	AverageScore float64 `json:"average_score"` // mean of correct/total
}
