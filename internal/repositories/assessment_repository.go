package repositories

import (
	"context"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"gorm.io/gorm"
)

// AssessmentRepository interface for assessment-specific operations
type AssessmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error)
	GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) // Include ordered questions
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AssessmentStatus) error
	AddQuestions(ctx context.Context, tx *gorm.DB, assessmentID uint, questionIDs []uint) error
	IsOwner(ctx context.Context, tx *gorm.DB, id uint, userID string) (bool, error)
}
