package repositories

import (
	"context"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"gorm.io/gorm"
)

// QuestionRepository interface for question-specific operations
type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *models.Question) error
	CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error)
	List(ctx context.Context, tx *gorm.DB, filters QuestionFilters) ([]*models.Question, int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}
