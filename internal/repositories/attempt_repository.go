package repositories

import (
	"context"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"gorm.io/gorm"
)

// MatchAttemptRepository stores checked matching answers
type MatchAttemptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *models.MatchAttempt) error
	List(ctx context.Context, tx *gorm.DB, filters AttemptFilters) ([]*models.MatchAttempt, int64, error)
	LatestForUser(ctx context.Context, tx *gorm.DB, questionID uint, userID string) (*models.MatchAttempt, error)
	GetStats(ctx context.Context, tx *gorm.DB, questionID uint) (*MatchStats, error)
}
