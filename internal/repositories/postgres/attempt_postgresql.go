package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"gorm.io/gorm"
)

type MatchAttemptPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewMatchAttemptPostgreSQL(db *gorm.DB) repositories.MatchAttemptRepository {
	return &MatchAttemptPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (a MatchAttemptPostgreSQL) Create(ctx context.Context, tx *gorm.DB, attempt *models.MatchAttempt) error {
	if err := a.helpers.getDB(tx).WithContext(ctx).Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to create match attempt: %w", err)
	}
	return nil
}

func (a MatchAttemptPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AttemptFilters) ([]*models.MatchAttempt, int64, error) {
	var attempts []*models.MatchAttempt
	var total int64

	query := a.helpers.getDB(tx).WithContext(ctx).Model(&models.MatchAttempt{})
	if filters.QuestionID != nil {
		query = query.Where("question_id = ?", *filters.QuestionID)
	}
	if filters.AssessmentID != nil {
		query = query.Where("assessment_id = ?", *filters.AssessmentID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count match attempts: %w", err)
	}

	query = a.helpers.ApplyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset, "created_at")
	if err := query.Find(&attempts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list match attempts: %w", err)
	}
	return attempts, total, nil
}

func (a MatchAttemptPostgreSQL) LatestForUser(ctx context.Context, tx *gorm.DB, questionID uint, userID string) (*models.MatchAttempt, error) {
	var attempt models.MatchAttempt
	err := a.helpers.getDB(tx).WithContext(ctx).
		Where("question_id = ? AND user_id = ?", questionID, userID).
		Order("created_at DESC").
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no attempt for question %d: %w", questionID, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest attempt: %w", err)
	}
	return &attempt, nil
}

func (a MatchAttemptPostgreSQL) GetStats(ctx context.Context, tx *gorm.DB, questionID uint) (*repositories.MatchStats, error) {
	var row struct {
		Attempts     int
		PassRate     float64
		AverageScore float64
	}
	err := a.helpers.getDB(tx).WithContext(ctx).
		Model(&models.MatchAttempt{}).
		Select(`COUNT(*) AS attempts,
			COALESCE(AVG(CASE WHEN passed THEN 1.0 ELSE 0.0 END), 0) AS pass_rate,
			COALESCE(AVG(CASE WHEN total > 0 THEN correct::float / total ELSE 0 END), 0) AS average_score`).
		Where("question_id = ?", questionID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}
	return &repositories.MatchStats{
		Attempts:     row.Attempts,
		PassRate:     row.PassRate,
		AverageScore: row.AverageScore,
	}, nil
}
