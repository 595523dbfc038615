package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/learning-content-service/internal/cache"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"gorm.io/gorm"
)

const questionCacheTTL = 10 * time.Minute

type QuestionPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
	cache   cache.CacheService
	logger  *slog.Logger
}

// NewQuestionPostgreSQL builds the question repository. GetByID reads through
// the cache when one is given.
func NewQuestionPostgreSQL(db *gorm.DB, cacheService cache.CacheService, logger *slog.Logger) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
		cache:   cacheService,
		logger:  logger,
	}
}

func questionKey(id uint) string {
	return fmt.Sprintf("question:%d", id)
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	if err := q.helpers.getDB(tx).WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	if err := q.helpers.getDB(tx).WithContext(ctx).CreateInBatches(questions, 50).Error; err != nil {
		return fmt.Errorf("failed to create questions: %w", err)
	}
	return nil
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	var question models.Question
	if tx == nil && q.cache != nil {
		if err := q.cache.Get(ctx, questionKey(id), &question); err == nil {
			return &question, nil
		}
	}

	if err := q.helpers.getDB(tx).WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, notFound(err, "question", id)
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, questionKey(id), &question, questionCacheTTL); err != nil && q.logger != nil {
			q.logger.Warn("failed to cache question", "question_id", id, "error", err)
		}
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	var questions []*models.Question
	var total int64

	query := q.helpers.getDB(tx).WithContext(ctx).Model(&models.Question{})
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.MaterialID != nil {
		query = query.Where("material_id = ?", *filters.MaterialID)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	query = q.helpers.ApplyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset, "created_at")
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, total, nil
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := q.helpers.getDB(tx).WithContext(ctx).Delete(&models.Question{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question not found with ID %d: %w", id, repositories.ErrNotFound)
	}
	if q.cache != nil {
		_ = q.cache.Delete(ctx, questionKey(id))
	}
	return nil
}
