package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/learning-content-service/internal/cache"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db           *gorm.DB
	material     repositories.MaterialRepository
	question     repositories.QuestionRepository
	assessment   repositories.AssessmentRepository
	matchAttempt repositories.MatchAttemptRepository
}

func NewRepository(db *gorm.DB, cacheService cache.CacheService, logger *slog.Logger) repositories.Repository {
	return &Repository{
		db:           db,
		material:     NewMaterialPostgreSQL(db),
		question:     NewQuestionPostgreSQL(db, cacheService, logger),
		assessment:   NewAssessmentPostgreSQL(db),
		matchAttempt: NewMatchAttemptPostgreSQL(db),
	}
}

func (r *Repository) Material() repositories.MaterialRepository         { return r.material }
func (r *Repository) Question() repositories.QuestionRepository         { return r.question }
func (r *Repository) Assessment() repositories.AssessmentRepository     { return r.assessment }
func (r *Repository) MatchAttempt() repositories.MatchAttemptRepository { return r.matchAttempt }

func (r *Repository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
