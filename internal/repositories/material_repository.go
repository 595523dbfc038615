package repositories

import (
	"context"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"gorm.io/gorm"
)

// MaterialRepository interface for the document library
type MaterialRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, material *models.Material) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Material, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.MaterialStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error // Soft delete

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters MaterialFilters) ([]*models.Material, int64, error)

	// Tagging
	ReplaceTags(ctx context.Context, tx *gorm.DB, id uint, tags []string) ([]models.Tag, error)
	ListTags(ctx context.Context, tx *gorm.DB) ([]models.Tag, error)

	// Permission checks
	IsOwner(ctx context.Context, tx *gorm.DB, id uint, userID string) (bool, error)
}
