package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewMaterialPostgreSQL(db *gorm.DB) repositories.MaterialRepository {
	return &MaterialPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// ===== BASIC OPERATIONS =====

func (m *MaterialPostgreSQL) Create(ctx context.Context, tx *gorm.DB, material *models.Material) error {
	if err := m.helpers.getDB(tx).WithContext(ctx).Omit("Tags").Create(material).Error; err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

func (m *MaterialPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Material, error) {
	var material models.Material
	if err := m.helpers.getDB(tx).WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		First(&material, id).Error; err != nil {
		return nil, notFound(err, "material", id)
	}
	return &material, nil
}

func (m *MaterialPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.MaterialStatus) error {
	result := m.helpers.getDB(tx).WithContext(ctx).
		Model(&models.Material{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update material status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("material not found with ID %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (m *MaterialPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := m.helpers.getDB(tx).WithContext(ctx).Delete(&models.Material{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("material not found with ID %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// ===== QUERY OPERATIONS =====

func (m *MaterialPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.MaterialFilters) ([]*models.Material, int64, error) {
	var materials []*models.Material
	var total int64

	query := m.applyFilters(m.helpers.getDB(tx).WithContext(ctx).Model(&models.Material{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count materials: %w", err)
	}

	query = m.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset,
		"created_at", "title", "size")
	if err := query.Preload("Tags").Find(&materials).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, total, nil
}

// applyFilters narrows the query. Multiple tags match materials carrying all of them.
func (m *MaterialPostgreSQL) applyFilters(query *gorm.DB, filters repositories.MaterialFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("materials.status = ?", *filters.Status)
	}
	if filters.CreatedBy != nil {
		query = query.Where("materials.created_by = ?", *filters.CreatedBy)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("materials.title ILIKE ? OR materials.description ILIKE ?", like, like)
	}
	if len(filters.Tags) > 0 {
		sub := m.db.Table("material_tags").
			Select("material_tags.material_id").
			Joins("JOIN tags ON tags.id = material_tags.tag_id").
			Where("tags.name IN ?", filters.Tags).
			Group("material_tags.material_id").
			Having("COUNT(DISTINCT tags.name) = ?", len(filters.Tags))
		query = query.Where("materials.id IN (?)", sub)
	}
	return query
}

// ===== TAGGING =====

// ReplaceTags upserts every tag name and swaps the material's association.
func (m *MaterialPostgreSQL) ReplaceTags(ctx context.Context, tx *gorm.DB, id uint, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	run := func(db *gorm.DB) error {
		material := models.Material{ID: id}
		if err := db.Select("id").First(&material, id).Error; err != nil {
			return notFound(err, "material", id)
		}

		if len(names) > 0 {
			rows := make([]models.Tag, len(names))
			for i, n := range names {
				rows[i] = models.Tag{Name: n}
			}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to upsert tags: %w", err)
			}
			if err := db.Where("name IN ?", names).Order("name").Find(&tags).Error; err != nil {
				return fmt.Errorf("failed to load tags: %w", err)
			}
		}

		if err := db.Model(&material).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to replace material tags: %w", err)
		}
		return nil
	}

	var err error
	if tx != nil {
		err = run(tx.WithContext(ctx))
	} else {
		err = m.db.WithContext(ctx).Transaction(run)
	}
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

func (m *MaterialPostgreSQL) ListTags(ctx context.Context, tx *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	if err := m.helpers.getDB(tx).WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// ===== PERMISSION CHECKS =====

func (m *MaterialPostgreSQL) IsOwner(ctx context.Context, tx *gorm.DB, id uint, userID string) (bool, error) {
	var count int64
	err := m.helpers.getDB(tx).WithContext(ctx).
		Model(&models.Material{}).
		Where("id = ? AND created_by = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}
