package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"gorm.io/gorm"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// SharedHelpers holds query helpers shared by the PostgreSQL repositories.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// getDB returns tx when the caller runs inside a transaction.
func (h *SharedHelpers) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return h.db
}

// ApplyPaginationAndSort applies pagination and a whitelisted sort column.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int, allowed ...string) *gorm.DB {
	column := "created_at"
	for _, a := range allowed {
		if a == sortBy {
			column = sortBy
			break
		}
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", column, direction))

	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}

// notFound converts gorm.ErrRecordNotFound into repositories.ErrNotFound.
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s not found with ID %d: %w", entity, id, repositories.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}
