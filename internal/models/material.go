package models

import (
	"time"

	"gorm.io/gorm"
)

type MaterialStatus string

const (
	MaterialUploading MaterialStatus = "uploading"
	MaterialReady     MaterialStatus = "ready"
	MaterialFailed    MaterialStatus = "failed"
)

// Material is a piece of study material in the document library.
type Material struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string        `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	FileName    string         `json:"file_name" gorm:"not null;size:255"`
	ContentType string         `json:"content_type" gorm:"size:100"`
	Size        int64          `json:"size"`
	Body        []byte         `json:"-" gorm:"type:bytea"`
	Status      MaterialStatus `json:"status" gorm:"size:20;default:uploading;index"`
	Tags        []Tag          `json:"tags" gorm:"many2many:material_tags"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Material) TableName() string {
	return "materials"
}

// IsMarkdown reports whether the material body can be rendered as a preview.
func (m *Material) IsMarkdown() bool {
	switch m.ContentType {
	case "text/markdown", "text/x-markdown", "text/plain":
		return true
	}
	return false
}

type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:50"`
}

func (Tag) TableName() string {
	return "tags"
}
