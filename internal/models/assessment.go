package models

import (
	"time"

	"gorm.io/gorm"
)

type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "Draft"
	StatusGenerated AssessmentStatus = "Generated"
	StatusActive    AssessmentStatus = "Active"
	StatusArchived  AssessmentStatus = "Archived"
)

type Assessment struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title" gorm:"not null;size:200;index"`
	Description *string          `json:"description" gorm:"type:text"`
	Status      AssessmentStatus `json:"status" gorm:"default:Draft;index"`
	MaterialID  *uint            `json:"material_id" gorm:"index"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Questions []AssessmentQuestion `json:"questions" gorm:"foreignKey:AssessmentID"`

	// Computed fields (not stored)
	QuestionsCount int `json:"questions_count" gorm:"-"`
	TotalPoints    int `json:"total_points" gorm:"-"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type AssessmentQuestion struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	AssessmentID uint `json:"assessment_id" gorm:"not null;index"`
	QuestionID   uint `json:"question_id" gorm:"not null;index"`
	Order        int  `json:"order" gorm:"not null"`

	Question Question `json:"question" gorm:"foreignKey:QuestionID"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}
