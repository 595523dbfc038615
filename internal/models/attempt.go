package models

import (
	"time"

	"gorm.io/datatypes"
)

// MatchAttempt is the persisted outcome of checking a matching question.
type MatchAttempt struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	QuestionID   uint           `json:"question_id" gorm:"not null;index"`
	AssessmentID *uint          `json:"assessment_id" gorm:"index"`
	UserID       string         `json:"user_id" gorm:"not null;size:255;index"`
	Connections  datatypes.JSON `json:"connections" gorm:"type:jsonb"` // []matching.Connection
	Results      datatypes.JSON `json:"results" gorm:"type:jsonb"`     // map[source]bool
	Correct      int            `json:"correct"`
	Total        int            `json:"total"`
	Passed       bool           `json:"passed"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (MatchAttempt) TableName() string {
	return "match_attempts"
}
