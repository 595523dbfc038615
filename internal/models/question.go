package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SAP-F-2025/learning-content-service/internal/matching"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FillInBlank    QuestionType = "fill_blank"
	ShortAnswer    QuestionType = "short_answer"
	LongAnswer     QuestionType = "long_answer"
	Matching       QuestionType = "matching"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

type Question struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Type       QuestionType    `json:"type" gorm:"not null;size:30;index"`
	Text       string          `json:"text" gorm:"type:text;not null"`
	Points     int             `json:"points" gorm:"default:1"`
	Difficulty DifficultyLevel `json:"difficulty" gorm:"size:10;default:Medium"`
	Content    datatypes.JSON  `json:"content" gorm:"type:jsonb"`
	MaterialID *uint           `json:"material_id" gorm:"index"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// ===== CONTENT PER QUESTION TYPE =====

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type MultipleChoiceContent struct {
	Options         []Option `json:"options"`
	CorrectAnswers  []string `json:"correct_answers"`
	MultipleCorrect bool     `json:"multiple_correct"`
}

type BlankDefinition struct {
	AcceptedAnswers []string `json:"accepted_answers"`
	CaseSensitive   bool     `json:"case_sensitive"`
	Points          int      `json:"points"`
}

type FillBlankContent struct {
	Template string                     `json:"template"` // "Go was created at {{b1}}"
	Blanks   map[string]BlankDefinition `json:"blanks"`
}

type ShortAnswerContent struct {
	AcceptedAnswers []string `json:"accepted_answers"`
	CaseSensitive   bool     `json:"case_sensitive"`
	MaxLength       int      `json:"max_length"`
}

type LongAnswerContent struct {
	MinWords *int   `json:"min_words"`
	MaxWords *int   `json:"max_words"`
	Rubric   string `json:"rubric"`
}

type MatchItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type MatchPair struct {
	LeftID  string `json:"left_id"`
	RightID string `json:"right_id"`
}

type MatchingContent struct {
	LeftItems       []MatchItem `json:"left_items"`
	RightItems      []MatchItem `json:"right_items"`
	CorrectPairs    []MatchPair `json:"correct_pairs"`
	EnforceOneToOne bool        `json:"enforce_one_to_one"`
}

// ToMatchingQuestion converts stored content into the controller's input.
func (c MatchingContent) ToMatchingQuestion() matching.Question {
	q := matching.Question{
		Sources:      make([]matching.Item, 0, len(c.LeftItems)),
		Destinations: make([]matching.Item, 0, len(c.RightItems)),
		Key:          make(matching.AnswerKey, len(c.CorrectPairs)),
	}
	for _, it := range c.LeftItems {
		q.Sources = append(q.Sources, matching.Item{ID: it.ID, Label: it.Text})
	}
	for _, it := range c.RightItems {
		q.Destinations = append(q.Destinations, matching.Item{ID: it.ID, Label: it.Text})
	}
	for _, p := range c.CorrectPairs {
		q.Key[p.LeftID] = p.RightID
	}
	return q
}

// MatchingContent decodes the question content of a matching question.
func (q *Question) MatchingContent() (*MatchingContent, error) {
	if q.Type != Matching {
		return nil, fmt.Errorf("question %d is %s, not matching", q.ID, q.Type)
	}
	var content MatchingContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid matching content: %w", err)
	}
	return &content, nil
}
