package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Create creates a new assessment in draft status
func (a *AssessmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	if assessment.Status == "" {
		assessment.Status = models.StatusDraft
	}
	if err := a.helpers.getDB(tx).WithContext(ctx).Omit("Questions").Create(assessment).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// GetByID retrieves an assessment by ID
func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := a.helpers.getDB(tx).WithContext(ctx).First(&assessment, id).Error; err != nil {
		return nil, notFound(err, "assessment", id)
	}
	return &assessment, nil
}

// GetByIDWithDetails retrieves an assessment with its questions in order
func (a *AssessmentPostgreSQL) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := a.helpers.getDB(tx).WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order(`assessment_questions."order" ASC`)
		}).
		Preload("Questions.Question").
		First(&assessment, id).Error; err != nil {
		return nil, notFound(err, "assessment", id)
	}

	a.calculateComputedFields(&assessment)
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AssessmentStatus) error {
	result := a.helpers.getDB(tx).WithContext(ctx).
		Model(&models.Assessment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update assessment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("assessment not found with ID %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// AddQuestions appends questions after the current last position
func (a *AssessmentPostgreSQL) AddQuestions(ctx context.Context, tx *gorm.DB, assessmentID uint, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	db := a.helpers.getDB(tx).WithContext(ctx)

	var maxOrder int
	if err := db.Model(&models.AssessmentQuestion{}).
		Where("assessment_id = ?", assessmentID).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&maxOrder).Error; err != nil {
		return fmt.Errorf("failed to read question order: %w", err)
	}

	links := make([]models.AssessmentQuestion, len(questionIDs))
	for i, qid := range questionIDs {
		links[i] = models.AssessmentQuestion{
			AssessmentID: assessmentID,
			QuestionID:   qid,
			Order:        maxOrder + i + 1,
		}
	}
	if err := db.Omit("Question").Create(&links).Error; err != nil {
		return fmt.Errorf("failed to add questions to assessment: %w", err)
	}
	return nil
}

func (a *AssessmentPostgreSQL) IsOwner(ctx context.Context, tx *gorm.DB, id uint, userID string) (bool, error) {
	var count int64
	err := a.helpers.getDB(tx).WithContext(ctx).
		Model(&models.Assessment{}).
		Where("id = ? AND created_by = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

// calculateComputedFields calculates computed fields for an assessment
func (a *AssessmentPostgreSQL) calculateComputedFields(assessment *models.Assessment) {
	assessment.QuestionsCount = len(assessment.Questions)

	totalPoints := 0
	for _, aq := range assessment.Questions {
		totalPoints += aq.Question.Points
	}
	assessment.TotalPoints = totalPoints
}
