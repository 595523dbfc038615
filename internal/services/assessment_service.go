package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/learning-content-service/internal/events"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/progress"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/SAP-F-2025/learning-content-service/internal/validator"
	"gorm.io/gorm"
)

type assessmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	progress  progress.Source
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
}

func NewAssessmentService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	source progress.Source,
	validator *validator.Validator,
	logger *slog.Logger,
) AssessmentService {
	return &assessmentService{
		repo:      repo,
		publisher: publisher,
		progress:  source,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, LogConfig{Service: "assessment", Component: "generator"}),
	}
}

// Generate creates a draft assessment for a ready material, drives the
// progress source while questions are produced and stores them in order.
func (s *assessmentService) Generate(ctx context.Context, req *GenerateAssessmentRequest, creatorID string) (result *models.Assessment, err error) {
	op := s.opLogger.WithOperation(ctx, "generate_assessment", creatorID)
	var assessmentID uint
	defer func() { op.LogResult(assessmentID, "assessment", err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	material, err := s.repo.Material().GetByID(ctx, nil, req.MaterialID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	if material.Status != models.MaterialReady {
		return nil, ErrMaterialNotReady
	}

	questions, err := mockQuestions(material, req.QuestionTypes, creatorID)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		if err = s.validator.Question().ValidateQuestion(q); err != nil {
			return nil, fmt.Errorf("%w: generated %s question: %v", ErrQuestionInvalidContent, q.Type, err)
		}
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Quiz: %s", material.Title)
	}
	materialID := material.ID
	assessment := &models.Assessment{
		Title:      title,
		Status:     models.StatusDraft,
		MaterialID: &materialID,
		CreatedBy:  creatorID,
	}
	if err = s.repo.Assessment().Create(ctx, nil, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	assessmentID = assessment.ID

	err = s.progress.Run(ctx, func(t progress.Tick) {
		publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.EventGenerationProgress, events.ProgressEvent{
			ResourceID: assessment.ID,
			UserID:     creatorID,
			Percent:    t.Percent,
			Done:       t.Done,
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("generation interrupted: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Question().CreateBatch(ctx, tx, questions); err != nil {
			return err
		}
		ids := make([]uint, len(questions))
		for i, q := range questions {
			ids[i] = q.ID
		}
		if err := s.repo.Assessment().AddQuestions(ctx, tx, assessment.ID, ids); err != nil {
			return err
		}
		return s.repo.Assessment().UpdateStatus(ctx, tx, assessment.ID, models.StatusGenerated)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store generated questions: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.EventAssessmentGenerated, events.AssessmentGeneratedEvent{
		AssessmentID:   assessment.ID,
		MaterialID:     material.ID,
		QuestionsCount: len(questions),
		CreatorID:      creatorID,
	}))

	s.logger.Info("Assessment generated", "assessment_id", assessment.ID, "material_id", material.ID, "questions", len(questions))
	return s.GetByID(ctx, assessment.ID, creatorID)
}

func (s *assessmentService) GetByID(ctx context.Context, id uint, userID string) (*models.Assessment, error) {
	assessment, err := s.repo.Assessment().GetByIDWithDetails(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.CreatedBy != userID {
		return nil, NewPermissionError(userID, id, "assessment", "read", "not owner")
	}
	return assessment, nil
}
