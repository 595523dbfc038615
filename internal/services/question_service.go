package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/SAP-F-2025/learning-content-service/internal/validator"
	"gorm.io/datatypes"
)

type questionService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
}

func NewQuestionService(repo repositories.Repository, validator *validator.Validator, logger *slog.Logger) QuestionService {
	return &questionService{
		repo:      repo,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, LogConfig{Service: "question", Component: "authoring"}),
	}
}

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest, creatorID string) (question *models.Question, err error) {
	op := s.opLogger.WithOperation(ctx, "create_question", creatorID)
	defer func() {
		var id uint
		if question != nil {
			id = question.ID
		}
		op.LogResult(id, "question", err)
	}()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err = s.validator.Question().ValidateContent(req.Type, []byte(req.Content)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionInvalidContent, err)
	}

	if req.MaterialID != nil {
		if _, err = s.repo.Material().GetByID(ctx, nil, *req.MaterialID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrMaterialNotFound
			}
			return nil, fmt.Errorf("failed to get material: %w", err)
		}
	}

	question = &models.Question{
		Type:       req.Type,
		Text:       req.Text,
		Points:     req.Points,
		Difficulty: req.Difficulty,
		Content:    datatypes.JSON(req.Content),
		MaterialID: req.MaterialID,
		CreatedBy:  creatorID,
	}
	if question.Points == 0 {
		question.Points = 1
	}
	if question.Difficulty == "" {
		question.Difficulty = models.DifficultyMedium
	}

	if err = s.repo.Question().Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}
