package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRepository hands out the mock repositories and runs transactions
// inline with a nil tx.
type MockRepository struct {
	material     *MockMaterialRepository
	question     *MockQuestionRepository
	assessment   *MockAssessmentRepository
	matchAttempt *MockMatchAttemptRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		material:     &MockMaterialRepository{},
		question:     &MockQuestionRepository{},
		assessment:   &MockAssessmentRepository{},
		matchAttempt: &MockMatchAttemptRepository{},
	}
}

func (m *MockRepository) Material() repositories.MaterialRepository         { return m.material }
func (m *MockRepository) Question() repositories.QuestionRepository         { return m.question }
func (m *MockRepository) Assessment() repositories.AssessmentRepository     { return m.assessment }
func (m *MockRepository) MatchAttempt() repositories.MatchAttemptRepository { return m.matchAttempt }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockRepository) Ping(ctx context.Context) error { return nil }

// MockMaterialRepository is a mock implementation of MaterialRepository
type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) Create(ctx context.Context, tx *gorm.DB, material *models.Material) error {
	args := m.Called(ctx, tx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Material, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Material), args.Error(1)
}

func (m *MockMaterialRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.MaterialStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockMaterialRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.MaterialFilters) ([]*models.Material, int64, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.Material), args.Get(1).(int64), args.Error(2)
}

func (m *MockMaterialRepository) ReplaceTags(ctx context.Context, tx *gorm.DB, id uint, tags []string) ([]models.Tag, error) {
	args := m.Called(ctx, tx, id, tags)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockMaterialRepository) ListTags(ctx context.Context, tx *gorm.DB) ([]models.Tag, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockMaterialRepository) IsOwner(ctx context.Context, tx *gorm.DB, id uint, userID string) (bool, error) {
	args := m.Called(ctx, tx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	args := m.Called(ctx, tx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error {
	args := m.Called(ctx, tx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockAssessmentRepository is a mock implementation of AssessmentRepository
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	args := m.Called(ctx, tx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AssessmentStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *MockAssessmentRepository) AddQuestions(ctx context.Context, tx *gorm.DB, assessmentID uint, questionIDs []uint) error {
	args := m.Called(ctx, tx, assessmentID, questionIDs)
	return args.Error(0)
}

func (m *MockAssessmentRepository) IsOwner(ctx context.Context, tx *gorm.DB, id uint, userID string) (bool, error) {
	args := m.Called(ctx, tx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockMatchAttemptRepository is a mock implementation of MatchAttemptRepository
type MockMatchAttemptRepository struct {
	mock.Mock
}

func (m *MockMatchAttemptRepository) Create(ctx context.Context, tx *gorm.DB, attempt *models.MatchAttempt) error {
	args := m.Called(ctx, tx, attempt)
	return args.Error(0)
}

func (m *MockMatchAttemptRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.AttemptFilters) ([]*models.MatchAttempt, int64, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.MatchAttempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockMatchAttemptRepository) LatestForUser(ctx context.Context, tx *gorm.DB, questionID uint, userID string) (*models.MatchAttempt, error) {
	args := m.Called(ctx, tx, questionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchAttempt), args.Error(1)
}

func (m *MockMatchAttemptRepository) GetStats(ctx context.Context, tx *gorm.DB, questionID uint) (*repositories.MatchStats, error) {
	args := m.Called(ctx, tx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.MatchStats), args.Error(1)
}
