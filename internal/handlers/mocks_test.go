package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/learning-content-service/internal/matching"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/stretchr/testify/mock"
)

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, sessionID string) (*services.Principal, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Principal), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockMaterialService struct{ mock.Mock }

func (m *MockMaterialService) Upload(ctx context.Context, req *services.UploadMaterialRequest, creatorID string) (*services.MaterialResponse, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) GetByID(ctx context.Context, id uint) (*services.MaterialResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) List(ctx context.Context, filters repositories.MaterialFilters) (*services.MaterialListResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MaterialListResponse), args.Error(1)
}

func (m *MockMaterialService) Preview(ctx context.Context, id uint) (*services.MaterialPreview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MaterialPreview), args.Error(1)
}

func (m *MockMaterialService) UpdateTags(ctx context.Context, id uint, req *services.UpdateTagsRequest, userID string) (*services.MaterialResponse, error) {
	args := m.Called(ctx, id, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) Delete(ctx context.Context, id uint, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockMaterialService) ListTags(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

type MockQuestionService struct{ mock.Mock }

func (m *MockQuestionService) Create(ctx context.Context, req *services.CreateQuestionRequest, creatorID string) (*models.Question, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

type MockAssessmentService struct{ mock.Mock }

func (m *MockAssessmentService) Generate(ctx context.Context, req *services.GenerateAssessmentRequest, creatorID string) (*models.Assessment, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentService) GetByID(ctx context.Context, id uint, userID string) (*models.Assessment, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

type MockExportService struct{ mock.Mock }

func (m *MockExportService) AssessmentResults(ctx context.Context, assessmentID uint, userID string) ([]byte, error) {
	args := m.Called(ctx, assessmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockMatchingService struct{ mock.Mock }

func (m *MockMatchingService) session(args mock.Arguments) (*services.MatchSessionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MatchSessionResponse), args.Error(1)
}

func (m *MockMatchingService) StartSession(ctx context.Context, questionID uint, userID string, req *services.StartSessionRequest) (*services.MatchSessionResponse, error) {
	return m.session(m.Called(ctx, questionID, userID, req))
}

func (m *MockMatchingService) SetLayout(ctx context.Context, questionID uint, userID string, req *services.LayoutRequest) (*services.MatchSessionResponse, error) {
	return m.session(m.Called(ctx, questionID, userID, req))
}

func (m *MockMatchingService) PointerDown(ctx context.Context, questionID uint, userID string, req *services.PointerRequest) (*services.MatchSessionResponse, error) {
	return m.session(m.Called(ctx, questionID, userID, req))
}

func (m *MockMatchingService) PointerMove(ctx context.Context, questionID uint, userID string, req *services.PointerRequest) (*services.MatchSessionResponse, error) {
	return m.session(m.Called(ctx, questionID, userID, req))
}

func (m *MockMatchingService) PointerUp(ctx context.Context, questionID uint, userID string, req *services.PointerRequest) (*services.MatchSessionResponse, error) {
	return m.session(m.Called(ctx, questionID, userID, req))
}

func (m *MockMatchingService) PointerCancel(ctx context.Context, questionID uint, userID string) (*services.MatchSessionResponse, error) {
	return m.session(m.Called(ctx, questionID, userID))
}

func (m *MockMatchingService) Lines(ctx context.Context, questionID uint, userID string) ([]matching.Segment, error) {
	args := m.Called(ctx, questionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matching.Segment), args.Error(1)
}

func (m *MockMatchingService) Clear(ctx context.Context, questionID uint, userID string) (*services.MatchSessionResponse, error) {
	return m.session(m.Called(ctx, questionID, userID))
}

func (m *MockMatchingService) Check(ctx context.Context, questionID uint, userID string) (*services.MatchCheckResponse, error) {
	args := m.Called(ctx, questionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MatchCheckResponse), args.Error(1)
}

func (m *MockMatchingService) EndSession(questionID uint, userID string) {
	m.Called(questionID, userID)
}
