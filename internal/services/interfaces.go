package services

import (
	"context"

	"github.com/SAP-F-2025/learning-content-service/internal/matching"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
)

// MaterialService manages the study material library.
type MaterialService interface {
	Upload(ctx context.Context, req *UploadMaterialRequest, creatorID string) (*MaterialResponse, error)
	GetByID(ctx context.Context, id uint) (*MaterialResponse, error)
	List(ctx context.Context, filters repositories.MaterialFilters) (*MaterialListResponse, error)
	Preview(ctx context.Context, id uint) (*MaterialPreview, error)
	UpdateTags(ctx context.Context, id uint, req *UpdateTagsRequest, userID string) (*MaterialResponse, error)
	Delete(ctx context.Context, id uint, userID string) error
	ListTags(ctx context.Context) ([]models.Tag, error)
}

// QuestionService creates and reads questions of every type.
type QuestionService interface {
	Create(ctx context.Context, req *CreateQuestionRequest, creatorID string) (*models.Question, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
}

// AssessmentService generates assessments from study material.
type AssessmentService interface {
	Generate(ctx context.Context, req *GenerateAssessmentRequest, creatorID string) (*models.Assessment, error)
	GetByID(ctx context.Context, id uint, userID string) (*models.Assessment, error)
}

// MatchingService hosts one matching controller per user and question.
type MatchingService interface {
	StartSession(ctx context.Context, questionID uint, userID string, req *StartSessionRequest) (*MatchSessionResponse, error)
	SetLayout(ctx context.Context, questionID uint, userID string, req *LayoutRequest) (*MatchSessionResponse, error)
	PointerDown(ctx context.Context, questionID uint, userID string, req *PointerRequest) (*MatchSessionResponse, error)
	PointerMove(ctx context.Context, questionID uint, userID string, req *PointerRequest) (*MatchSessionResponse, error)
	PointerUp(ctx context.Context, questionID uint, userID string, req *PointerRequest) (*MatchSessionResponse, error)
	PointerCancel(ctx context.Context, questionID uint, userID string) (*MatchSessionResponse, error)
	Lines(ctx context.Context, questionID uint, userID string) ([]matching.Segment, error)
	Clear(ctx context.Context, questionID uint, userID string) (*MatchSessionResponse, error)
	Check(ctx context.Context, questionID uint, userID string) (*MatchCheckResponse, error)
	EndSession(questionID uint, userID string)
}

// ExportService renders results as spreadsheets.
type ExportService interface {
	AssessmentResults(ctx context.Context, assessmentID uint, userID string) ([]byte, error)
}

// AuthService exchanges identity provider codes for sessions.
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Authenticate(ctx context.Context, sessionID string) (*Principal, error)
	Logout(ctx context.Context, sessionID string) error
}
