package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/learning-content-service/internal/cache"
	"github.com/SAP-F-2025/learning-content-service/internal/events"
	"github.com/SAP-F-2025/learning-content-service/internal/progress"
	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/SAP-F-2025/learning-content-service/internal/validator"
)

// Dependencies are the collaborators shared by every service.
type Dependencies struct {
	Repo             repositories.Repository
	Cache            cache.CacheService
	Publisher        events.EventPublisher
	IdentityProvider IdentityProvider
	Validator        *validator.Validator
	Logger           *slog.Logger

	UploadProgress     progress.Source
	GenerationProgress progress.Source
	MaxUploadBytes     int64
	TokenTTL           time.Duration
	SessionIdleTTL     time.Duration
}

// ServiceManager wires all services from one set of dependencies.
type ServiceManager struct {
	Material   MaterialService
	Question   QuestionService
	Assessment AssessmentService
	Matching   MatchingService
	Export     ExportService
	Auth       AuthService
}

func NewServiceManager(deps Dependencies) *ServiceManager {
	return &ServiceManager{
		Material:   NewMaterialService(deps.Repo, deps.Publisher, deps.UploadProgress, deps.Validator, deps.MaxUploadBytes, deps.Logger),
		Question:   NewQuestionService(deps.Repo, deps.Validator, deps.Logger),
		Assessment: NewAssessmentService(deps.Repo, deps.Publisher, deps.GenerationProgress, deps.Validator, deps.Logger),
		Matching:   NewMatchingService(deps.Repo, deps.Publisher, deps.Validator, deps.SessionIdleTTL, deps.Logger),
		Export:     NewExportService(deps.Repo, deps.Logger),
		Auth:       NewAuthService(deps.IdentityProvider, deps.Cache, deps.Validator, deps.TokenTTL, deps.Logger),
	}
}
