package handlers

import (
	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const serviceName = "learning-content-service"

type HandlerManager struct {
	authService       services.AuthService
	authHandler       *AuthHandler
	materialHandler   *MaterialHandler
	questionHandler   *QuestionHandler
	assessmentHandler *AssessmentHandler
	matchingHandler   *MatchingHandler
	healthHandler     *HealthHandler
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	checks map[string]HealthCheck,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authService:       serviceManager.Auth,
		authHandler:       NewAuthHandler(serviceManager.Auth, logger),
		materialHandler:   NewMaterialHandler(serviceManager.Material, logger),
		questionHandler:   NewQuestionHandler(serviceManager.Question, logger),
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment, serviceManager.Export, logger),
		matchingHandler:   NewMatchingHandler(serviceManager.Matching, logger),
		healthHandler:     NewHealthHandler(serviceName, checks),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Health)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/logout", hm.authHandler.Logout)
	}

	authenticated := v1.Group("", AuthMiddleware(hm.authService))
	{
		authenticated.GET("/auth/me", hm.authHandler.Me)

		// Material library
		materials := authenticated.Group("/materials")
		{
			materials.POST("", hm.materialHandler.UploadMaterial)
			materials.GET("", hm.materialHandler.ListMaterials)
			materials.GET("/tags", hm.materialHandler.ListTags)
			materials.GET("/:id", hm.materialHandler.GetMaterial)
			materials.GET("/:id/preview", hm.materialHandler.PreviewMaterial)
			materials.PUT("/:id/tags", hm.materialHandler.UpdateTags)
			materials.DELETE("/:id", hm.materialHandler.DeleteMaterial)
		}

		assessments := authenticated.Group("/assessments")
		{
			assessments.POST("/generate", hm.assessmentHandler.GenerateAssessment)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.GET("/:id/results.xlsx", hm.assessmentHandler.ExportResults)
		}

		questions := authenticated.Group("/questions")
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
		}

		// Match play
		match := authenticated.Group("/match/questions/:id")
		{
			match.POST("/session", hm.matchingHandler.StartSession)
			match.DELETE("/session", hm.matchingHandler.EndSession)
			match.PUT("/layout", hm.matchingHandler.SetLayout)
			match.POST("/pointer/down", hm.matchingHandler.PointerDown)
			match.POST("/pointer/move", hm.matchingHandler.PointerMove)
			match.POST("/pointer/up", hm.matchingHandler.PointerUp)
			match.POST("/pointer/cancel", hm.matchingHandler.PointerCancel)
			match.GET("/lines", hm.matchingHandler.Lines)
			match.POST("/clear", hm.matchingHandler.Clear)
			match.POST("/check", hm.matchingHandler.Check)
		}
	}
}
