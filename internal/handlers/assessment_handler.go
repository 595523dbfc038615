package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
	exportService     services.ExportService
}

func NewAssessmentHandler(
	assessmentService services.AssessmentService,
	exportService services.ExportService,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
		exportService:     exportService,
	}
}

// GenerateAssessment handles POST /assessments/generate
func (h *AssessmentHandler) GenerateAssessment(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req services.GenerateAssessmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Generating assessment", "material_id", req.MaterialID)

	assessment, err := h.assessmentService.Generate(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assessment)
}

// GetAssessment handles GET /assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	assessment, err := h.assessmentService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// ExportResults handles GET /assessments/:id/results.xlsx
func (h *AssessmentHandler) ExportResults(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.exportService.AssessmentResults(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment-%d-results.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}
