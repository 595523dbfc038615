package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
	}
}

// CreateQuestion handles POST /questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req services.CreateQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Creating question", "type", req.Type)

	question, err := h.questionService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// GetQuestion handles GET /questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}
