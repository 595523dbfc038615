package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// MatchingHandler drives one matching session per user and question. Pointer
// coordinates are in the client's layout space.
type MatchingHandler struct {
	BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(matchingService services.MatchingService, logger utils.Logger) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     NewBaseHandler(logger),
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) session(c *gin.Context) (uint, string, bool) {
	userID, ok := h.currentUser(c)
	if !ok {
		return 0, "", false
	}
	questionID, ok := h.parseIDParam(c, "id")
	if !ok {
		return 0, "", false
	}
	return questionID, userID, true
}

// StartSession handles POST /match/questions/:id/session. The body is optional.
func (h *MatchingHandler) StartSession(c *gin.Context) {
	questionID, userID, ok := h.session(c)
	if !ok {
		return
	}
	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	resp, err := h.matchingService.StartSession(c.Request.Context(), questionID, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MatchingHandler) EndSession(c *gin.Context) {
	questionID, userID, ok := h.session(c)
	if !ok {
		return
	}
	h.matchingService.EndSession(questionID, userID)
	c.Status(http.StatusNoContent)
}

func (h *MatchingHandler) SetLayout(c *gin.Context) {
	questionID, userID, ok := h.session(c)
	if !ok {
		return
	}
	var req services.LayoutRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c, func() (any, error) {
		return h.matchingService.SetLayout(c.Request.Context(), questionID, userID, &req)
	})
}

func (h *MatchingHandler) PointerDown(c *gin.Context) {
	h.pointer(c, h.matchingService.PointerDown)
}

func (h *MatchingHandler) PointerMove(c *gin.Context) {
	h.pointer(c, h.matchingService.PointerMove)
}

func (h *MatchingHandler) PointerUp(c *gin.Context) {
	h.pointer(c, h.matchingService.PointerUp)
}

type pointerFunc func(ctx context.Context, questionID uint, userID string, req *services.PointerRequest) (*services.MatchSessionResponse, error)

func (h *MatchingHandler) pointer(c *gin.Context, fn pointerFunc) {
	questionID, userID, ok := h.session(c)
	if !ok {
		return
	}
	var req services.PointerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.respond(c, func() (any, error) {
		return fn(c.Request.Context(), questionID, userID, &req)
	})
}

func (h *MatchingHandler) PointerCancel(c *gin.Context) {
	questionID, userID, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, func() (any, error) {
		return h.matchingService.PointerCancel(c.Request.Context(), questionID, userID)
	})
}

func (h *MatchingHandler) Lines(c *gin.Context) {
	questionID, userID, ok := h.session(c)
	if !ok {
		return
	}
	lines, err := h.matchingService.Lines(c.Request.Context(), questionID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}

func (h *MatchingHandler) Clear(c *gin.Context) {
	questionID, userID, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, func() (any, error) {
		return h.matchingService.Clear(c.Request.Context(), questionID, userID)
	})
}

// Check grades the current connections. An empty session yields 422 with
// code "no_connections" so the client can prompt the user.
func (h *MatchingHandler) Check(c *gin.Context) {
	questionID, userID, ok := h.session(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Checking matches", "question_id", questionID)
	h.respond(c, func() (any, error) {
		return h.matchingService.Check(c.Request.Context(), questionID, userID)
	})
}

func (h *MatchingHandler) respond(c *gin.Context, fn func() (any, error)) {
	resp, err := fn()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
