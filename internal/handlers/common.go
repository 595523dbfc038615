package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

func (h *BaseHandler) requestFields(c *gin.Context, additionalFields []interface{}) []interface{} {
	fields := []interface{}{
		"request_id", c.GetString(requestIDKey),
		"user_id", c.GetString(userIDKey),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	return append(fields, additionalFields...)
}

// LogRequest logs an incoming request with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Info(message, h.requestFields(c, append([]interface{}{"remote_addr", c.ClientIP()}, additionalFields...))...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.logger.LogError(err, message, h.requestFields(c, additionalFields)...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Warn(message, h.requestFields(c, additionalFields)...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.AbortWithStatusJSON(statusCode, errorResp)
}

// currentUser returns the authenticated user id or writes a 401.
func (h *BaseHandler) currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDKey)
	if userID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", nil)
		return "", false
	}
	return userID, true
}

// parseIDParam parses a numeric path parameter or writes a 400.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, nil, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// bindJSON decodes the body or writes a 400.
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.RespondWithError(c, http.StatusForbidden, "Access denied", err, map[string]interface{}{
			"resource": permissionError.Resource,
			"action":   permissionError.Action,
			"reason":   permissionError.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNoConnections):
		h.LogWarn(c, "Check requested without connections")
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: services.ErrNoConnections.Error(),
			Code:    "no_connections",
		})
	case errors.Is(err, services.ErrMaterialTooLarge):
		h.RespondWithError(c, http.StatusRequestEntityTooLarge, err.Error(), err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, err.Error())
	case services.IsBusinessRule(err):
		h.RespondWithError(c, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrLoginFailed), errors.Is(err, services.ErrUnauthorized):
		h.RespondWithError(c, http.StatusUnauthorized, "Authentication failed", err)
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusForbidden, "Access denied", err)
	case errors.Is(err, services.ErrAuthUnavailable):
		h.RespondWithError(c, http.StatusServiceUnavailable, err.Error(), err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, err.Error(), err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
