package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/learning-content-service/internal/errors"
	"github.com/SAP-F-2025/learning-content-service/internal/matching"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Material specific errors
	ErrMaterialNotFound     = errors.New("material not found")
	ErrMaterialAccessDenied = errors.New("access denied to material")
	ErrMaterialNotReady     = errors.New("material upload has not finished")
	ErrMaterialTooLarge     = errors.New("material exceeds the upload size limit")
	ErrPreviewUnsupported   = errors.New("preview is only available for markdown and plain text")

	// Assessment specific errors
	ErrAssessmentNotFound     = errors.New("assessment not found")
	ErrAssessmentAccessDenied = errors.New("access denied to assessment")

	// Question specific errors
	ErrQuestionNotFound       = errors.New("question not found")
	ErrQuestionInvalidType    = errors.New("invalid question type")
	ErrQuestionInvalidContent = errors.New("invalid question content for type")
	ErrQuestionNotMatching    = errors.New("question is not a matching question")

	// Matching session errors
	ErrSessionNotFound = errors.New("no matching session for this question, start one first")
	ErrUnknownItem     = matching.ErrUnknownItem
	ErrNoConnections   = matching.ErrNoConnections

	// Auth errors
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrLoginFailed     = errors.New("login failed")
	ErrAuthUnavailable = errors.New("identity provider is not configured")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMaterialNotFound) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	var pe *PermissionError
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrMaterialAccessDenied) ||
		errors.Is(err, ErrAssessmentAccessDenied) ||
		errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrQuestionInvalidType) ||
		errors.Is(err, ErrQuestionInvalidContent) ||
		errors.Is(err, ErrUnknownItem) ||
		errors.Is(err, matching.ErrInvalidQuestion) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre) ||
		errors.Is(err, ErrNoConnections) ||
		errors.Is(err, ErrMaterialNotReady) ||
		errors.Is(err, ErrQuestionNotMatching) ||
		errors.Is(err, ErrPreviewUnsupported)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
