package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey     = "user_id"
	userNameKey   = "user_name"
	sessionKey    = "session_id"
	requestIDKey  = "request_id"
	requestHeader = "X-Request-ID"
)

// RequestIDMiddleware makes sure every request carries an id, echoed in the
// response and attached to the request context for service logs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestHeader, id)
		c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// AuthMiddleware resolves "Authorization: Bearer <session>" to the caller and
// stores its id under "user_id".
func AuthMiddleware(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		principal, err := auth.Authenticate(c.Request.Context(), sessionID)
		if err != nil {
			status := http.StatusUnauthorized
			message := "Invalid or expired session"
			if !services.IsUnauthorized(err) {
				status = http.StatusInternalServerError
				message = "Authentication unavailable"
			}
			c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
			return
		}

		c.Set(sessionKey, sessionID)
		c.Set(userIDKey, principal.ID)
		c.Set(userNameKey, principal.Name)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
