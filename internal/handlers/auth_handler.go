package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Login exchanges an identity provider authorization code for a session id.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.LogRequest(c, "User logged in", "login_user", resp.User.ID)
	c.JSON(http.StatusOK, resp)
}

// Logout drops the session presented in the Authorization header.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}
	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}

// Me returns the caller resolved by AuthMiddleware.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.Principal{ID: userID, Name: c.GetString(userNameKey)})
}
