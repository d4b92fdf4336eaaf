package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/faithconnect/backend/internal/application/identity"
	"github.com/faithconnect/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles login, token and password endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/password-reset", h.RequestPasswordReset)
}

// RegisterSessionRoutes registers the auth routes that need a session
func (h *AuthHandler) RegisterSessionRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/logout", h.Logout)
	auth.POST("/change-password", h.ChangePassword)
}

// Login authenticates an account and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loginResponseFromResult(result))
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), appidentity.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tokenResponseFromRefresh(result))
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	session := getSession(c)
	claims := middleware.ClaimsFromContext(c)
	if session == nil || claims == nil {
		h.Unauthorized(c, "Not signed in")
		return
	}

	err := h.authService.Logout(c.Request.Context(), appidentity.LogoutInput{
		UserID:   session.UserID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ChangePassword updates the caller's password and revokes their other
// sessions
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session := getSession(c)
	if session == nil {
		h.Unauthorized(c, "Not signed in")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), appidentity.ChangePasswordInput{
		UserID:      session.UserID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RequestPasswordReset accepts a reset request. The response is the same
// whether or not the email exists.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.authService.RequestPasswordReset(c.Request.Context(), req.Email)

	h.Success(c, gin.H{"message": "If the account exists, reset instructions have been sent"})
}
