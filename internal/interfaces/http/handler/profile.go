package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/faithconnect/backend/internal/application/identity"
	"github.com/faithconnect/backend/internal/domain/authz"
)

// ProfileHandler handles the signed-in account's own profile and the
// portal navigation endpoint
type ProfileHandler struct {
	BaseHandler
	profileService *appidentity.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *appidentity.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterRoutes registers profile routes on the portal group
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.PUT("/me", h.UpdateContact)
	rg.GET("/navigation", h.Navigation)
}

// Me returns the caller's stored profile
func (h *ProfileHandler) Me(c *gin.Context) {
	session := getSession(c)
	profile, err := h.profileService.GetProfile(c.Request.Context(), session)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, userResponseFromInfo(appidentity.UserInfoFromProfile(profile)))
}

// UpdateContact updates the caller's contact details
func (h *ProfileHandler) UpdateContact(c *gin.Context) {
	session := getSession(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.UpdateContact(c.Request.Context(), appidentity.UpdateContactInput{
		UserID:    session.UserID,
		FullName:  req.FullName,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, userResponseFromInfo(appidentity.UserInfoFromProfile(profile)))
}

// Navigation returns the section a route belongs to and the links the
// caller's role may see there
func (h *ProfileHandler) Navigation(c *gin.Context) {
	session := getSession(c)
	profile := h.profileService.ResolveProfile(c.Request.Context(), session)

	section := authz.NavScope(c.Query("path"))

	role := session.Role
	if profile != nil {
		role = profile.Role
	}

	h.Success(c, gin.H{
		"section": section,
		"links":   authz.LinksFor(section, role),
	})
}
