package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appnotification "github.com/faithconnect/backend/internal/application/notification"
)

// NotificationHandler handles in-portal notifications and branch
// announcements
type NotificationHandler struct {
	BaseHandler
	notificationService *appnotification.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *appnotification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterPortalRoutes registers the member-facing notification routes
func (h *NotificationHandler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.GET("", h.List)
	notifications.GET("/unread-count", h.UnreadCount)
	notifications.POST("/:id/read", h.MarkRead)
	notifications.POST("/read-all", h.MarkAllRead)
}

// RegisterAdminRoutes registers the announcement route
func (h *NotificationHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/announcements", h.Broadcast)
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	views, err := h.notificationService.List(c.Request.Context(), getSession(c), appnotification.ListInput{
		UnreadOnly: c.Query("unread_only") == "true",
		Limit:      limit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}

// MarkRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), getSession(c), notificationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAllRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), getSession(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Broadcast sends an announcement to every account of a branch
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var input appnotification.BroadcastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.notificationService.Broadcast(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
