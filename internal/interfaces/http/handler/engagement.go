package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appengagement "github.com/faithconnect/backend/internal/application/engagement"
	"github.com/faithconnect/backend/internal/domain/engagement"
)

// EngagementHandler handles branch events, registrations and service
// attendance
type EngagementHandler struct {
	BaseHandler
	engagementService *appengagement.Service
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(engagementService *appengagement.Service) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// RegisterPortalRoutes registers the member-facing event routes
func (h *EngagementHandler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	events.GET("", h.ListEvents)
	events.POST("/:id/register", h.Register)
	events.DELETE("/:id/register", h.Unregister)
}

// RegisterAdminRoutes registers event and attendance management routes
func (h *EngagementHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	events.POST("", h.CreateEvent)
	events.PUT("/:id", h.UpdateEvent)
	events.DELETE("/:id", h.DeleteEvent)
	events.GET("/:id/registrations", h.Registrations)

	attendance := rg.Group("/attendance")
	attendance.POST("", h.RecordAttendance)
	attendance.GET("", h.AttendanceHistory)
}

// CreateEvent schedules a branch event
func (h *EngagementHandler) CreateEvent(c *gin.Context) {
	var input appengagement.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.engagementService.CreateEvent(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateEvent applies partial changes to an event
func (h *EngagementHandler) UpdateEvent(c *gin.Context) {
	eventID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var input appengagement.UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.EventID = eventID

	view, err := h.engagementService.UpdateEvent(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// DeleteEvent cancels an event
func (h *EngagementHandler) DeleteEvent(c *gin.Context) {
	eventID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.engagementService.DeleteEvent(c.Request.Context(), getSession(c), eventID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListEvents returns a branch's events, optionally only upcoming ones
func (h *EngagementHandler) ListEvents(c *gin.Context) {
	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}

	views, err := h.engagementService.ListEvents(c.Request.Context(), getSession(c), branchID, c.Query("upcoming") == "true")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Register signs the caller up for an event
func (h *EngagementHandler) Register(c *gin.Context) {
	eventID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.engagementService.Register(c.Request.Context(), getSession(c), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Unregister withdraws the caller's event registration
func (h *EngagementHandler) Unregister(c *gin.Context) {
	eventID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.engagementService.Unregister(c.Request.Context(), getSession(c), eventID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegistrationResponse is one attendee on an event's registration list
type RegistrationResponse struct {
	ProfileID    uuid.UUID `json:"profile_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Registrations returns an event's registration list
func (h *EngagementHandler) Registrations(c *gin.Context) {
	eventID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	registrations, err := h.engagementService.Registrations(c.Request.Context(), getSession(c), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		views = append(views, registrationResponse(r))
	}
	h.Success(c, views)
}

func registrationResponse(r engagement.Registration) RegistrationResponse {
	return RegistrationResponse{
		ProfileID:    r.ProfileID,
		RegisteredAt: r.RegisteredAt,
	}
}

// RecordAttendance stores a service head count
func (h *EngagementHandler) RecordAttendance(c *gin.Context) {
	var input appengagement.RecordAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.engagementService.RecordAttendance(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// AttendanceHistory returns head counts inside a reporting window. The
// window defaults to the last three months.
func (h *EngagementHandler) AttendanceHistory(c *gin.Context) {
	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}

	input := appengagement.AttendanceRangeInput{BranchID: branchID}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "from must be an RFC 3339 timestamp")
			return
		}
		input.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "to must be an RFC 3339 timestamp")
			return
		}
		input.To = to
	}

	views, err := h.engagementService.AttendanceHistory(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}
