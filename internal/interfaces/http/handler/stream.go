package handler

import (
	"github.com/gin-gonic/gin"

	appstreaming "github.com/faithconnect/backend/internal/application/streaming"
)

// StreamHandler handles service broadcasts, from scheduling through
// archived playback
type StreamHandler struct {
	BaseHandler
	streamService *appstreaming.Service
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(streamService *appstreaming.Service) *StreamHandler {
	return &StreamHandler{streamService: streamService}
}

// RegisterPortalRoutes registers the viewer-facing stream routes
func (h *StreamHandler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	streams := rg.Group("/streams")
	streams.GET("", h.List)
	streams.GET("/live", h.ListLive)
	streams.GET("/:id/playback", h.Playback)
	streams.POST("/:id/viewers/join", h.JoinViewer)
	streams.POST("/:id/viewers/leave", h.LeaveViewer)
	streams.GET("/:id/viewers", h.ViewerCount)
}

// RegisterAdminRoutes registers broadcast management routes
func (h *StreamHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	streams := rg.Group("/streams")
	streams.POST("", h.Schedule)
	streams.GET("", h.List)
	streams.POST("/:id/start", h.Start)
	streams.POST("/:id/end", h.End)
	streams.POST("/:id/archive", h.Archive)
	streams.DELETE("/:id", h.Delete)
}

// Schedule creates a scheduled broadcast
func (h *StreamHandler) Schedule(c *gin.Context) {
	var input appstreaming.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.streamService.Schedule(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// Start marks a scheduled broadcast as live
func (h *StreamHandler) Start(c *gin.Context) {
	streamID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.streamService.Start(c.Request.Context(), getSession(c), streamID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// End marks a live broadcast as ended and resets its viewer count
func (h *StreamHandler) End(c *gin.Context) {
	streamID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.streamService.End(c.Request.Context(), getSession(c), streamID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Archive records where an ended broadcast's recording lives
func (h *StreamHandler) Archive(c *gin.Context) {
	streamID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var input appstreaming.ArchiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.StreamID = streamID

	view, err := h.streamService.Archive(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete removes a broadcast that never went live or is already over
func (h *StreamHandler) Delete(c *gin.Context) {
	streamID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.streamService.Delete(c.Request.Context(), getSession(c), streamID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List returns a branch's broadcasts. Private streams are hidden from
// non-admin viewers.
func (h *StreamHandler) List(c *gin.Context) {
	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}

	views, err := h.streamService.ListForBranch(c.Request.Context(), getSession(c), appstreaming.ListInput{
		BranchID: branchID,
		Status:   c.Query("status"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// ListLive returns every public broadcast currently on air
func (h *StreamHandler) ListLive(c *gin.Context) {
	views, err := h.streamService.ListLive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Playback issues a short-lived signed link to an archived recording
func (h *StreamHandler) Playback(c *gin.Context) {
	streamID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.streamService.Playback(c.Request.Context(), getSession(c), streamID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// JoinViewer counts the caller into a live stream's audience
func (h *StreamHandler) JoinViewer(c *gin.Context) {
	streamID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.streamService.JoinViewer(c.Request.Context(), streamID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// LeaveViewer counts the caller out of a stream's audience
func (h *StreamHandler) LeaveViewer(c *gin.Context) {
	streamID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.streamService.LeaveViewer(c.Request.Context(), streamID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ViewerCount reports a stream's current audience size
func (h *StreamHandler) ViewerCount(c *gin.Context) {
	streamID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.streamService.ViewerCount(c.Request.Context(), streamID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
