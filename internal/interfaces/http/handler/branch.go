package handler

import (
	"github.com/gin-gonic/gin"

	apporg "github.com/faithconnect/backend/internal/application/organization"
)

// BranchHandler handles branch administration and the public branch
// directory
type BranchHandler struct {
	BaseHandler
	branchService *apporg.BranchService
	statsService  *apporg.StatsService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *apporg.BranchService, statsService *apporg.StatsService) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
		statsService:  statsService,
	}
}

// RegisterPortalRoutes registers the read-only branch directory, used by
// members picking a transfer destination
func (h *BranchHandler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	branches.GET("", h.List)
	branches.GET("/:id", h.Get)
}

// RegisterAdminRoutes registers the branch dashboard
func (h *BranchHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
}

// RegisterSuperAdminRoutes registers branch management and the platform
// overview
func (h *BranchHandler) RegisterSuperAdminRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	branches.POST("", h.Create)
	branches.PUT("/:id", h.Update)
	branches.DELETE("/:id", h.Delete)
	rg.GET("/stats", h.PlatformStats)
}

// List returns every branch
func (h *BranchHandler) List(c *gin.Context) {
	views, err := h.branchService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Get returns one branch
func (h *BranchHandler) Get(c *gin.Context) {
	branchID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.branchService.Get(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Create opens a new branch
func (h *BranchHandler) Create(c *gin.Context) {
	var input apporg.CreateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.branchService.Create(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// Update applies partial changes to a branch
func (h *BranchHandler) Update(c *gin.Context) {
	branchID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var input apporg.UpdateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.BranchID = branchID

	view, err := h.branchService.Update(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete closes a branch. Branches with members on the roll are refused.
func (h *BranchHandler) Delete(c *gin.Context) {
	branchID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.branchService.Delete(c.Request.Context(), branchID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Dashboard returns the admin dashboard counters for a branch
func (h *BranchHandler) Dashboard(c *gin.Context) {
	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}

	stats, err := h.statsService.BranchDashboard(c.Request.Context(), getSession(c), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// PlatformStats returns platform-wide counters
func (h *BranchHandler) PlatformStats(c *gin.Context) {
	stats, err := h.statsService.Platform(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
