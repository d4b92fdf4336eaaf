package handler

import (
	"github.com/gin-gonic/gin"

	apporg "github.com/faithconnect/backend/internal/application/organization"
)

// UnitHandler handles departments and small groups
type UnitHandler struct {
	BaseHandler
	unitService *apporg.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *apporg.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// RegisterPortalRoutes registers the member-facing unit routes
func (h *UnitHandler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	rg.GET("/departments", h.ListDepartments)
	rg.GET("/groups", h.ListGroups)
	rg.POST("/groups/:id/join", h.JoinGroup)
	rg.POST("/groups/:id/leave", h.LeaveGroup)
	rg.GET("/my/groups", h.MyGroups)
	rg.GET("/my/departments", h.MyDepartments)
}

// RegisterAdminRoutes registers unit management routes
func (h *UnitHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	departments := rg.Group("/departments")
	departments.POST("", h.CreateDepartment)
	departments.PUT("/:id", h.UpdateDepartment)
	departments.DELETE("/:id", h.DeleteDepartment)
	departments.POST("/:id/members/:profileID", h.AssignToDepartment)
	departments.DELETE("/:id/members/:profileID", h.RemoveFromDepartment)

	groups := rg.Group("/groups")
	groups.POST("", h.CreateGroup)
	groups.PUT("/:id", h.UpdateGroup)
	groups.DELETE("/:id", h.DeleteGroup)
}

// CreateDepartment creates a ministry department
func (h *UnitHandler) CreateDepartment(c *gin.Context) {
	var input apporg.CreateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.unitService.CreateDepartment(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateDepartment applies partial changes to a department
func (h *UnitHandler) UpdateDepartment(c *gin.Context) {
	unitID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var input apporg.UpdateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.UnitID = unitID

	view, err := h.unitService.UpdateDepartment(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// DeleteDepartment removes a department
func (h *UnitHandler) DeleteDepartment(c *gin.Context) {
	unitID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.unitService.DeleteDepartment(c.Request.Context(), getSession(c), unitID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListDepartments returns a branch's departments
func (h *UnitHandler) ListDepartments(c *gin.Context) {
	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}

	views, err := h.unitService.ListDepartments(c.Request.Context(), getSession(c), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// AssignToDepartment adds an account to a department's serving roster
func (h *UnitHandler) AssignToDepartment(c *gin.Context) {
	unitID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	profileID, ok := h.pathUUID(c, "profileID")
	if !ok {
		return
	}

	if err := h.unitService.AssignToDepartment(c.Request.Context(), getSession(c), unitID, profileID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RemoveFromDepartment removes an account from a department's roster
func (h *UnitHandler) RemoveFromDepartment(c *gin.Context) {
	unitID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	profileID, ok := h.pathUUID(c, "profileID")
	if !ok {
		return
	}

	if err := h.unitService.RemoveFromDepartment(c.Request.Context(), getSession(c), unitID, profileID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateGroup creates a small group
func (h *UnitHandler) CreateGroup(c *gin.Context) {
	var input apporg.CreateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.unitService.CreateGroup(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateGroup applies partial changes to a group
func (h *UnitHandler) UpdateGroup(c *gin.Context) {
	unitID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var input apporg.UpdateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.UnitID = unitID

	view, err := h.unitService.UpdateGroup(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// DeleteGroup removes a group
func (h *UnitHandler) DeleteGroup(c *gin.Context) {
	unitID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.unitService.DeleteGroup(c.Request.Context(), getSession(c), unitID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListGroups returns a branch's small groups
func (h *UnitHandler) ListGroups(c *gin.Context) {
	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}

	views, err := h.unitService.ListGroups(c.Request.Context(), getSession(c), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// JoinGroup adds the caller to a group in their own branch
func (h *UnitHandler) JoinGroup(c *gin.Context) {
	groupID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.unitService.JoinGroup(c.Request.Context(), getSession(c), groupID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// LeaveGroup removes the caller from a group
func (h *UnitHandler) LeaveGroup(c *gin.Context) {
	groupID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.unitService.LeaveGroup(c.Request.Context(), getSession(c), groupID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MyGroups returns the groups the caller belongs to
func (h *UnitHandler) MyGroups(c *gin.Context) {
	views, err := h.unitService.MyGroups(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// MyDepartments returns the departments the caller serves in
func (h *UnitHandler) MyDepartments(c *gin.Context) {
	views, err := h.unitService.MyDepartments(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}
