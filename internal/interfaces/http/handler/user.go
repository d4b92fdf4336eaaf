package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/faithconnect/backend/internal/application/identity"
	"github.com/faithconnect/backend/internal/interfaces/http/dto"
)

// UserHandler handles superadmin account management
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserAdminService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserAdminService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user management routes on the superadmin group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", h.Create)
	users.GET("", h.List)
	users.PUT("/:id/role", h.UpdateRole)
}

// CreateUserRequest is the request body for an admin-created account
type CreateUserRequest struct {
	Email        string     `json:"email" binding:"required,email"`
	TempPassword string     `json:"temp_password" binding:"required,min=8"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role" binding:"required"`
	BranchID     *uuid.UUID `json:"branch_id"`
}

// UpdateRoleRequest is the request body for a role change
type UpdateRoleRequest struct {
	Role     string     `json:"role" binding:"required"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// Create provisions an account with a temporary password
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.userService.CreateManagedUser(c.Request.Context(), getSession(c), appidentity.CreateManagedUserInput{
		Email:        req.Email,
		TempPassword: req.TempPassword,
		FullName:     req.FullName,
		Role:         req.Role,
		BranchID:     req.BranchID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, userResponseFromInfo(*info))
}

// UpdateRole changes an account's role and branch assignment
func (h *UserHandler) UpdateRole(c *gin.Context) {
	userID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.userService.UpdateUserRole(c.Request.Context(), getSession(c), appidentity.UpdateUserRoleInput{
		UserID:   userID,
		Role:     req.Role,
		BranchID: req.BranchID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, userResponseFromInfo(*info))
}

// List returns one page of accounts
func (h *UserHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}
	var branchFilter *uuid.UUID
	if branchID != uuid.Nil {
		branchFilter = &branchID
	}

	result, err := h.userService.ListUsers(c.Request.Context(), appidentity.ListUsersInput{
		Keyword:  req.Search,
		Role:     c.Query("role"),
		BranchID: branchFilter,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	users := make([]UserResponse, 0, len(result.Users))
	for _, info := range result.Users {
		users = append(users, userResponseFromInfo(info))
	}
	h.SuccessWithMeta(c, users, result.Total, result.Page, result.PageSize)
}
