package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/interfaces/http/dto"
)

// AuditHandler serves the superadmin audit log browser
type AuditHandler struct {
	BaseHandler
	queryService *appaudit.QueryService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(queryService *appaudit.QueryService) *AuditHandler {
	return &AuditHandler{queryService: queryService}
}

// RegisterRoutes registers audit routes on the superadmin group
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit", h.Query)
}

// AuditEntryResponse is the client-facing audit record shape
type AuditEntryResponse struct {
	ID        uuid.UUID      `json:"id"`
	ActorID   uuid.UUID      `json:"actor_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func auditEntryResponse(e *audit.Entry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        e.ID,
		ActorID:   e.ActorID,
		Action:    string(e.Action),
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}

// Query returns audit entries matching the filters, newest first
func (h *AuditHandler) Query(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	entries, total, err := h.queryService.Query(c.Request.Context(), appaudit.QueryInput{
		ActorID:  c.Query("actor_id"),
		Action:   c.Query("action"),
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		views = append(views, auditEntryResponse(e))
	}
	h.SuccessWithMeta(c, views, total, req.Page, req.PageSize)
}
