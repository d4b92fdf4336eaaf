package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apptransfer "github.com/faithconnect/backend/internal/application/transfer"
)

// TransferHandler handles member transfer requests, both the member-facing
// submission flow and the admin decision queue
type TransferHandler struct {
	BaseHandler
	transferService *apptransfer.Service
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *apptransfer.Service) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// RegisterPortalRoutes registers the member-facing transfer routes
func (h *TransferHandler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	transfers := rg.Group("/transfers")
	transfers.POST("", h.Submit)
	transfers.GET("", h.ListMine)
}

// RegisterAdminRoutes registers the admin transfer queue routes
func (h *TransferHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	transfers := rg.Group("/transfers")
	transfers.GET("", h.ListQueue)
	transfers.GET("/pending-count", h.PendingCount)
	transfers.POST("/:id/approve", h.Approve)
	transfers.POST("/:id/reject", h.Reject)
}

// Submit files a transfer request to another branch for the caller's
// member record
func (h *TransferHandler) Submit(c *gin.Context) {
	var input apptransfer.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.transferService.Submit(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, view)
}

// ListMine returns the caller's own transfer request history
func (h *TransferHandler) ListMine(c *gin.Context) {
	views, err := h.transferService.ListForMember(c.Request.Context(), getSession(c), apptransfer.ListForMemberInput{
		Status: c.Query("status"),
		Order:  c.Query("order"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// ListQueue returns a branch's transfer queue
func (h *TransferHandler) ListQueue(c *gin.Context) {
	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}

	views, err := h.transferService.ListForBranch(c.Request.Context(), getSession(c), apptransfer.ListForBranchInput{
		BranchID: branchID,
		Status:   c.Query("status"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// PendingCount returns the number of undecided requests for the badge in
// the admin sidebar
func (h *TransferHandler) PendingCount(c *gin.Context) {
	session := getSession(c)

	branchID, ok := h.optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}
	if branchID == uuid.Nil || !session.Role.IsSuperAdmin() {
		if session.BranchID == nil {
			h.Error(c, http.StatusBadRequest, "BRANCH_REQUIRED", "A branch must be specified")
			return
		}
		branchID = *session.BranchID
	}

	count, err := h.transferService.CountPending(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"pending": count})
}

// Approve accepts a transfer request and moves the member record
func (h *TransferHandler) Approve(c *gin.Context) {
	transferID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.transferService.Approve(c.Request.Context(), getSession(c), transferID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Reject declines a transfer request
func (h *TransferHandler) Reject(c *gin.Context) {
	transferID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var input apptransfer.RejectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.TransferID = transferID

	view, err := h.transferService.Reject(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}
