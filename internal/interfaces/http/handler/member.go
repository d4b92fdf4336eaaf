package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apporg "github.com/faithconnect/backend/internal/application/organization"
	"github.com/faithconnect/backend/internal/infrastructure/roll"
	"github.com/faithconnect/backend/internal/interfaces/http/dto"
)

// MemberHandler handles branch roll management and the member directory
type MemberHandler struct {
	BaseHandler
	memberService *apporg.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *apporg.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// RegisterPortalRoutes registers the member directory for the caller's
// own branch
func (h *MemberHandler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	rg.GET("/directory", h.List)
}

// RegisterAdminRoutes registers roll management routes
func (h *MemberHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	members.POST("", h.Create)
	members.GET("", h.List)
	members.GET("/:id", h.Get)
	members.PUT("/:id", h.Update)
	members.DELETE("/:id", h.Delete)
	members.POST("/import", h.Import)
}

// Create adds a member to a branch roll
func (h *MemberHandler) Create(c *gin.Context) {
	var input apporg.CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.memberService.Create(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// List returns one page of a branch roll
func (h *MemberHandler) List(c *gin.Context) {
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

	result, err := h.memberService.List(c.Request.Context(), getSession(c), apporg.ListMembersInput{
		BranchID: branchID,
		Keyword:  req.Search,
		Status:   c.Query("status"),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Members, result.Total, result.Page, result.PageSize)
}

// Get returns one roll record
func (h *MemberHandler) Get(c *gin.Context) {
	memberID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.memberService.Get(c.Request.Context(), getSession(c), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Update applies partial changes to a roll record
func (h *MemberHandler) Update(c *gin.Context) {
	memberID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var input apporg.UpdateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.MemberID = memberID

	view, err := h.memberService.Update(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete removes a roll record
func (h *MemberHandler) Delete(c *gin.Context) {
	memberID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), getSession(c), memberID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Import bulk-loads roll records. Invalid rows are skipped and reported
// rather than failing the whole batch. Accepts either a JSON body or a
// raw CSV roll export uploaded with Content-Type text/csv.
func (h *MemberHandler) Import(c *gin.Context) {
	var (
		input   apporg.ImportMembersInput
		rowErrs []roll.RowError
	)

	if strings.Contains(c.ContentType(), "text/csv") {
		branchID, ok := h.optionalUUIDQuery(c, "branch_id")
		if !ok {
			return
		}
		rows, errs, err := roll.ParseMemberRoll(c.Request.Body)
		if err != nil {
			h.Error(c, http.StatusBadRequest, "INVALID_ROLL_FILE", err.Error())
			return
		}
		rowErrs = errs
		input.BranchID = branchID
		for _, row := range rows {
			input.Rows = append(input.Rows, apporg.ImportRow{
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Email:     row.Email,
				Phone:     row.Phone,
			})
		}
		if len(input.Rows) == 0 && len(rowErrs) > 0 {
			h.Error(c, http.StatusBadRequest, "INVALID_ROLL_FILE", rowErrs[0].String())
			return
		}
	} else if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.memberService.Import(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	for _, rowErr := range rowErrs {
		result.Skipped++
		result.Errors = append(result.Errors, rowErr.String())
	}
	h.Success(c, result)
}
