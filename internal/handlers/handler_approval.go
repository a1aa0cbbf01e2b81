package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

// ApprovalHandler handles approval workflow requests.
type ApprovalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// NewApprovalHandler creates a new ApprovalHandler.
func NewApprovalHandler(as portssvc.ApprovalSvcFacade) *ApprovalHandler {
	return &ApprovalHandler{approvalService: as}
}

// registerApprovalRoutes sets up the approval workflow routes. The approve and
// reject callbacks are GETs so they work as links in a notification message.
func registerApprovalRoutes(rg *gin.Engine, approvalService portssvc.ApprovalSvcFacade) {
	h := NewApprovalHandler(approvalService)

	approval := rg.Group("/approval-service")
	{
		approval.POST("/ask-for-approve", h.AskForApproval)
		approval.GET("/approve", h.Approve)
		approval.GET("/reject", h.Reject)
		approval.GET("/approvals", h.ListApprovals)
	}
}

// AskForApproval godoc
// @Summary Submit an expense for approval
// @Description Creates a pending approval at the first chain role and notifies it. The requester identity comes from the bearer token.
// @Tags approval
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AskForApprovalRequest true "Expense snapshot"
// @Success 201 {object} dto.ApprovalResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 409 {object} dto.StatusResponse "An approval is already pending for this expense"
// @Router /approval-service/ask-for-approve [post]
func (h *ApprovalHandler) AskForApproval(c *gin.Context) {
	var req dto.AskForApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	requester, ok := requireIdentity(c)
	if !ok {
		return
	}

	approval, err := h.approvalService.AskForApproval(c.Request.Context(), req, requester)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApprovalResponse(approval))
}

// Approve godoc
// @Summary Approve an expense
// @Description Escalates the live approval to the next chain role, or finalizes it at the last role. Invoked through the link in the notification message.
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param expenseId query string true "Expense ID"
// @Param role query string true "Acting approver role"
// @Success 200 {object} dto.ApprovalResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 404 {object} dto.StatusResponse "No live approval for this expense"
// @Failure 409 {object} dto.StatusResponse "Role mismatch or concurrent transition"
// @Router /approval-service/approve [get]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	req, actingRole, ok := h.bindAction(c)
	if !ok {
		return
	}

	actor, ok := requireIdentity(c)
	if !ok {
		return
	}

	approval, err := h.approvalService.Approve(c.Request.Context(), req.ExpenseID, actingRole, actor.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalResponse(approval))
}

// Reject godoc
// @Summary Reject an expense
// @Description Terminally rejects the live approval from any chain position and notifies the original requester.
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param expenseId query string true "Expense ID"
// @Param role query string true "Acting approver role"
// @Success 200 {object} dto.ApprovalResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 404 {object} dto.StatusResponse "No live approval for this expense"
// @Failure 409 {object} dto.StatusResponse "Concurrent transition"
// @Router /approval-service/reject [get]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	req, actingRole, ok := h.bindAction(c)
	if !ok {
		return
	}

	actor, ok := requireIdentity(c)
	if !ok {
		return
	}

	approval, err := h.approvalService.Reject(c.Request.Context(), req.ExpenseID, actingRole, actor.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalResponse(approval))
}

// ListApprovals godoc
// @Summary List approvals
// @Description Returns the caller's company approvals whose initiation date falls in the requested year/month range.
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param fromYear query int true "Range start year"
// @Param toYear query int true "Range end year"
// @Param fromMonth query int false "Range start month (default 1)"
// @Param toMonth query int false "Range end month (default 12)"
// @Success 200 {array} dto.ApprovalResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Router /approval-service/approvals [get]
func (h *ApprovalHandler) ListApprovals(c *gin.Context) {
	var query dto.ListApprovalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	approvals, err := h.approvalService.ListApprovals(c.Request.Context(), identity.CompanyDomain, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalResponses(approvals))
}

// bindAction binds the shared approve/reject callback parameters. The links
// carry the full expense snapshot but only expenseId and role drive the
// transition; the actor recorded on the record is the authenticated caller,
// never the emailId baked into the link.
func (h *ApprovalHandler) bindAction(c *gin.Context) (dto.ApprovalActionRequest, domain.Role, bool) {
	var req dto.ApprovalActionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return dto.ApprovalActionRequest{}, "", false
	}

	actingRole, err := domain.ParseRole(req.Role)
	if err != nil {
		respondBindError(c, err)
		return dto.ApprovalActionRequest{}, "", false
	}

	return req, actingRole, true
}
