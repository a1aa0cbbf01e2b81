package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AskForApprovalRequest submits an expense snapshot into the approval chain.
// The requester identity comes from the bearer token, not the body.
type AskForApprovalRequest struct {
	ExpenseID   string          `json:"expenseId" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	ExpenseDate string          `json:"expenseDate" binding:"required,datetime=2006-01-02"`
}

// ApprovalActionRequest is bound from the approve/reject callback links. The
// links carry the full snapshot so the notification service can render the
// message without a callback, but only expenseId and role drive the
// transition.
type ApprovalActionRequest struct {
	ExpenseID   string `form:"expenseId" binding:"required"`
	Role        string `form:"role" binding:"required,approverrole"`
	EmailID     string `form:"emailId"`
	Title       string `form:"title"`
	Description string `form:"description"`
	Amount      string `form:"amount"`
	Category    string `form:"category"`
	ExpenseDate string `form:"expenseDate"`
}

// ListApprovalsQuery filters the approval listing by initiation date.
type ListApprovalsQuery struct {
	FromYear  int `form:"fromYear" binding:"required,min=2000"`
	ToYear    int `form:"toYear" binding:"required,min=2000"`
	FromMonth int `form:"fromMonth,default=1" binding:"omitempty,min=1,max=12"`
	ToMonth   int `form:"toMonth,default=12" binding:"omitempty,min=1,max=12"`
}

// ApprovalResponse is the external view of an approval record.
type ApprovalResponse struct {
	ApprovalID     string          `json:"approvalId"`
	ExpenseID      string          `json:"expenseId"`
	CompanyDomain  string          `json:"companyDomain"`
	ApproverRole   string          `json:"approverRole"`
	Status         string          `json:"status"`
	ApprovedBy     string          `json:"approvedBy"`
	RequestedBy    string          `json:"requestedBy"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	ExpenseDate    time.Time       `json:"expenseDate"`
	InitiationDate time.Time       `json:"initiationDate"`
	CompletionDate *time.Time      `json:"completionDate,omitempty"`
}
