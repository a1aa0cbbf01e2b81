package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus is the lifecycle state of an approval record.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Approval tracks a single expense through the approval chain. The expense
// fields are a denormalized snapshot taken when approval was requested, so the
// audit trail stays stable even if the source expense later changes.
//
// Rows are append-only: a terminal approval is never re-mutated and approvals
// are never deleted. Version backs the optimistic concurrency guard on every
// transition.
type Approval struct {
	ApprovalID     string          `json:"approvalID"`
	ExpenseID      string          `json:"expenseID"`
	CompanyDomain  string          `json:"companyDomain"`
	ApproverRole   Role            `json:"approverRole"`
	Status         ApprovalStatus  `json:"status"`
	ApprovedBy     string          `json:"approvedBy"`
	RequestedBy    string          `json:"requestedBy"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	ExpenseDate    time.Time       `json:"expenseDate"`
	InitiationDate time.Time       `json:"initiationDate"`
	CompletionDate *time.Time      `json:"completionDate,omitempty"`
	Version        int64           `json:"-"`
}

// IsTerminal reports whether the approval reached a final state.
func (a *Approval) IsTerminal() bool {
	return a.Status == ApprovalApproved || a.Status == ApprovalRejected
}
