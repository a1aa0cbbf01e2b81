package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Approval mirrors the approvals table. The version column backs optimistic
// locking on transitions.
type Approval struct {
	ApprovalID     string          `json:"approvalID"`
	ExpenseID      string          `json:"expenseID"`
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
	CompletionDate *time.Time      `json:"completionDate"`
	Version        int64           `json:"version"`
}
