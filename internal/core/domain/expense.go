package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the submission state of an expense as seen by its owner.
// The approval record, not the expense row, is the source of truth for where
// the expense sits in the approval chain.
type ExpenseStatus string

const (
	ExpenseSubmitted ExpenseStatus = "SUBMITTED"
	ExpenseApproved  ExpenseStatus = "APPROVED"
	ExpenseRejected  ExpenseStatus = "REJECTED"
)

// Expense is a reimbursable expense submitted by an employee.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	CompanyDomain string          `json:"companyDomain"`
	SubmittedBy   string          `json:"submittedBy"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Status        ExpenseStatus   `json:"status"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	AuditFields
}
