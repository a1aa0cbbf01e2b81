package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense mirrors the expenses table.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	CompanyDomain string          `json:"companyDomain"`
	SubmittedBy   string          `json:"submittedBy"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	AuditFields
}
