package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest submits a new expense.
type CreateExpenseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	ExpenseDate string          `json:"expenseDate" binding:"required,datetime=2006-01-02"`
}

// ExpenseResponse is the external view of an expense.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseId"`
	CompanyDomain string          `json:"companyDomain"`
	SubmittedBy   string          `json:"submittedBy"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	ExpenseDate   time.Time       `json:"expenseDate"`
}
