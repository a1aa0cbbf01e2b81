package dto

import "github.com/shopspring/decimal"

// ExpenseDetails is the structured snapshot sent to the notification service.
// The field set matches the approve/reject link parameters exactly.
type ExpenseDetails struct {
	ExpenseID   string          `json:"expenseId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	ExpenseDate string          `json:"expenseDate"`
	EmailID     string          `json:"emailId"`
	Role        string          `json:"role"`
}

// ApprovalNotification asks the notification service to deliver an actionable
// approve/reject message to the next approver role.
type ApprovalNotification struct {
	ExpenseDetails ExpenseDetails `json:"expenseDetails"`
	ApproveLink    string         `json:"approveLink"`
	RejectLink     string         `json:"rejectLink"`
}

// RejectionNotification informs the original requester that the expense was
// rejected, attributed to the role that rejected it.
type RejectionNotification struct {
	ExpenseDetails ExpenseDetails `json:"expenseDetails"`
	RejectedByRole string         `json:"rejectedByRole"`
}
