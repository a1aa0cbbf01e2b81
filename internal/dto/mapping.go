package dto

import "github.com/spendtrail/spendtrail_backend/internal/core/domain"

// ToApprovalResponse maps a domain approval to its external view.
func ToApprovalResponse(a *domain.Approval) ApprovalResponse {
	return ApprovalResponse{
		ApprovalID:     a.ApprovalID,
		ExpenseID:      a.ExpenseID,
		CompanyDomain:  a.CompanyDomain,
		ApproverRole:   string(a.ApproverRole),
		Status:         string(a.Status),
		ApprovedBy:     a.ApprovedBy,
		RequestedBy:    a.RequestedBy,
		Title:          a.Title,
		Description:    a.Description,
		Amount:         a.Amount,
		Category:       a.Category,
		ExpenseDate:    a.ExpenseDate,
		InitiationDate: a.InitiationDate,
		CompletionDate: a.CompletionDate,
	}
}

// ToApprovalResponses maps a slice of domain approvals.
func ToApprovalResponses(approvals []domain.Approval) []ApprovalResponse {
	out := make([]ApprovalResponse, 0, len(approvals))
	for i := range approvals {
		out = append(out, ToApprovalResponse(&approvals[i]))
	}
	return out
}

// ToExpenseResponse maps a domain expense to its external view.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		CompanyDomain: e.CompanyDomain,
		SubmittedBy:   e.SubmittedBy,
		Title:         e.Title,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      e.Category,
		Status:        string(e.Status),
		ExpenseDate:   e.ExpenseDate,
	}
}

// ToExpenseResponses maps a slice of domain expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, ToExpenseResponse(&expenses[i]))
	}
	return out
}

// ToCompanyResponse maps a domain company to its external view.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyDomain: c.CompanyDomain,
		Name:          c.Name,
		AdminEmail:    c.AdminEmail,
	}
}
