package services

import (
	"context"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

// ExpenseSvcFacade persists submitted expenses. Terminal approval outcomes
// reach the expense row through the approval repository's finalize
// transaction, not through this facade.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, submitter domain.Identity) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, companyDomain string, limit int, offset int) ([]domain.Expense, error)
}
