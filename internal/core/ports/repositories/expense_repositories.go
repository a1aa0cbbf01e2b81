package repositories

import (
	"context"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// ExpenseRepository persists submitted expenses.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpensesByCompany(ctx context.Context, companyDomain string, limit int, offset int) ([]domain.Expense, error)
}
