package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepository) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, submitter domain.Identity) (*domain.Expense, error) {
	expenseDate, err := time.Parse(expenseDateLayout, req.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expense date %q: %w", req.ExpenseDate, apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:     uuid.NewString(),
		CompanyDomain: submitter.CompanyDomain,
		SubmittedBy:   submitter.Email,
		Title:         req.Title,
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      req.Category,
		Status:        domain.ExpenseSubmitted,
		ExpenseDate:   expenseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitter.Email,
			LastUpdatedAt: now,
			LastUpdatedBy: submitter.Email,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("submitted_by", expense.SubmittedBy))

	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

func (s *expenseService) ListExpenses(ctx context.Context, companyDomain string, limit int, offset int) ([]domain.Expense, error) {
	return s.expenseRepo.ListExpensesByCompany(ctx, companyDomain, limit, offset)
}
