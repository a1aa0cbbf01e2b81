package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	"github.com/spendtrail/spendtrail_backend/internal/models"
)

type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{db: db}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func toDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		CompanyDomain: m.CompanyDomain,
		SubmittedBy:   m.SubmittedBy,
		Title:         m.Title,
		Description:   m.Description,
		Amount:        m.Amount,
		Category:      m.Category,
		Status:        domain.ExpenseStatus(m.Status),
		ExpenseDate:   m.ExpenseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
        INSERT INTO expenses (expense_id, company_domain, submitted_by, title, description, amount,
            category, status, expense_date, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		expense.ExpenseID,
		expense.CompanyDomain,
		expense.SubmittedBy,
		expense.Title,
		expense.Description,
		expense.Amount,
		expense.Category,
		string(expense.Status),
		expense.ExpenseDate,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT expense_id, company_domain, submitted_by, title, description, amount,
			category, status, expense_date, created_at, created_by, last_updated_at, last_updated_by
		FROM expenses
		WHERE expense_id = $1;
	`
	var m models.Expense
	err := r.db.QueryRow(ctx, query, expenseID).Scan(
		&m.ExpenseID,
		&m.CompanyDomain,
		&m.SubmittedBy,
		&m.Title,
		&m.Description,
		&m.Amount,
		&m.Category,
		&m.Status,
		&m.ExpenseDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	expense := toDomainExpense(m)
	return &expense, nil
}

func (r *PgxExpenseRepository) ListExpensesByCompany(ctx context.Context, companyDomain string, limit int, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT expense_id, company_domain, submitted_by, title, description, amount,
            category, status, expense_date, created_at, created_by, last_updated_at, last_updated_by
        FROM expenses
        WHERE company_domain = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, companyDomain, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var m models.Expense
		err := rows.Scan(
			&m.ExpenseID,
			&m.CompanyDomain,
			&m.SubmittedBy,
			&m.Title,
			&m.Description,
			&m.Amount,
			&m.Category,
			&m.Status,
			&m.ExpenseDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, toDomainExpense(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}

	return expenses, nil
}
