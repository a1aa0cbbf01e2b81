package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	"github.com/spendtrail/spendtrail_backend/internal/models"
)

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(db *pgxpool.Pool) portsrepo.ApprovalRepository {
	return &PgxApprovalRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ApprovalRepository = (*PgxApprovalRepository)(nil)

func toModelApproval(d domain.Approval) models.Approval {
	return models.Approval{
		ApprovalID:     d.ApprovalID,
		ExpenseID:      d.ExpenseID,
		CompanyDomain:  d.CompanyDomain,
		ApproverRole:   string(d.ApproverRole),
		Status:         string(d.Status),
		ApprovedBy:     d.ApprovedBy,
		RequestedBy:    d.RequestedBy,
		Title:          d.Title,
		Description:    d.Description,
		Amount:         d.Amount,
		Category:       d.Category,
		ExpenseDate:    d.ExpenseDate,
		InitiationDate: d.InitiationDate,
		CompletionDate: d.CompletionDate,
		Version:        d.Version,
	}
}

func toDomainApproval(m models.Approval) domain.Approval {
	return domain.Approval{
		ApprovalID:     m.ApprovalID,
		ExpenseID:      m.ExpenseID,
		CompanyDomain:  m.CompanyDomain,
		ApproverRole:   domain.Role(m.ApproverRole),
		Status:         domain.ApprovalStatus(m.Status),
		ApprovedBy:     m.ApprovedBy,
		RequestedBy:    m.RequestedBy,
		Title:          m.Title,
		Description:    m.Description,
		Amount:         m.Amount,
		Category:       m.Category,
		ExpenseDate:    m.ExpenseDate,
		InitiationDate: m.InitiationDate,
		CompletionDate: m.CompletionDate,
		Version:        m.Version,
	}
}

const approvalColumns = `approval_id, expense_id, company_domain, approver_role, status, approved_by, requested_by,
		title, description, amount, category, expense_date, initiation_date, completion_date, version`

func scanApproval(row pgx.Row) (*models.Approval, error) {
	var m models.Approval
	err := row.Scan(
		&m.ApprovalID,
		&m.ExpenseID,
		&m.CompanyDomain,
		&m.ApproverRole,
		&m.Status,
		&m.ApprovedBy,
		&m.RequestedBy,
		&m.Title,
		&m.Description,
		&m.Amount,
		&m.Category,
		&m.ExpenseDate,
		&m.InitiationDate,
		&m.CompletionDate,
		&m.Version,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxApprovalRepository) SaveApproval(ctx context.Context, approval domain.Approval) error {
	m := toModelApproval(approval)
	query := `
        INSERT INTO approvals (` + approvalColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ApprovalID,
		m.ExpenseID,
		m.CompanyDomain,
		m.ApproverRole,
		m.Status,
		m.ApprovedBy,
		m.RequestedBy,
		m.Title,
		m.Description,
		m.Amount,
		m.Category,
		m.ExpenseDate,
		m.InitiationDate,
		m.CompletionDate,
		m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save approval: %w", err)
	}
	return nil
}

func (r *PgxApprovalRepository) FindLiveApprovalByExpenseID(ctx context.Context, expenseID string) (*domain.Approval, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM approvals
		WHERE expense_id = $1 AND status = 'PENDING';
	`
	m, err := scanApproval(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find live approval for expense %s: %w", expenseID, err)
	}

	d := toDomainApproval(*m)
	return &d, nil
}

func (r *PgxApprovalRepository) FindLatestApprovalByExpenseID(ctx context.Context, expenseID string) (*domain.Approval, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM approvals
		WHERE expense_id = $1
		ORDER BY initiation_date DESC
		LIMIT 1;
	`
	m, err := scanApproval(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest approval for expense %s: %w", expenseID, err)
	}

	d := toDomainApproval(*m)
	return &d, nil
}

const updateApprovalQuery = `
        UPDATE approvals
        SET approver_role = $1,
            status = $2,
            approved_by = $3,
            completion_date = $4,
            version = $5
        WHERE approval_id = $6 AND version = $7;
    `

// UpdateApproval writes a transitioned approval guarded by the version
// column. Zero affected rows means another transition won the race.
func (r *PgxApprovalRepository) UpdateApproval(ctx context.Context, approval domain.Approval, expectedVersion int64) error {
	m := toModelApproval(approval)
	tag, err := r.Pool.Exec(ctx, updateApprovalQuery,
		m.ApproverRole,
		m.Status,
		m.ApprovedBy,
		m.CompletionDate,
		m.Version,
		m.ApprovalID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update approval %s: %w", approval.ApprovalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// FinalizeApproval commits the terminal approval transition and the expense
// outcome atomically. The expense row may live in another service's store, so
// zero affected expense rows is not an error.
func (r *PgxApprovalRepository) FinalizeApproval(ctx context.Context, approval domain.Approval, expectedVersion int64, outcome domain.ExpenseStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := toModelApproval(approval)
	tag, err := tx.Exec(ctx, updateApprovalQuery,
		m.ApproverRole,
		m.Status,
		m.ApprovedBy,
		m.CompletionDate,
		m.Version,
		m.ApprovalID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize approval %s: %w", approval.ApprovalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	expenseQuery := `
        UPDATE expenses
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE expense_id = $4;
    `
	if _, err := tx.Exec(ctx, expenseQuery, string(outcome), time.Now(), m.ApprovedBy, m.ExpenseID); err != nil {
		return fmt.Errorf("failed to record expense outcome for %s: %w", m.ExpenseID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxApprovalRepository) ListApprovals(ctx context.Context, companyDomain string, from time.Time, to time.Time) ([]domain.Approval, error) {
	query := `
        SELECT ` + approvalColumns + `
        FROM approvals
        WHERE company_domain = $1 AND initiation_date >= $2 AND initiation_date < $3
        ORDER BY initiation_date DESC;
    `
	rows, err := r.Pool.Query(ctx, query, companyDomain, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals: %w", err)
	}
	defer rows.Close()

	approvals := []domain.Approval{}
	for rows.Next() {
		m, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval row: %w", err)
		}
		approvals = append(approvals, toDomainApproval(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating approval rows: %w", rows.Err())
	}

	return approvals, nil
}
