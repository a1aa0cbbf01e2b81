package repositories

import (
	"context"
	"time"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// ApprovalRepository persists approval records. Implementations must enforce
// the optimistic version guard on UpdateApproval so two concurrent transitions
// cannot both act on the same pre-transition state.
type ApprovalRepository interface {
	// SaveApproval inserts a new approval record.
	SaveApproval(ctx context.Context, approval domain.Approval) error

	// FindLiveApprovalByExpenseID returns the single PENDING approval for the
	// expense, or apperrors.ErrNotFound when none is live.
	FindLiveApprovalByExpenseID(ctx context.Context, expenseID string) (*domain.Approval, error)

	// FindLatestApprovalByExpenseID returns the most recently initiated
	// approval for the expense regardless of status, or apperrors.ErrNotFound
	// when the expense was never submitted.
	FindLatestApprovalByExpenseID(ctx context.Context, expenseID string) (*domain.Approval, error)

	// UpdateApproval writes a transitioned approval. expectedVersion is the
	// version the caller loaded; a mismatch returns apperrors.ErrConflict and
	// leaves the row untouched.
	UpdateApproval(ctx context.Context, approval domain.Approval, expectedVersion int64) error

	// FinalizeApproval writes a terminal transition and the expense outcome in
	// a single transaction. The same version guard as UpdateApproval applies;
	// a missing expense row is tolerated because the expense may be owned by
	// another service.
	FinalizeApproval(ctx context.Context, approval domain.Approval, expectedVersion int64, outcome domain.ExpenseStatus) error

	// ListApprovals returns approvals for a company domain whose initiation
	// date falls within [from, to).
	ListApprovals(ctx context.Context, companyDomain string, from time.Time, to time.Time) ([]domain.Approval, error)
}
