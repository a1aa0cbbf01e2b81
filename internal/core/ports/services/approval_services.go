package services

import (
	"context"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

// ApprovalSvcFacade owns the approval state machine.
type ApprovalSvcFacade interface {
	// AskForApproval creates a PENDING approval at the first chain role and
	// dispatches action links to it. A live approval for the same expense is
	// rejected with apperrors.ErrDuplicate.
	AskForApproval(ctx context.Context, req dto.AskForApprovalRequest, requester domain.Identity) (*domain.Approval, error)

	// Approve escalates the live approval to the role after actingRole, or
	// finalizes it when actingRole is the last in the chain.
	Approve(ctx context.Context, expenseID string, actingRole domain.Role, actor string) (*domain.Approval, error)

	// Reject terminally rejects the live approval regardless of chain position
	// and notifies the original requester.
	Reject(ctx context.Context, expenseID string, actingRole domain.Role, actor string) (*domain.Approval, error)

	// ListApprovals returns the approvals of a company domain filtered by
	// initiation date.
	ListApprovals(ctx context.Context, companyDomain string, query dto.ListApprovalsQuery) ([]domain.Approval, error)
}

// NotificationDispatcher delivers actionable messages through the
// notification service. Delivery failures never roll back a committed state
// transition; the caller logs and moves on.
type NotificationDispatcher interface {
	// DispatchApprovalRequest delivers an actionable message to the role named
	// in details.Role; the dispatcher constructs the approve/reject links.
	DispatchApprovalRequest(ctx context.Context, details dto.ExpenseDetails) error
	DispatchRejection(ctx context.Context, notification dto.RejectionNotification) error
}
