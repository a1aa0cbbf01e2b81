package services

import (
	"context"
	"errors"
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

const expenseDateLayout = "2006-01-02"

// approvalService implements the approval state machine. Transitions are
// committed before notifications are dispatched; a failed dispatch never
// rolls a transition back.
type approvalService struct {
	BaseService
	approvalRepo portsrepo.ApprovalRepository
	dispatcher   portssvc.NotificationDispatcher
}

// ApprovalServiceOption is a functional option for configuring the approval service
type ApprovalServiceOption func(*approvalService)

// WithNotificationDispatcher adds the notification dispatcher dependency
func WithNotificationDispatcher(d portssvc.NotificationDispatcher) ApprovalServiceOption {
	return func(s *approvalService) {
		s.dispatcher = d
	}
}

// NewApprovalService creates a new approval service with the provided options
func NewApprovalService(repo portsrepo.ApprovalRepository, options ...ApprovalServiceOption) portssvc.ApprovalSvcFacade {
	svc := &approvalService{
		approvalRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// AskForApproval creates a PENDING approval at the first chain role. A live
// approval for the same expense is rejected rather than duplicated, so there
// is never more than one live record per expense.
func (s *approvalService) AskForApproval(ctx context.Context, req dto.AskForApprovalRequest, requester domain.Identity) (*domain.Approval, error) {
	expenseDate, err := time.Parse(expenseDateLayout, req.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expense date %q: %w", req.ExpenseDate, apperrors.ErrValidation)
	}

	existing, err := s.approvalRepo.FindLiveApprovalByExpenseID(ctx, req.ExpenseID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for live approval: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("approval for expense %s is already pending with %s: %w",
			req.ExpenseID, existing.ApproverRole, apperrors.ErrDuplicate)
	}

	now := time.Now()
	approval := domain.Approval{
		ApprovalID:     uuid.NewString(),
		ExpenseID:      req.ExpenseID,
		CompanyDomain:  requester.CompanyDomain,
		ApproverRole:   domain.FirstApproverRole(),
		Status:         domain.ApprovalPending,
		ApprovedBy:     requester.Email,
		RequestedBy:    requester.Email,
		Title:          req.Title,
		Description:    req.Description,
		Amount:         req.Amount,
		Category:       req.Category,
		ExpenseDate:    expenseDate,
		InitiationDate: now,
		Version:        1,
	}

	if err := s.approvalRepo.SaveApproval(ctx, approval); err != nil {
		return nil, fmt.Errorf("failed to create approval: %w", err)
	}

	s.LogInfo(ctx, "Approval created",
		slog.String("approval_id", approval.ApprovalID),
		slog.String("expense_id", approval.ExpenseID),
		slog.String("approver_role", string(approval.ApproverRole)))

	s.notifyApprover(ctx, approval, approval.ApproverRole)

	return &approval, nil
}

// Approve escalates the live approval to the next chain role, or finalizes it
// when the acting role is the last in the chain. The acting role must be the
// role the record is waiting on.
func (s *approvalService) Approve(ctx context.Context, expenseID string, actingRole domain.Role, actor string) (*domain.Approval, error) {
	if !actingRole.IsApprover() {
		return nil, fmt.Errorf("role %s is not part of the approval chain: %w", actingRole, apperrors.ErrInvalidState)
	}

	approval, err := s.approvalRepo.FindLiveApprovalByExpenseID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.noLiveApprovalErr(ctx, expenseID)
		}
		return nil, fmt.Errorf("failed to load approval: %w", err)
	}

	if approval.ApproverRole != actingRole {
		return nil, fmt.Errorf("approval for expense %s is awaiting %s, not %s: %w",
			expenseID, approval.ApproverRole, actingRole, apperrors.ErrInvalidState)
	}

	expectedVersion := approval.Version
	approval.ApprovedBy = actor
	approval.Version = expectedVersion + 1

	next, hasNext := domain.NextApproverRole(actingRole)
	if hasNext {
		approval.ApproverRole = next
		if err := s.approvalRepo.UpdateApproval(ctx, *approval, expectedVersion); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return nil, fmt.Errorf("approval for expense %s was transitioned concurrently: %w", expenseID, apperrors.ErrConflict)
			}
			return nil, fmt.Errorf("failed to transition approval: %w", err)
		}

		s.LogInfo(ctx, "Approval escalated",
			slog.String("expense_id", expenseID),
			slog.String("acting_role", string(actingRole)),
			slog.String("next_role", string(next)))
		s.notifyApprover(ctx, *approval, next)
		return approval, nil
	}

	now := time.Now()
	approval.Status = domain.ApprovalApproved
	approval.CompletionDate = &now

	if err := s.approvalRepo.FinalizeApproval(ctx, *approval, expectedVersion, domain.ExpenseApproved); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("approval for expense %s was transitioned concurrently: %w", expenseID, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to finalize approval: %w", err)
	}

	s.LogInfo(ctx, "Approval finalized",
		slog.String("expense_id", expenseID),
		slog.String("acting_role", string(actingRole)))

	return approval, nil
}

// Reject terminally rejects the live approval regardless of chain position
// and notifies the original requester.
func (s *approvalService) Reject(ctx context.Context, expenseID string, actingRole domain.Role, actor string) (*domain.Approval, error) {
	if !actingRole.IsApprover() {
		return nil, fmt.Errorf("role %s is not part of the approval chain: %w", actingRole, apperrors.ErrInvalidState)
	}

	approval, err := s.approvalRepo.FindLiveApprovalByExpenseID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.noLiveApprovalErr(ctx, expenseID)
		}
		return nil, fmt.Errorf("failed to load approval: %w", err)
	}

	expectedVersion := approval.Version
	now := time.Now()
	approval.Status = domain.ApprovalRejected
	approval.ApprovedBy = actor
	approval.CompletionDate = &now
	approval.Version = expectedVersion + 1

	if err := s.approvalRepo.FinalizeApproval(ctx, *approval, expectedVersion, domain.ExpenseRejected); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("approval for expense %s was transitioned concurrently: %w", expenseID, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to reject approval: %w", err)
	}

	s.LogInfo(ctx, "Approval rejected",
		slog.String("expense_id", expenseID),
		slog.String("acting_role", string(actingRole)))

	if s.dispatcher != nil {
		notification := dto.RejectionNotification{
			ExpenseDetails: s.expenseDetails(*approval, approval.RequestedBy),
			RejectedByRole: string(actingRole),
		}
		if err := s.dispatcher.DispatchRejection(ctx, notification); err != nil {
			s.LogError(ctx, err, "Failed to dispatch rejection notification",
				slog.String("expense_id", expenseID))
		}
	}

	return approval, nil
}

// ListApprovals returns the approvals of a company domain whose initiation
// date falls within the requested year/month range.
func (s *approvalService) ListApprovals(ctx context.Context, companyDomain string, query dto.ListApprovalsQuery) ([]domain.Approval, error) {
	fromMonth := query.FromMonth
	if fromMonth == 0 {
		fromMonth = 1
	}
	toMonth := query.ToMonth
	if toMonth == 0 {
		toMonth = 12
	}

	from := time.Date(query.FromYear, time.Month(fromMonth), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(query.ToYear, time.Month(toMonth), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !from.Before(to) {
		return nil, fmt.Errorf("range start %s is not before range end %s: %w", from, to, apperrors.ErrValidation)
	}

	approvals, err := s.approvalRepo.ListApprovals(ctx, companyDomain, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return approvals, nil
}

// notifyApprover dispatches action links for the approval to the target role.
// Dispatch happens after the transition is committed; failures are logged and
// never propagated.
func (s *approvalService) notifyApprover(ctx context.Context, approval domain.Approval, targetRole domain.Role) {
	if s.dispatcher == nil {
		return
	}
	details := s.expenseDetails(approval, approval.RequestedBy)
	details.Role = string(targetRole)
	if err := s.dispatcher.DispatchApprovalRequest(ctx, details); err != nil {
		s.LogError(ctx, err, "Failed to dispatch approval notification",
			slog.String("expense_id", approval.ExpenseID),
			slog.String("target_role", string(targetRole)))
	}
}

// noLiveApprovalErr classifies a missing live approval: an expense whose
// approval already reached a terminal state is an invalid transition, one that
// was never submitted is not found.
func (s *approvalService) noLiveApprovalErr(ctx context.Context, expenseID string) error {
	latest, err := s.approvalRepo.FindLatestApprovalByExpenseID(ctx, expenseID)
	if err == nil && latest.IsTerminal() {
		return fmt.Errorf("approval for expense %s is already %s: %w", expenseID, latest.Status, apperrors.ErrInvalidState)
	}
	return fmt.Errorf("no live approval for expense %s: %w", expenseID, apperrors.ErrNotFound)
}

func (s *approvalService) expenseDetails(approval domain.Approval, emailID string) dto.ExpenseDetails {
	return dto.ExpenseDetails{
		ExpenseID:   approval.ExpenseID,
		Title:       approval.Title,
		Description: approval.Description,
		Amount:      approval.Amount,
		Category:    approval.Category,
		ExpenseDate: approval.ExpenseDate.Format(expenseDateLayout),
		EmailID:     emailID,
		Role:        string(approval.ApproverRole),
	}
}
