package services

import (
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/platform/config"
)

// NewServiceContainer wires every service over the repository provider. The
// notification dispatcher is injected by the caller so the core never links
// against a transport.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, dispatcher portssvc.NotificationDispatcher) *portssvc.ServiceContainer {
	approvalOptions := []ApprovalServiceOption{}
	if dispatcher != nil {
		approvalOptions = append(approvalOptions, WithNotificationDispatcher(dispatcher))
	}

	return &portssvc.ServiceContainer{
		Token:    NewTokenService(cfg, repos.TokenRepo, repos.UserRepo),
		User:     NewUserService(repos.UserRepo, repos.CompanyRepo),
		Approval: NewApprovalService(repos.ApprovalRepo, approvalOptions...),
		Expense:  NewExpenseService(repos.ExpenseRepo),
		Company:  NewCompanyService(repos.CompanyRepo),
		GoogleID: NewGoogleIDTokenService(cfg),
	}
}
