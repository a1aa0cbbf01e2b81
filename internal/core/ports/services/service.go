package services

// ServiceContainer holds instances of all the application services. Handlers
// receive this rather than concrete implementations.
type ServiceContainer struct {
	Token    TokenSvcFacade
	User     UserSvcFacade
	Approval ApprovalSvcFacade
	Expense  ExpenseSvcFacade
	Company  CompanySvcFacade
	GoogleID GoogleIDTokenSvcFacade
}
