package repositories

// RepositoryProvider bundles every repository implementation so wiring code
// can pass them around as one unit.
type RepositoryProvider struct {
	ApprovalRepo ApprovalRepository
	TokenRepo    TokenRepository
	UserRepo     UserRepository
	ExpenseRepo  ExpenseRepository
	CompanyRepo  CompanyRepository
}
