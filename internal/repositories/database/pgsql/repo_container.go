package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ApprovalRepo: newPgxApprovalRepository(dbPool),
		TokenRepo:    newPgxTokenRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		ExpenseRepo:  newPgxExpenseRepository(dbPool),
		CompanyRepo:  newPgxCompanyRepository(dbPool),
	}
}
