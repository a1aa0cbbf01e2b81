package repositories

import (
	"context"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// CompanyRepository persists the tenant registry.
type CompanyRepository interface {
	// SaveCompany inserts a company; a duplicate domain returns
	// apperrors.ErrDuplicate.
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByDomain(ctx context.Context, companyDomain string) (*domain.Company, error)
}
