package services

import (
	"context"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

// CompanySvcFacade manages the tenant registry.
type CompanySvcFacade interface {
	RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error)
	GetCompanyByDomain(ctx context.Context, companyDomain string) (*domain.Company, error)
}
