package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepository) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error) {
	now := time.Now()
	company := domain.Company{
		CompanyDomain: req.CompanyDomain,
		Name:          req.Name,
		AdminEmail:    req.AdminEmail,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.AdminEmail,
			LastUpdatedAt: now,
			LastUpdatedBy: req.AdminEmail,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("company domain %s is already registered: %w", req.CompanyDomain, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to register company: %w", err)
	}

	s.LogInfo(ctx, "Company registered", slog.String("company_domain", company.CompanyDomain))
	return &company, nil
}

func (s *companyService) GetCompanyByDomain(ctx context.Context, companyDomain string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByDomain(ctx, companyDomain)
}
