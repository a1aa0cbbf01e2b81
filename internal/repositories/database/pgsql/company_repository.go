package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	"github.com/spendtrail/spendtrail_backend/internal/models"
)

type PgxCompanyRepository struct {
	db *pgxpool.Pool
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepository {
	return &PgxCompanyRepository{db: db}
}

var _ portsrepo.CompanyRepository = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
        INSERT INTO companies (company_domain, name, admin_email, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		company.CompanyDomain,
		company.Name,
		company.AdminEmail,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
		}
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByDomain(ctx context.Context, companyDomain string) (*domain.Company, error) {
	query := `
		SELECT company_domain, name, admin_email, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_domain = $1;
	`
	var m models.Company
	err := r.db.QueryRow(ctx, query, companyDomain).Scan(
		&m.CompanyDomain,
		&m.Name,
		&m.AdminEmail,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by domain %s: %w", companyDomain, err)
	}

	company := domain.Company{
		CompanyDomain: m.CompanyDomain,
		Name:          m.Name,
		AdminEmail:    m.AdminEmail,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &company, nil
}
