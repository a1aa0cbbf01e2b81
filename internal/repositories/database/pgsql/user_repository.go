package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	"github.com/spendtrail/spendtrail_backend/internal/models"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func toModelUser(d domain.User) models.User {
	return models.User{
		Email:                  d.Email,
		Name:                   d.Name,
		PasswordHash:           d.PasswordHash,
		Role:                   string(d.Role),
		CompanyDomain:          d.CompanyDomain,
		Enabled:                d.Enabled,
		Locked:                 d.Locked,
		AccountExpired:         d.AccountExpired,
		CredentialsExpired:     d.CredentialsExpired,
		RefreshTokenHash:       d.RefreshTokenHash,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		Email:                  m.Email,
		Name:                   m.Name,
		PasswordHash:           m.PasswordHash,
		Role:                   domain.Role(m.Role),
		CompanyDomain:          m.CompanyDomain,
		Enabled:                m.Enabled,
		Locked:                 m.Locked,
		AccountExpired:         m.AccountExpired,
		CredentialsExpired:     m.CredentialsExpired,
		RefreshTokenHash:       m.RefreshTokenHash,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (email, name, password_hash, role, company_domain, enabled, locked,
            account_expired, credentials_expired, refresh_token_hash, refresh_token_expiry,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.db.Exec(ctx, query,
		m.Email,
		m.Name,
		m.PasswordHash,
		m.Role,
		m.CompanyDomain,
		m.Enabled,
		m.Locked,
		m.AccountExpired,
		m.CredentialsExpired,
		m.RefreshTokenHash,
		m.RefreshTokenExpiryTime,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT email, name, password_hash, role, company_domain, enabled, locked,
			account_expired, credentials_expired, refresh_token_hash, refresh_token_expiry,
			created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE email = $1;
	`
	var m models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&m.Email,
		&m.Name,
		&m.PasswordHash,
		&m.Role,
		&m.CompanyDomain,
		&m.Enabled,
		&m.Locked,
		&m.AccountExpired,
		&m.CredentialsExpired,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email %s: %w", email, err)
	}

	user := toDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, email string, refreshTokenHash string, expiryTime *time.Time) error {
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry = $2, last_updated_at = $3, last_updated_by = $4
        WHERE email = $5;
    `
	tag, err := r.db.Exec(ctx, query, refreshTokenHash, expiryTime, time.Now(), email, email)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for %s: %w", email, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
