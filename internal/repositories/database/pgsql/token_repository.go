package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	"github.com/spendtrail/spendtrail_backend/internal/models"
)

type PgxTokenRepository struct {
	db *pgxpool.Pool
}

func newPgxTokenRepository(db *pgxpool.Pool) portsrepo.TokenRepository {
	return &PgxTokenRepository{db: db}
}

var _ portsrepo.TokenRepository = (*PgxTokenRepository)(nil)

func toDomainCredential(m models.Token) domain.Credential {
	return domain.Credential{
		CredentialID: m.TokenID,
		Email:        m.Email,
		TokenHash:    m.TokenHash,
		Revoked:      m.Revoked,
		Expired:      m.Expired,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *PgxTokenRepository) SaveToken(ctx context.Context, credential domain.Credential) error {
	query := `
        INSERT INTO tokens (token_id, email, token_hash, revoked, expired, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		credential.CredentialID,
		credential.Email,
		credential.TokenHash,
		credential.Revoked,
		credential.Expired,
		credential.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (r *PgxTokenRepository) FindTokenByHash(ctx context.Context, tokenHash string) (*domain.Credential, error) {
	query := `
		SELECT token_id, email, token_hash, revoked, expired, created_at
		FROM tokens
		WHERE token_hash = $1;
	`
	var m models.Token
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&m.TokenID,
		&m.Email,
		&m.TokenHash,
		&m.Revoked,
		&m.Expired,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find token by hash: %w", err)
	}

	credential := toDomainCredential(m)
	return &credential, nil
}

// RevokeTokensForEmail soft-revokes every live token of the identity. Rows
// stay behind as the audit trail.
func (r *PgxTokenRepository) RevokeTokensForEmail(ctx context.Context, email string) error {
	query := `
        UPDATE tokens
        SET revoked = TRUE, expired = TRUE
        WHERE email = $1 AND (revoked = FALSE OR expired = FALSE);
    `
	if _, err := r.db.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("failed to revoke tokens for %s: %w", email, err)
	}
	return nil
}
