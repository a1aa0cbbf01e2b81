package repositories

import (
	"context"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// TokenRepository persists issued credentials. Rows are soft-revoked, never
// deleted.
type TokenRepository interface {
	SaveToken(ctx context.Context, credential domain.Credential) error

	// FindTokenByHash looks a credential up by the SHA-256 hash of the signed
	// token string. Returns apperrors.ErrNotFound when unknown.
	FindTokenByHash(ctx context.Context, tokenHash string) (*domain.Credential, error)

	// RevokeTokensForEmail marks every live credential of the identity as
	// revoked and expired.
	RevokeTokensForEmail(ctx context.Context, email string) error
}
