package services

import (
	"context"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

// TokenSvcFacade issues, validates and revokes bearer credentials.
type TokenSvcFacade interface {
	// IssueTokenPair signs a fresh access token and rotates the refresh token
	// for the user. All previously issued access tokens of the identity are
	// revoked as a side effect.
	IssueTokenPair(ctx context.Context, user *domain.User) (*dto.AuthResponse, error)

	// ValidateAccessToken checks signature, expiry, revocation state and
	// account flags, returning the embedded identity when all pass. Failures
	// are reported as apperrors.ErrUnauthorized.
	ValidateAccessToken(ctx context.Context, rawToken string) (domain.Identity, error)

	// RefreshTokenPair validates the presented refresh token and issues a new
	// pair.
	RefreshTokenPair(ctx context.Context, email string, refreshToken string) (*dto.AuthResponse, error)

	// RevokeTokens soft-revokes every live credential of the identity.
	RevokeTokens(ctx context.Context, email string) error
}
