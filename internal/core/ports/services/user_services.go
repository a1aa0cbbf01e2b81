package services

import (
	"context"
	"time"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

// UserSvcFacade manages user accounts.
type UserSvcFacade interface {
	// CreateUser registers an account; a taken email returns
	// apperrors.ErrDuplicate, an unknown company domain apperrors.ErrNotFound.
	CreateUser(ctx context.Context, req dto.SignupRequest) (*domain.User, error)

	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Authenticate verifies the password and the account flags.
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)

	// UpdateRefreshToken stores the current refresh token hash and expiry.
	UpdateRefreshToken(ctx context.Context, email string, refreshTokenHash string, expiryTime *time.Time) error

	// EnsureGoogleUser finds or provisions the account matching a verified
	// Google identity.
	EnsureGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}
