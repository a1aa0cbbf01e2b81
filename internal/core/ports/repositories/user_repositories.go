package repositories

import (
	"context"
	"time"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// UserRepository persists user accounts keyed by email.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateRefreshToken stores the hash and expiry of the user's current
	// refresh token; empty hash with nil expiry clears it.
	UpdateRefreshToken(ctx context.Context, email string, refreshTokenHash string, expiryTime *time.Time) error
}
