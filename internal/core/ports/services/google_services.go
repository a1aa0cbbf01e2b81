package services

import (
	"context"

	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// GoogleIDTokenSvcFacade validates Google-issued credentials for federated
// sign-in. Clients either present an ID token directly or an authorization
// code obtained through the server-side OAuth flow.
type GoogleIDTokenSvcFacade interface {
	// ValidateGoogleIDToken verifies the token against the configured client
	// ID and returns the verified user info.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error)

	// ExchangeAuthCode redeems an OAuth authorization code for Google tokens,
	// then validates the embedded ID token.
	ExchangeAuthCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error)
}
