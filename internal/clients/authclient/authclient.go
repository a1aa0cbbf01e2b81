// Package authclient validates bearer tokens against the auth service. It is
// the remote counterpart of the token service's local validation: services
// that do not own the token store parse the claims themselves and defer the
// revocation and account checks to the auth service.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/utils"
)

const defaultTimeout = 5 * time.Second

// Client is a remote token validator.
type Client struct {
	baseURL    string
	jwtSecret  string
	httpClient *http.Client
}

// NewClient creates a validator that calls the auth service at baseURL. The
// shared JWT secret is still needed locally to verify the signature and
// extract the claims.
func NewClient(baseURL string, jwtSecret string) *Client {
	return &Client{
		baseURL:    baseURL,
		jwtSecret:  jwtSecret,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ValidateAccessToken checks the token signature and expiry locally, then
// asks the auth service whether the token is still live (not revoked, account
// in good standing). An unreachable auth service is reported as
// apperrors.ErrServiceUnavailable, distinct from an invalid token.
func (c *Client) ValidateAccessToken(ctx context.Context, rawToken string) (domain.Identity, error) {
	claims, err := utils.ParseAndValidateJWT(rawToken, c.jwtSecret)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth-service/validate-access-token/"+rawToken, nil)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to build validation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth service unreachable: %w: %v", apperrors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Identity{}, fmt.Errorf("auth service returned status %d: %w", resp.StatusCode, apperrors.ErrServiceUnavailable)
	}

	var validation dto.TokenValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&validation); err != nil {
		return domain.Identity{}, fmt.Errorf("failed to decode validation response: %w", err)
	}
	if !validation.Valid {
		return domain.Identity{}, fmt.Errorf("%w: token is revoked or expired", apperrors.ErrUnauthorized)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	return domain.Identity{
		Email:         claims.Subject,
		Role:          role,
		CompanyDomain: claims.CompanyDomain,
	}, nil
}
