package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/platform/config"
	"github.com/spendtrail/spendtrail_backend/internal/utils"
)

// tokenService implements TokenSvcFacade. It is also the local TokenValidator
// used by the authorization filter on the auth side.
type tokenService struct {
	BaseService
	cfg       *config.Config
	tokenRepo portsrepo.TokenRepository
	userRepo  portsrepo.UserRepository
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, tokenRepo portsrepo.TokenRepository, userRepo portsrepo.UserRepository) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:       cfg,
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueTokenPair signs a fresh access token and rotates the refresh token.
// Issuing revokes every previously issued token of the identity, so at most
// one credential per identity is ever trusted.
func (s *tokenService) IssueTokenPair(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	if err := s.tokenRepo.RevokeTokensForEmail(ctx, user.Email); err != nil {
		return nil, fmt.Errorf("failed to revoke prior tokens: %w", err)
	}

	accessExpiry := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.Email, string(user.Role), user.CompanyDomain, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	credential := domain.Credential{
		CredentialID: uuid.NewString(),
		Email:        user.Email,
		TokenHash:    utils.HashTokenString(accessToken),
		Revoked:      false,
		Expired:      false,
		CreatedAt:    time.Now(),
	}
	if err := s.tokenRepo.SaveToken(ctx, credential); err != nil {
		return nil, fmt.Errorf("failed to persist credential: %w", err)
	}

	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshExpiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	refreshHash := utils.HashTokenString(rawRefreshToken)
	if err := s.userRepo.UpdateRefreshToken(ctx, user.Email, refreshHash, &refreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.LogInfo(ctx, "Issued token pair", slog.String("email", user.Email))

	return &dto.AuthResponse{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessExpiry,
		RefreshToken:       rawRefreshToken,
		RefreshTokenExpiry: refreshExpiry,
		TokenType:          "Bearer",
		Email:              user.Email,
		Role:               string(user.Role),
		CompanyDomain:      user.CompanyDomain,
	}, nil
}

// ValidateAccessToken performs the full local validation: signature and
// expiry, revocation state of the stored credential, then the account flags
// of the owning user.
func (s *tokenService) ValidateAccessToken(ctx context.Context, rawToken string) (domain.Identity, error) {
	claims, err := utils.ParseAndValidateJWT(rawToken, s.cfg.JWTSecret)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	credential, err := s.tokenRepo.FindTokenByHash(ctx, utils.HashTokenString(rawToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: token is not recognized", apperrors.ErrUnauthorized)
		}
		return domain.Identity{}, fmt.Errorf("failed to look up credential: %w", err)
	}
	if !credential.Usable() {
		return domain.Identity{}, fmt.Errorf("%w: token is revoked or expired", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: unknown identity", apperrors.ErrUnauthorized)
		}
		return domain.Identity{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.CanAuthenticate() {
		return domain.Identity{}, fmt.Errorf("%w: account is disabled or locked", apperrors.ErrUnauthorized)
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

// RefreshTokenPair validates the presented refresh token against the stored
// hash and expiry, then rotates the whole pair.
func (s *tokenService) RefreshTokenPair(ctx context.Context, email string, refreshToken string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.CanAuthenticate() {
		return nil, apperrors.ErrUnauthorized
	}

	return s.IssueTokenPair(ctx, user)
}

// RevokeTokens soft-revokes every live credential and clears the refresh
// token.
func (s *tokenService) RevokeTokens(ctx context.Context, email string) error {
	if err := s.tokenRepo.RevokeTokensForEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, email, "", nil); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	s.LogInfo(ctx, "Revoked tokens", slog.String("email", email))
	return nil
}
