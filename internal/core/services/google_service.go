package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/platform/config"
)

type googleIDTokenService struct {
	BaseService
	clientID     string
	oauth2Config *oauth2.Config
}

// NewGoogleIDTokenService creates a validator bound to the configured OAuth
// client. The oauth2 config backs the server-side code-exchange flow.
func NewGoogleIDTokenService(cfg *config.Config) portssvc.GoogleIDTokenSvcFacade {
	return &googleIDTokenService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleIDTokenSvcFacade = (*googleIDTokenService)(nil)

// ValidateGoogleIDToken verifies the signature and audience of a Google ID
// token and extracts the claims needed for sign-in.
func (s *googleIDTokenService) ValidateGoogleIDToken(ctx context.Context, rawToken string) (*domain.GoogleUserInfo, error) {
	if s.clientID == "" {
		return nil, fmt.Errorf("google sign-in is not configured: %w", apperrors.ErrServiceUnavailable)
	}

	payload, err := idtoken.Validate(ctx, rawToken, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google id token rejected: %w: %v", apperrors.ErrUnauthorized, err)
	}

	info := &domain.GoogleUserInfo{
		ID: payload.Subject,
	}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.Picture = picture
	}

	if info.Email == "" {
		return nil, fmt.Errorf("google id token carries no email claim: %w", apperrors.ErrUnauthorized)
	}

	return info, nil
}

// ExchangeAuthCode redeems an authorization code against Google's token
// endpoint, pulls the ID token out of the response and validates it like a
// directly presented one.
func (s *googleIDTokenService) ExchangeAuthCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	if s.oauth2Config.ClientID == "" || s.oauth2Config.ClientSecret == "" {
		return nil, fmt.Errorf("google sign-in is not configured: %w", apperrors.ErrServiceUnavailable)
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("authorization code rejected: %w: %v", apperrors.ErrUnauthorized, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("token response carries no id_token: %w", apperrors.ErrUnauthorized)
	}

	return s.ValidateGoogleIDToken(ctx, rawIDToken)
}
