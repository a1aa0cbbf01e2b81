package dto

import "time"

// SignupRequest registers a new user account under a company domain.
type SignupRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	CompanyDomain string `json:"companyDomain" binding:"required"`
	Role          string `json:"role" binding:"required,platformrole"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries a Google-issued ID token to exchange for a
// local token pair.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleExchangeCodeRequest carries an OAuth authorization code from the
// server-side Google sign-in flow.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RefreshTokenRequest rotates an access/refresh token pair.
type RefreshTokenRequest struct {
	Email        string `json:"email" binding:"required,email"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is returned on successful sign-in, sign-up or refresh.
type AuthResponse struct {
	AccessToken        string    `json:"accessToken"`
	AccessTokenExpiry  time.Time `json:"accessTokenExpiry"`
	RefreshToken       string    `json:"refreshToken"`
	RefreshTokenExpiry time.Time `json:"refreshTokenExpiry"`
	TokenType          string    `json:"tokenType"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	CompanyDomain      string    `json:"companyDomain"`
}

// TokenValidationResponse is the body of the remote validation contract.
type TokenValidationResponse struct {
	Valid bool `json:"valid"`
}
