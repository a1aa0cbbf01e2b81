package domain

import "time"

// User is an account within a company domain. The four flag fields mirror the
// account checks the authorization filter re-validates on every request.
type User struct {
	Email                  string     `json:"email"`
	Name                   string     `json:"name"`
	PasswordHash           string     `json:"-"`
	Role                   Role       `json:"role"`
	CompanyDomain          string     `json:"companyDomain"`
	Enabled                bool       `json:"enabled"`
	Locked                 bool       `json:"locked"`
	AccountExpired         bool       `json:"accountExpired"`
	CredentialsExpired     bool       `json:"credentialsExpired"`
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
}

// CanAuthenticate reports whether the account passes all four account flags.
func (u *User) CanAuthenticate() bool {
	return u.Enabled && !u.Locked && !u.AccountExpired && !u.CredentialsExpired
}

// GoogleUserInfo is the subset of the Google userinfo payload sign-in needs.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
