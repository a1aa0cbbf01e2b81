package models

import "time"

// User mirrors the users table.
type User struct {
	Email                  string     `json:"email"`
	Name                   string     `json:"name"`
	PasswordHash           string     `json:"-"`
	Role                   string     `json:"role"`
	CompanyDomain          string     `json:"companyDomain"`
	Enabled                bool       `json:"enabled"`
	Locked                 bool       `json:"locked"`
	AccountExpired         bool       `json:"accountExpired"`
	CredentialsExpired     bool       `json:"credentialsExpired"`
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
}
