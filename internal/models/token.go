package models

import "time"

// Token mirrors the tokens table. Only the SHA-256 hash of the signed JWT is
// stored; rows are soft-revoked, never deleted.
type Token struct {
	TokenID   string    `json:"tokenID"`
	Email     string    `json:"email"`
	TokenHash string    `json:"-"`
	Revoked   bool      `json:"revoked"`
	Expired   bool      `json:"expired"`
	CreatedAt time.Time `json:"createdAt"`
}
