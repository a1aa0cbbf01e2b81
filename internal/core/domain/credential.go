package domain

import "time"

// Credential is the persisted record of an issued access token. The token
// itself is a signed JWT; this row tracks its revocation state so a token can
// be invalidated before its signature expires. Credentials are soft-revoked,
// never deleted.
type Credential struct {
	CredentialID string    `json:"credentialID"`
	Email        string    `json:"email"`
	TokenHash    string    `json:"-"`
	Revoked      bool      `json:"revoked"`
	Expired      bool      `json:"expired"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Usable reports whether the credential may still be trusted. Signature and
// expiry validation happen separately against the JWT itself; this covers the
// stored flags only.
func (c *Credential) Usable() bool {
	return !c.Revoked && !c.Expired
}
