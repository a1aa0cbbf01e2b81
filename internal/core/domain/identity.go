package domain

// Identity is the request-scoped caller established by the authorization
// filter. It is passed explicitly through the call chain instead of living in
// any global holder.
type Identity struct {
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	CompanyDomain string `json:"companyDomain"`
}

// Authority renders the caller's granted authority string.
func (i Identity) Authority() string {
	return i.Role.Authority()
}
