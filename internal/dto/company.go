package dto

// RegisterCompanyRequest registers a new tenant.
type RegisterCompanyRequest struct {
	CompanyDomain string `json:"companyDomain" binding:"required,fqdn"`
	Name          string `json:"name" binding:"required"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
}

// CompanyResponse is the external view of a registered tenant.
type CompanyResponse struct {
	CompanyDomain string `json:"companyDomain"`
	Name          string `json:"name"`
	AdminEmail    string `json:"adminEmail"`
}
