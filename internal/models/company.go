package models

// Company mirrors the companies table.
type Company struct {
	CompanyDomain string `json:"companyDomain"`
	Name          string `json:"name"`
	AdminEmail    string `json:"adminEmail"`
	AuditFields
}
