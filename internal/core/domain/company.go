package domain

// Company is a registered tenant. The domain string partitions users,
// expenses and approvals.
type Company struct {
	CompanyDomain string `json:"companyDomain"`
	Name          string `json:"name"`
	AdminEmail    string `json:"adminEmail"`
	AuditFields
}
