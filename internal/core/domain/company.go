package domain

// CompanyRole defines a user's role within a company.
type CompanyRole string

const (
	RoleOwner    CompanyRole = "OWNER"
	RoleMember   CompanyRole = "MEMBER"
	RoleReadOnly CompanyRole = "READ_ONLY"
)

// CanPerform checks if the role is sufficient for an action requiring requiredRole.
func (r CompanyRole) CanPerform(requiredRole CompanyRole) bool {
	switch requiredRole {
	case RoleReadOnly:
		return r == RoleReadOnly || r == RoleMember || r == RoleOwner
	case RoleMember:
		return r == RoleMember || r == RoleOwner
	case RoleOwner:
		return r == RoleOwner
	}
	return false
}

// Company is the tenant boundary. Every account, document and ledger entry
// belongs to exactly one company; cross-company references are forbidden.
type Company struct {
	CompanyID        string `json:"companyID"` // Primary Key (UUID)
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"` // Equivalent amounts are posted in this currency
	IsActive         bool   `json:"isActive"`
	AuditFields
}

// CompanyMembership links a user to a company with a role.
type CompanyMembership struct {
	CompanyID string      `json:"companyID"`
	UserID    string      `json:"userID"`
	Role      CompanyRole `json:"role"`
	AuditFields
}
