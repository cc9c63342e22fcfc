package models

// Company is the companies table row (tenant).
type Company struct {
	CompanyID        string `db:"company_id"`
	Name             string `db:"name"`
	BaseCurrencyCode string `db:"base_currency_code"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}

// CompanyMembership is the company_users join table row.
type CompanyMembership struct {
	CompanyID string `db:"company_id"`
	UserID    string `db:"user_id"`
	Role      string `db:"role"`
	AuditFields
}

// User is the users table row.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
