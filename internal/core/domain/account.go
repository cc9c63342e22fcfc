package domain

import (
	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// EntryNature indicates the side of a ledger entry. The lowercase values match
// the persisted account_nature column.
type EntryNature string

const (
	NatureDebit  EntryNature = "debit"
	NatureCredit EntryNature = "credit"
)

// Opposite returns the flipped nature, used when building reversal batches.
func (n EntryNature) Opposite() EntryNature {
	if n == NatureDebit {
		return NatureCredit
	}
	return NatureDebit
}

// NormalNature returns the side that increases the balance of an account in
// the given category.
func NormalNature(category AccountCategory) EntryNature {
	switch category {
	case Asset, Expense:
		return NatureDebit
	default:
		return NatureCredit
	}
}

// Account represents a ledger account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`       // FK -> companies.company_id (NON-NULL, tenant scope)
	Code            string          `json:"code"`            // Unique per (code, company_id), NOT globally
	Name            string          `json:"name"`            // User-defined name
	Category        AccountCategory `json:"category"`        // ASSET, LIABILITY, etc.
	Nature          EntryNature     `json:"nature"`          // Normal side that increases the balance
	CurrencyCode    string          `json:"currencyCode"`    // FK -> currencies.code
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing tree)
	Description     string          `json:"description"`     // Nullable user description
	IsActive        bool            `json:"isActive"`        // Accounts referenced by postings are deactivated, never deleted
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted account balance
}
