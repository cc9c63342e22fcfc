package models

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

// Account is the accounts table row. Code is unique per (code, company_id).
type Account struct {
	AccountID       string          `db:"account_id"`
	CompanyID       string          `db:"company_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	Category        AccountCategory `db:"category"`
	Nature          string          `db:"nature"` // debit | credit
	CurrencyCode    string          `db:"currency_code"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"`
}
