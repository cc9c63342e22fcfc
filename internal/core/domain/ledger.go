package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountRole names the function an account plays in a posting rule set.
// Roles are resolved to concrete accounts per document via the override
// hierarchy (line item > category > customer > document fallback).
type AccountRole string

const (
	RoleCOGS            AccountRole = "COGS"
	RoleInventory       AccountRole = "INVENTORY"
	RoleIncome          AccountRole = "INCOME"
	RoleReceivable      AccountRole = "RECEIVABLE"
	RoleCash            AccountRole = "CASH"
	RoleTaxPayable      AccountRole = "TAX_PAYABLE"
	RoleWHTReceivable   AccountRole = "WHT_RECEIVABLE"
	RoleDiscountAllowed AccountRole = "DISCOUNT_ALLOWED"
	RoleStockAdjustment AccountRole = "STOCK_ADJUSTMENT"
)

// IsMandatory reports whether a posting must fail when the role cannot be
// resolved. Optional roles are skipped silently instead.
func (r AccountRole) IsMandatory() bool {
	switch r {
	case RoleCOGS, RoleInventory, RoleIncome, RoleReceivable, RoleCash, RoleStockAdjustment:
		return true
	}
	return false
}

// PostingLine is one (role, nature, amount) tuple produced by a rule set,
// carrying the resolved account. Amounts are computed exactly once at build
// time and reused for both verification and persistence.
type PostingLine struct {
	Role    AccountRole     `json:"role"`
	Account Account         `json:"account"`
	Nature  EntryNature     `json:"nature"`
	Amount  decimal.Decimal `json:"amount"` // Positive, document currency
	Notes   string          `json:"notes"`
}

// PostingBatch groups the ledger entries produced by one approving action.
// The batch id is the general_ledger_id shared by its entries. Batches are
// immutable once written; corrections are posted as reversing batches.
type PostingBatch struct {
	BatchID          string          `json:"batchID"`   // general_ledger_id (UUID)
	CompanyID        string          `json:"companyID"` // Tenant scope
	DocumentID       string          `json:"documentID"`
	ReferenceNumber  string          `json:"referenceNumber"` // Human-readable document identifier, NOT unique
	TransactionType  DocumentType    `json:"transactionType"`
	TransactionDate  time.Time       `json:"transactionDate"`
	CurrencyCode     string          `json:"currencyCode"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"` // Document currency -> company base currency
	Description      string          `json:"description"`
	OriginalBatchID  *string         `json:"originalBatchID"`  // Set on reversal batches only
	ReversingBatchID *string         `json:"reversingBatchID"` // Set on the original once reversed
	AuditFields
}

// IsReversal reports whether this batch reverses another batch.
func (b PostingBatch) IsReversal() bool {
	return b.OriginalBatchID != nil
}

// LedgerEntry is one immutable row of the general ledger.
// Invariants: Amount >= 0; the equivalent amount equals Amount x ExchangeRate
// rounded to two decimal places, recorded on the side matching Nature.
type LedgerEntry struct {
	EntryID                string          `json:"entryID"` // Primary Key (UUID)
	BatchID                string          `json:"batchID"` // general_ledger_id grouping column
	CompanyID              string          `json:"companyID"`
	AccountID              string          `json:"accountID"`
	AccountCode            string          `json:"accountCode"`
	AccountName            string          `json:"accountName"`
	AccountRole            AccountRole     `json:"accountRole"`
	Nature                 EntryNature     `json:"nature"`
	Amount                 decimal.Decimal `json:"amount"`       // Document currency, 2dp
	ExchangeRate           decimal.Decimal `json:"exchangeRate"` // 6dp
	EquivalentDebitAmount  decimal.Decimal `json:"equivalentDebitAmount"`
	EquivalentCreditAmount decimal.Decimal `json:"equivalentCreditAmount"`
	ReferenceNumber        string          `json:"referenceNumber"`
	TransactionType        DocumentType    `json:"transactionType"`
	TransactionDate        time.Time       `json:"transactionDate"`
	Notes                  string          `json:"notes"`
	AuditFields
}

// EquivalentAmount returns the base-currency amount on the entry's side.
func (e LedgerEntry) EquivalentAmount() decimal.Decimal {
	if e.Nature == NatureDebit {
		return e.EquivalentDebitAmount
	}
	return e.EquivalentCreditAmount
}

// BatchVerification is the result of checking the balance invariant of one
// posting batch.
type BatchVerification struct {
	BatchID     string          `json:"batchID"`
	Balanced    bool            `json:"balanced"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Delta       decimal.Decimal `json:"delta"` // totalDebit - totalCredit
}

// FindingSeverity grades audit findings. Hard balance violations are HIGH,
// secondary consistency checks are MEDIUM.
type FindingSeverity string

const (
	SeverityHigh   FindingSeverity = "HIGH"
	SeverityMedium FindingSeverity = "MEDIUM"
)

// Audit check types reported by the balance verifier.
const (
	CheckBatchBalance          = "BATCH_BALANCE"
	CheckReceivableConsistency = "RECEIVABLE_CONSISTENCY"
	CheckTaxConfiguration      = "TAX_CONFIGURATION"
)

// AuditFinding is one detected inconsistency in historic ledger data.
type AuditFinding struct {
	CompanyID       string          `json:"companyID"`
	BatchID         string          `json:"batchID"`
	ReferenceNumber string          `json:"referenceNumber"`
	CheckType       string          `json:"checkType"`
	Severity        FindingSeverity `json:"severity"`
	Detail          string          `json:"detail"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	Delta           decimal.Decimal `json:"delta"`
	DetectedAt      time.Time       `json:"detectedAt"`
}

// BatchTotals is the per-batch debit/credit aggregate used by audit scans.
type BatchTotals struct {
	BatchID         string
	ReferenceNumber string
	TransactionType DocumentType
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
}

// SalesPostingSummary aggregates the role-attributed amounts of one sales
// invoice batch, used by the receivable consistency check.
type SalesPostingSummary struct {
	BatchID         string
	ReferenceNumber string
	Revenue         decimal.Decimal // Credits to the INCOME role
	Discount        decimal.Decimal // Debits to the DISCOUNT_ALLOWED role
	Tax             decimal.Decimal // Credits to the TAX_PAYABLE role
	WHT             decimal.Decimal // Debits to the WHT_RECEIVABLE role
	ReceivableGross decimal.Decimal // Debits to RECEIVABLE plus cash applied at posting time
}

// StatusTransition is the conditional document status flip executed in the
// same transaction as the batch write. Zero rows affected means a concurrent
// actor already transitioned the document, and the whole batch rolls back.
type StatusTransition struct {
	DocumentType DocumentType
	DocumentID   string
	From         DocumentStatus
	To           DocumentStatus
}

// PostingEffects are the side-effect updates that must commit atomically with
// a batch: customer running balance and product stock quantities.
type PostingEffects struct {
	CustomerID           string
	CustomerBalanceDelta decimal.Decimal
	StockDeltas          map[string]decimal.Decimal // product id -> quantity delta
}

// Invert returns the opposite effects, applied when a batch is reversed.
func (e PostingEffects) Invert() PostingEffects {
	inverted := PostingEffects{
		CustomerID:           e.CustomerID,
		CustomerBalanceDelta: e.CustomerBalanceDelta.Neg(),
	}
	if len(e.StockDeltas) > 0 {
		inverted.StockDeltas = make(map[string]decimal.Decimal, len(e.StockDeltas))
		for productID, delta := range e.StockDeltas {
			inverted.StockDeltas[productID] = delta.Neg()
		}
	}
	return inverted
}
