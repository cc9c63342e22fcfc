package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingBatch is the posting_batches table row: one header per approving
// action, keyed by the general_ledger_id its entries share.
type PostingBatch struct {
	BatchID          string          `db:"general_ledger_id"`
	CompanyID        string          `db:"company_id"`
	DocumentID       string          `db:"document_id"`
	ReferenceNumber  string          `db:"reference_number"`
	TransactionType  string          `db:"transaction_type"`
	TransactionDate  time.Time       `db:"transaction_date"`
	CurrencyCode     string          `db:"currency_code"`
	ExchangeRate     decimal.Decimal `db:"exchange_rate"`
	Description      string          `db:"description"`
	OriginalBatchID  *string         `db:"original_batch_id"`
	ReversingBatchID *string         `db:"reversing_batch_id"`
	AuditFields
}

// LedgerEntry is the ledger_entries table row. Rows are append-only; the only
// correction path is a reversing batch.
type LedgerEntry struct {
	EntryID                string          `db:"entry_id"`
	BatchID                string          `db:"general_ledger_id"`
	CompanyID              string          `db:"company_id"`
	AccountID              string          `db:"account_id"`
	AccountCode            string          `db:"account_code"`
	AccountName            string          `db:"account_name"`
	AccountRole            string          `db:"account_role"`
	AccountNature          string          `db:"account_nature"` // debit | credit
	Amount                 decimal.Decimal `db:"amount"`
	ExchangeRate           decimal.Decimal `db:"exchange_rate"`
	EquivalentDebitAmount  decimal.Decimal `db:"equivalent_debit_amount"`
	EquivalentCreditAmount decimal.Decimal `db:"equivalent_credit_amount"`
	ReferenceNumber        string          `db:"reference_number"`
	TransactionType        string          `db:"transaction_type"`
	TransactionDate        time.Time       `db:"transaction_date"`
	Notes                  string          `db:"notes"`
	AuditFields
}
