package repositories

import (
	"context"
	"time"

	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerWriter defines the atomic batch write operation.
type LedgerWriter interface {
	// SaveBatch persists a posting batch and its entries inside one database
	// transaction, together with the document status transition, the account
	// balance updates and the customer/stock side effects. Everything commits
	// or nothing does. A zero-row status transition aborts with ErrConflict
	// (another request already transitioned the document). For reversal
	// batches (batch.OriginalBatchID set) the original batch header is marked
	// reversed in the same transaction; a batch that is already reversed
	// aborts with ErrConflict.
	SaveBatch(ctx context.Context, batch domain.PostingBatch, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, transition domain.StatusTransition, effects domain.PostingEffects) error
}

// LedgerReader defines read operations over posted batches and entries.
type LedgerReader interface {
	// FindBatchByID retrieves a posting batch header by its general ledger id.
	FindBatchByID(ctx context.Context, batchID string) (*domain.PostingBatch, error)

	// FindEntriesByBatchID retrieves the entries of one batch in insertion order.
	FindEntriesByBatchID(ctx context.Context, batchID string) ([]domain.LedgerEntry, error)

	// ListEntriesByReference retrieves entries sharing a reference number
	// within a company. Reference numbers are not unique across documents.
	ListEntriesByReference(ctx context.Context, companyID string, referenceNumber string) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated list of entries for one
	// account using token-based pagination.
	ListEntriesByAccount(ctx context.Context, companyID string, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerAuditor defines the aggregate reads used by offline audit scans.
type LedgerAuditor interface {
	// ListBatchTotalsSince returns per-batch debit/credit totals for all
	// batches of a company posted on or after the given date.
	ListBatchTotalsSince(ctx context.Context, companyID string, since time.Time) ([]domain.BatchTotals, error)

	// ListSalesPostingSummaries returns role-attributed amounts of sales
	// invoice batches for the receivable consistency check.
	ListSalesPostingSummaries(ctx context.Context, companyID string, since time.Time) ([]domain.SalesPostingSummary, error)

	// ListTaxConfigurationGaps returns references of approved sales invoices
	// carrying tax that produced no tax entry in their batch.
	ListTaxConfigurationGaps(ctx context.Context, companyID string, since time.Time) ([]string, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
	LedgerAuditor
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
