package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	"github.com/poslite/poslite_backend/internal/models"
	"github.com/poslite/poslite_backend/internal/utils/mapping"
	"github.com/poslite/poslite_backend/internal/utils/pagination"
)

const batchColumns = `general_ledger_id, company_id, document_id, reference_number, transaction_type, transaction_date, currency_code, exchange_rate, description, original_batch_id, reversing_batch_id, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, general_ledger_id, company_id, account_id, account_code, account_name, account_role, account_nature, amount, exchange_rate, equivalent_debit_amount, equivalent_credit_amount, reference_number, transaction_type, transaction_date, notes, created_at, created_by, last_updated_at, last_updated_by`

// statusTables maps a document type to its table and primary key column for
// the conditional status update.
var statusTables = map[domain.DocumentType]struct {
	table string
	idCol string
}{
	domain.DocSalesInvoice:    {table: "sales_invoices", idCol: "invoice_id"},
	domain.DocReceipt:         {table: "receipts", idCol: "receipt_id"},
	domain.DocStockAdjustment: {table: "stock_adjustments", idCol: "adjustment_id"},
}

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for posting batches and
// ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// SaveBatch persists a posting batch, its entries, the account balance
// updates, the document status transition and the customer/stock side effects
// inside one database transaction.
func (r *PgxLedgerRepository) SaveBatch(ctx context.Context, batch domain.PostingBatch, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, transition domain.StatusTransition, effects domain.PostingEffects) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Conditional document status flip. Zero rows means a concurrent
	// request already transitioned the document; the whole batch aborts.
	if transition.DocumentID != "" {
		target, ok := statusTables[transition.DocumentType]
		if !ok {
			return apperrors.NewAppError(500, "no status table for document type "+string(transition.DocumentType), nil)
		}
		query := `UPDATE ` + target.table + ` SET status = $1, last_updated_at = $2, last_updated_by = $3 WHERE ` + target.idCol + ` = $4 AND status = $5;`
		tag, err := tx.Exec(ctx, query, string(transition.To), batch.CreatedAt, batch.CreatedBy, transition.DocumentID, string(transition.From))
		if err != nil {
			return apperrors.NewAppError(500, "failed to transition document status", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewAppError(409, "document already transitioned", apperrors.ErrConflict)
		}
	}

	// 2. For reversals, mark the original header. Zero rows means the batch
	// was already reversed by a concurrent request.
	if batch.IsReversal() {
		tag, err := tx.Exec(ctx,
			`UPDATE posting_batches SET reversing_batch_id = $1, last_updated_at = $2, last_updated_by = $3 WHERE general_ledger_id = $4 AND reversing_batch_id IS NULL;`,
			batch.BatchID, batch.CreatedAt, batch.CreatedBy, *batch.OriginalBatchID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark original batch reversed", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewAppError(409, "batch already reversed", apperrors.ErrConflict)
		}
	}

	// 3. Insert the batch header.
	m := mapping.ToModelPostingBatch(batch)
	_, err = tx.Exec(ctx, `
		INSERT INTO posting_batches (`+batchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13, $14, $15);`,
		m.BatchID, m.CompanyID, m.DocumentID, m.ReferenceNumber, m.TransactionType,
		m.TransactionDate, m.CurrencyCode, m.ExchangeRate, m.Description,
		m.OriginalBatchID, m.ReversingBatchID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert posting batch "+m.BatchID, err)
	}

	// 4. Lock the affected accounts, then apply the balance deltas.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, batch.CreatedBy, batch.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 5. Insert the entries in rule-set order.
	entryBatch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NULLIF($16, ''), $17, $18, $19, $20);`
	for _, entry := range entries {
		em := mapping.ToModelLedgerEntry(entry)
		entryBatch.Queue(entryQuery,
			em.EntryID, em.BatchID, em.CompanyID, em.AccountID, em.AccountCode,
			em.AccountName, em.AccountRole, em.AccountNature, em.Amount, em.ExchangeRate,
			em.EquivalentDebitAmount, em.EquivalentCreditAmount, em.ReferenceNumber,
			em.TransactionType, em.TransactionDate, em.Notes,
			em.CreatedAt, em.CreatedBy, em.LastUpdatedAt, em.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, entryBatch)
	for range entries {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return apperrors.NewAppError(500, "failed to insert ledger entry", err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to flush ledger entry batch", err)
	}

	// 6. Customer balance and stock quantity side effects commit with the
	// batch or not at all.
	if effects.CustomerID != "" && !effects.CustomerBalanceDelta.IsZero() {
		tag, err := tx.Exec(ctx,
			`UPDATE customers SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3 WHERE customer_id = $4;`,
			effects.CustomerBalanceDelta, batch.CreatedAt, batch.CreatedBy, effects.CustomerID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update customer balance", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewAppError(500, "customer "+effects.CustomerID+" not found", apperrors.ErrNotFound)
		}
	}
	if len(effects.StockDeltas) > 0 {
		stockBatch := &pgx.Batch{}
		for productID, delta := range effects.StockDeltas {
			stockBatch.Queue(
				`UPDATE products SET stock_quantity = stock_quantity + $1, last_updated_at = $2, last_updated_by = $3 WHERE product_id = $4;`,
				delta, batch.CreatedAt, batch.CreatedBy, productID,
			)
		}
		stockResults := tx.SendBatch(ctx, stockBatch)
		for range effects.StockDeltas {
			tag, err := stockResults.Exec()
			if err != nil {
				stockResults.Close()
				return apperrors.NewAppError(500, "failed to update product stock", err)
			}
			if tag.RowsAffected() == 0 {
				stockResults.Close()
				return apperrors.NewAppError(500, "product not found during stock update", apperrors.ErrNotFound)
			}
		}
		if err := stockResults.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to flush stock update batch", err)
		}
	}

	return r.Commit(ctx, tx)
}

func scanBatch(row pgx.Row) (*models.PostingBatch, error) {
	var m models.PostingBatch
	var description *string
	err := row.Scan(
		&m.BatchID, &m.CompanyID, &m.DocumentID, &m.ReferenceNumber, &m.TransactionType,
		&m.TransactionDate, &m.CurrencyCode, &m.ExchangeRate, &description,
		&m.OriginalBatchID, &m.ReversingBatchID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		m.Description = *description
	}
	return &m, nil
}

func scanEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	var notes *string
	err := row.Scan(
		&m.EntryID, &m.BatchID, &m.CompanyID, &m.AccountID, &m.AccountCode,
		&m.AccountName, &m.AccountRole, &m.AccountNature, &m.Amount, &m.ExchangeRate,
		&m.EquivalentDebitAmount, &m.EquivalentCreditAmount, &m.ReferenceNumber,
		&m.TransactionType, &m.TransactionDate, &notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		m.Notes = *notes
	}
	return &m, nil
}

// FindBatchByID retrieves a posting batch header by its general ledger id.
func (r *PgxLedgerRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.PostingBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM posting_batches WHERE general_ledger_id = $1;`
	m, err := scanBatch(r.Pool.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find posting batch", err)
	}
	batch := mapping.ToDomainPostingBatch(*m)
	return &batch, nil
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger entries", err)
	}
	return entries, nil
}

// FindEntriesByBatchID retrieves the entries of one batch in insertion order.
func (r *PgxLedgerRepository) FindEntriesByBatchID(ctx context.Context, batchID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE general_ledger_id = $1 ORDER BY created_at, entry_id;`
	return r.queryEntries(ctx, query, batchID)
}

// ListEntriesByReference retrieves entries sharing a reference number within
// a company.
func (r *PgxLedgerRepository) ListEntriesByReference(ctx context.Context, companyID string, referenceNumber string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE company_id = $1 AND reference_number = $2 ORDER BY transaction_date, created_at, entry_id;`
	return r.queryEntries(ctx, query, companyID, referenceNumber)
}

// ListEntriesByAccount retrieves a paginated account statement using
// token-based pagination over (transaction_date, created_at).
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, companyID string, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := []any{companyID, accountID}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE company_id = $1 AND account_id = $2`

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		query += ` AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, txnDate, createdAt)
	}

	query += ` ORDER BY transaction_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit+1)

	entries, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		encoded := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &encoded
	}
	return entries, token, nil
}

// ListBatchTotalsSince returns per-batch debit/credit totals for all batches
// of a company posted on or after the given date.
func (r *PgxLedgerRepository) ListBatchTotalsSince(ctx context.Context, companyID string, since time.Time) ([]domain.BatchTotals, error) {
	query := `
		SELECT e.general_ledger_id, b.reference_number, b.transaction_type,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.account_nature = 'debit'), 0) AS total_debit,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.account_nature = 'credit'), 0) AS total_credit
		FROM ledger_entries e
		JOIN posting_batches b ON b.general_ledger_id = e.general_ledger_id
		WHERE e.company_id = $1 AND b.transaction_date >= $2
		GROUP BY e.general_ledger_id, b.reference_number, b.transaction_type
		ORDER BY b.reference_number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, since)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate batch totals", err)
	}
	defer rows.Close()

	var totals []domain.BatchTotals
	for rows.Next() {
		var t domain.BatchTotals
		var transactionType string
		if err := rows.Scan(&t.BatchID, &t.ReferenceNumber, &transactionType, &t.TotalDebit, &t.TotalCredit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan batch totals", err)
		}
		t.TransactionType = domain.DocumentType(transactionType)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate batch totals", err)
	}
	return totals, nil
}

// ListSalesPostingSummaries returns role-attributed sums per sales invoice
// batch. Receivable gross counts receivable debits plus cash applied at
// posting time, matching the expected receivable formula.
func (r *PgxLedgerRepository) ListSalesPostingSummaries(ctx context.Context, companyID string, since time.Time) ([]domain.SalesPostingSummary, error) {
	query := `
		SELECT e.general_ledger_id, b.reference_number,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.account_role = 'INCOME' AND e.account_nature = 'credit'), 0) AS revenue,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.account_role = 'DISCOUNT_ALLOWED' AND e.account_nature = 'debit'), 0) AS discount,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.account_role = 'TAX_PAYABLE' AND e.account_nature = 'credit'), 0) AS tax,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.account_role = 'WHT_RECEIVABLE' AND e.account_nature = 'debit'), 0) AS wht,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.account_role = 'RECEIVABLE' AND e.account_nature = 'debit'), 0)
		         + COALESCE(SUM(e.amount) FILTER (WHERE e.account_role = 'CASH' AND e.account_nature = 'debit'), 0)
		         - COALESCE(SUM(e.amount) FILTER (WHERE e.account_role = 'RECEIVABLE' AND e.account_nature = 'credit'), 0) AS receivable_gross
		FROM ledger_entries e
		JOIN posting_batches b ON b.general_ledger_id = e.general_ledger_id
		WHERE e.company_id = $1 AND b.transaction_type = 'SALES_INVOICE'
		  AND b.original_batch_id IS NULL AND b.transaction_date >= $2
		GROUP BY e.general_ledger_id, b.reference_number
		ORDER BY b.reference_number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, since)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate sales posting summaries", err)
	}
	defer rows.Close()

	var summaries []domain.SalesPostingSummary
	for rows.Next() {
		var s domain.SalesPostingSummary
		if err := rows.Scan(&s.BatchID, &s.ReferenceNumber, &s.Revenue, &s.Discount, &s.Tax, &s.WHT, &s.ReceivableGross); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sales posting summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate sales posting summaries", err)
	}
	return summaries, nil
}

// ListTaxConfigurationGaps returns references of approved sales invoices
// carrying tax whose batch has no tax entry.
func (r *PgxLedgerRepository) ListTaxConfigurationGaps(ctx context.Context, companyID string, since time.Time) ([]string, error) {
	query := `
		SELECT i.reference_number
		FROM sales_invoices i
		WHERE i.company_id = $1 AND i.status = 'APPROVED' AND i.tax_amount > 0
		  AND i.invoice_date >= $2
		  AND NOT EXISTS (
		      SELECT 1 FROM ledger_entries e
		      WHERE e.company_id = i.company_id
		        AND e.reference_number = i.reference_number
		        AND e.account_role = 'TAX_PAYABLE'
		  )
		ORDER BY i.reference_number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, since)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax configuration gaps", err)
	}
	defer rows.Close()

	var references []string
	for rows.Next() {
		var reference string
		if err := rows.Scan(&reference); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax configuration gap", err)
		}
		references = append(references, reference)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate tax configuration gaps", err)
	}
	return references, nil
}
