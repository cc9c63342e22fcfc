package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	"github.com/poslite/poslite_backend/internal/models"
	"github.com/poslite/poslite_backend/internal/utils/mapping"
	"github.com/poslite/poslite_backend/internal/utils/pagination"
)

const invoiceColumns = `invoice_id, company_id, customer_id, reference_number, status, invoice_date, currency_code, subtotal, tax_amount, discount_amount, wht_amount, paid_amount, customer_receivable_account_id, receivable_account_id, income_account_id, cash_account_id, tax_account_id, wht_account_id, discount_account_id, created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `line_item_id, invoice_id, product_id, product_name, is_service, quantity, unit_price, average_cost, cogs_account_id, inventory_account_id, category_cogs_account_id, category_inventory_account_id`

const receiptColumns = `receipt_id, company_id, customer_id, reference_number, status, receipt_date, currency_code, amount, wht_amount, customer_receivable_account_id, receivable_account_id, cash_account_id, wht_account_id, created_at, created_by, last_updated_at, last_updated_by`

const adjustmentColumns = `adjustment_id, company_id, reference_number, status, adjustment_date, currency_code, reason, adjustment_account_id, created_at, created_by, last_updated_at, last_updated_by`

const adjustmentLineColumns = `line_id, adjustment_id, product_id, product_name, quantity_delta, unit_cost, inventory_account_id, category_inventory_account_id`

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for commercial documents.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

// nullable maps "" to nil so empty account overrides persist as NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SaveSalesInvoice persists a new draft invoice and its line items in one
// transaction.
func (r *PgxDocumentRepository) SaveSalesInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelSalesInvoice(invoice)
	_, err = tx.Exec(ctx, `
		INSERT INTO sales_invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`,
		m.InvoiceID, m.CompanyID, m.CustomerID, m.ReferenceNumber, m.Status,
		m.InvoiceDate, m.CurrencyCode, m.Subtotal, m.TaxAmount, m.DiscountAmount,
		m.WHTAmount, m.PaidAmount,
		nullable(m.CustomerReceivableAccountID), nullable(m.ReceivableAccountID),
		nullable(m.IncomeAccountID), nullable(m.CashAccountID), nullable(m.TaxAccountID),
		nullable(m.WHTAccountID), nullable(m.DiscountAccountID),
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "invoice already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	lineBatch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO sales_invoice_lines (` + invoiceLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	for _, line := range invoice.LineItems {
		lm := mapping.ToModelInvoiceLine(invoice.InvoiceID, line)
		lineBatch.Queue(lineQuery,
			lm.LineItemID, lm.InvoiceID, lm.ProductID, lm.ProductName, lm.IsService,
			lm.Quantity, lm.UnitPrice, lm.AverageCost,
			nullable(lm.COGSAccountID), nullable(lm.InventoryAccountID),
			nullable(lm.CategoryCOGSAccountID), nullable(lm.CategoryInventoryAccountID),
		)
	}
	results := tx.SendBatch(ctx, lineBatch)
	for range invoice.LineItems {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return apperrors.NewAppError(500, "failed to insert invoice line", err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to flush invoice line batch", err)
	}

	return r.Commit(ctx, tx)
}

func scanInvoice(row pgx.Row) (*models.SalesInvoice, error) {
	var m models.SalesInvoice
	var custRecv, recv, income, cash, tax, wht, discount *string
	err := row.Scan(
		&m.InvoiceID, &m.CompanyID, &m.CustomerID, &m.ReferenceNumber, &m.Status,
		&m.InvoiceDate, &m.CurrencyCode, &m.Subtotal, &m.TaxAmount, &m.DiscountAmount,
		&m.WHTAmount, &m.PaidAmount,
		&custRecv, &recv, &income, &cash, &tax, &wht, &discount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.CustomerReceivableAccountID = deref(custRecv)
	m.ReceivableAccountID = deref(recv)
	m.IncomeAccountID = deref(income)
	m.CashAccountID = deref(cash)
	m.TaxAccountID = deref(tax)
	m.WHTAccountID = deref(wht)
	m.DiscountAccountID = deref(discount)
	return &m, nil
}

func (r *PgxDocumentRepository) findInvoiceLines(ctx context.Context, invoiceID string) ([]models.InvoiceLineItem, error) {
	query := `SELECT ` + invoiceLineColumns + ` FROM sales_invoice_lines WHERE invoice_id = $1 ORDER BY line_item_id;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice lines", err)
	}
	defer rows.Close()

	var lines []models.InvoiceLineItem
	for rows.Next() {
		var lm models.InvoiceLineItem
		var cogs, inv, catCogs, catInv *string
		if err := rows.Scan(
			&lm.LineItemID, &lm.InvoiceID, &lm.ProductID, &lm.ProductName, &lm.IsService,
			&lm.Quantity, &lm.UnitPrice, &lm.AverageCost,
			&cogs, &inv, &catCogs, &catInv,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice line", err)
		}
		lm.COGSAccountID = deref(cogs)
		lm.InventoryAccountID = deref(inv)
		lm.CategoryCOGSAccountID = deref(catCogs)
		lm.CategoryInventoryAccountID = deref(catInv)
		lines = append(lines, lm)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate invoice lines", err)
	}
	return lines, nil
}

// FindSalesInvoiceByID retrieves an invoice with its line items.
func (r *PgxDocumentRepository) FindSalesInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice", err)
	}
	lines, err := r.findInvoiceLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice := mapping.ToDomainSalesInvoice(*m, lines)
	return &invoice, nil
}

// ListSalesInvoices retrieves a paginated invoice list using token-based
// pagination over (invoice_date, created_at).
func (r *PgxDocumentRepository) ListSalesInvoices(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SalesInvoice, *string, error) {
	args := []any{companyID}
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE company_id = $1`

	if nextToken != nil && *nextToken != "" {
		invoiceDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		query += ` AND (invoice_date, created_at) < ($2, $3)`
		args = append(args, invoiceDate, createdAt)
	}

	query += ` ORDER BY invoice_date DESC, created_at DESC, invoice_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list invoices", err)
	}
	defer rows.Close()

	var invoices []domain.SalesInvoice
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice", err)
		}
		// Listing omits line items; they load on demand via FindSalesInvoiceByID.
		invoices = append(invoices, mapping.ToDomainSalesInvoice(*m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate invoices", err)
	}

	var token *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		last := invoices[len(invoices)-1]
		encoded := pagination.EncodeToken(last.InvoiceDate, last.CreatedAt)
		token = &encoded
	}
	return invoices, token, nil
}

// SaveReceipt persists a new draft receipt.
func (r *PgxDocumentRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	_, err := r.Pool.Exec(ctx, query,
		m.ReceiptID, m.CompanyID, m.CustomerID, m.ReferenceNumber, m.Status,
		m.ReceiptDate, m.CurrencyCode, m.Amount, m.WHTAmount,
		nullable(m.CustomerReceivableAccountID), nullable(m.ReceivableAccountID),
		nullable(m.CashAccountID), nullable(m.WHTAccountID),
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "receipt already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert receipt "+m.ReceiptID, err)
	}
	return nil
}

// FindReceiptByID retrieves a receipt.
func (r *PgxDocumentRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1;`
	var m models.Receipt
	var custRecv, recv, cash, wht *string
	err := r.Pool.QueryRow(ctx, query, receiptID).Scan(
		&m.ReceiptID, &m.CompanyID, &m.CustomerID, &m.ReferenceNumber, &m.Status,
		&m.ReceiptDate, &m.CurrencyCode, &m.Amount, &m.WHTAmount,
		&custRecv, &recv, &cash, &wht,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find receipt", err)
	}
	m.CustomerReceivableAccountID = deref(custRecv)
	m.ReceivableAccountID = deref(recv)
	m.CashAccountID = deref(cash)
	m.WHTAccountID = deref(wht)
	receipt := mapping.ToDomainReceipt(m)
	return &receipt, nil
}

// SaveStockAdjustment persists a new draft adjustment and its lines in one
// transaction.
func (r *PgxDocumentRepository) SaveStockAdjustment(ctx context.Context, adjustment domain.StockAdjustment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelStockAdjustment(adjustment)
	_, err = tx.Exec(ctx, `
		INSERT INTO stock_adjustments (`+adjustmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12);`,
		m.AdjustmentID, m.CompanyID, m.ReferenceNumber, m.Status, m.AdjustmentDate,
		m.CurrencyCode, m.Reason, m.AdjustmentAccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "stock adjustment already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert stock adjustment "+m.AdjustmentID, err)
	}

	lineBatch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO stock_adjustment_lines (` + adjustmentLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	for _, line := range adjustment.Lines {
		lm := mapping.ToModelAdjustmentLine(adjustment.AdjustmentID, line)
		lineBatch.Queue(lineQuery,
			lm.LineID, lm.AdjustmentID, lm.ProductID, lm.ProductName,
			lm.QuantityDelta, lm.UnitCost,
			nullable(lm.InventoryAccountID), nullable(lm.CategoryInventoryAccountID),
		)
	}
	results := tx.SendBatch(ctx, lineBatch)
	for range adjustment.Lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return apperrors.NewAppError(500, "failed to insert adjustment line", err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to flush adjustment line batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindStockAdjustmentByID retrieves a stock adjustment with its lines.
func (r *PgxDocumentRepository) FindStockAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments WHERE adjustment_id = $1;`
	var m models.StockAdjustment
	var reason, adjAccount *string
	err := r.Pool.QueryRow(ctx, query, adjustmentID).Scan(
		&m.AdjustmentID, &m.CompanyID, &m.ReferenceNumber, &m.Status, &m.AdjustmentDate,
		&m.CurrencyCode, &reason, &adjAccount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stock adjustment", err)
	}
	m.Reason = deref(reason)
	m.AdjustmentAccountID = deref(adjAccount)

	rows, err := r.Pool.Query(ctx, `SELECT `+adjustmentLineColumns+` FROM stock_adjustment_lines WHERE adjustment_id = $1 ORDER BY line_id;`, adjustmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query adjustment lines", err)
	}
	defer rows.Close()

	var lines []models.AdjustmentLine
	for rows.Next() {
		var lm models.AdjustmentLine
		var inv, catInv *string
		if err := rows.Scan(
			&lm.LineID, &lm.AdjustmentID, &lm.ProductID, &lm.ProductName,
			&lm.QuantityDelta, &lm.UnitCost, &inv, &catInv,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan adjustment line", err)
		}
		lm.InventoryAccountID = deref(inv)
		lm.CategoryInventoryAccountID = deref(catInv)
		lines = append(lines, lm)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate adjustment lines", err)
	}

	adjustment := mapping.ToDomainStockAdjustment(m, lines)
	return &adjustment, nil
}
