package repositories

import (
	"context"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// DocumentReader defines read operations for commercial documents.
type DocumentReader interface {
	// FindSalesInvoiceByID retrieves an invoice with its line items.
	FindSalesInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error)

	// FindReceiptByID retrieves a receipt.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// FindStockAdjustmentByID retrieves a stock adjustment with its lines.
	FindStockAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.StockAdjustment, error)

	// ListSalesInvoices retrieves a paginated list of invoices for a company
	// using token-based pagination.
	ListSalesInvoices(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SalesInvoice, *string, error)
}

// DocumentWriter defines write operations for draft documents. Status
// transitions at posting time go through the ledger writer, never here.
type DocumentWriter interface {
	// SaveSalesInvoice persists a new draft invoice and its line items.
	SaveSalesInvoice(ctx context.Context, invoice domain.SalesInvoice) error

	// SaveReceipt persists a new draft receipt.
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error

	// SaveStockAdjustment persists a new draft stock adjustment and its lines.
	SaveStockAdjustment(ctx context.Context, adjustment domain.StockAdjustment) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
