package services

import (
	"context"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// PostingSvcFacade defines the operations that turn approved documents into
// balanced ledger entry batches.
type PostingSvcFacade interface {
	// ApproveSalesInvoice posts a draft sales invoice. The invoice status
	// moves to APPROVED and a balanced ledger batch is written atomically.
	ApproveSalesInvoice(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.PostingBatch, error)

	// ApproveReceipt posts a draft receipt against a customer balance.
	ApproveReceipt(ctx context.Context, companyID string, receiptID string, userID string) (*domain.PostingBatch, error)

	// ApproveStockAdjustment posts a draft stock adjustment.
	ApproveStockAdjustment(ctx context.Context, companyID string, adjustmentID string, userID string) (*domain.PostingBatch, error)

	// PostManualJournal posts a caller-supplied set of journal lines. The
	// lines must balance; no account resolution is applied.
	PostManualJournal(ctx context.Context, companyID string, journal domain.ManualJournal, userID string) (*domain.PostingBatch, error)

	// ReverseBatch voids a posted document by writing a mirror batch whose
	// entries flip the natures of the persisted originals.
	ReverseBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.PostingBatch, error)
}
