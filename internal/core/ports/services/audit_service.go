package services

import (
	"context"
	"time"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// AuditSvcFacade defines the balance verification operations. These are
// read-only scans; they never mutate ledger data.
type AuditSvcFacade interface {
	// VerifyBatch recomputes the debit/credit totals of one posted batch and
	// reports whether they balance within tolerance.
	VerifyBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.BatchVerification, error)

	// ScanForImbalance sweeps all batches of a company posted on or after the
	// given date and returns every balance and consistency finding.
	ScanForImbalance(ctx context.Context, companyID string, since time.Time, userID string) ([]domain.AuditFinding, error)
}
