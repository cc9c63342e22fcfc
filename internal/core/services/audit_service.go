package services

import (
	"context"
	"fmt"
	"time"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/middleware"
	"github.com/poslite/poslite_backend/internal/utils/accounting"
)

// auditService runs the read-only balance and consistency checks.
type auditService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	companySvc portssvc.CompanySvcFacade
}

// NewAuditService creates a new audit service.
func NewAuditService(ledgerRepo portsrepo.LedgerRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.AuditSvcFacade {
	return &auditService{
		ledgerRepo: ledgerRepo,
		companySvc: companySvc,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// VerifyBatch recomputes the debit/credit totals of one batch.
func (s *auditService) VerifyBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.BatchVerification, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	batch, err := s.ledgerRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find batch %s: %w", batchID, err)
	}
	if batch.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	entries, err := s.ledgerRepo.FindEntriesByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for batch %s: %w", batchID, err)
	}

	return VerifyEntries(batchID, entries), nil
}

// VerifyEntries checks the balance invariant over a set of entries. Exported
// for use by the posting path's pre-commit check in tests.
func VerifyEntries(batchID string, entries []domain.LedgerEntry) *domain.BatchVerification {
	totalDebit, totalCredit := accounting.SumByNature(entries)
	return &domain.BatchVerification{
		BatchID:     batchID,
		Balanced:    accounting.IsBalanced(totalDebit, totalCredit),
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Delta:       totalDebit.Sub(totalCredit),
	}
}

// ScanForImbalance sweeps all batches posted on or after the given date and
// reports every finding: hard balance violations at HIGH severity, receivable
// consistency drift and tax configuration gaps at MEDIUM.
func (s *auditService) ScanForImbalance(ctx context.Context, companyID string, since time.Time, userID string) ([]domain.AuditFinding, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	detectedAt := time.Now()
	findings := []domain.AuditFinding{}

	totals, err := s.ledgerRepo.ListBatchTotalsSince(ctx, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch totals: %w", err)
	}
	for _, batch := range totals {
		if accounting.IsBalanced(batch.TotalDebit, batch.TotalCredit) {
			continue
		}
		delta := batch.TotalDebit.Sub(batch.TotalCredit)
		findings = append(findings, domain.AuditFinding{
			CompanyID:       companyID,
			BatchID:         batch.BatchID,
			ReferenceNumber: batch.ReferenceNumber,
			CheckType:       domain.CheckBatchBalance,
			Severity:        domain.SeverityHigh,
			Detail:          fmt.Sprintf("batch debits %s do not equal credits %s", batch.TotalDebit.StringFixed(2), batch.TotalCredit.StringFixed(2)),
			TotalDebit:      batch.TotalDebit,
			TotalCredit:     batch.TotalCredit,
			Delta:           delta,
			DetectedAt:      detectedAt,
		})
	}

	summaries, err := s.ledgerRepo.ListSalesPostingSummaries(ctx, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales posting summaries: %w", err)
	}
	for _, summary := range summaries {
		expected := summary.Revenue.Sub(summary.Discount).Add(summary.Tax).Sub(summary.WHT)
		if accounting.IsBalanced(expected, summary.ReceivableGross) {
			continue
		}
		findings = append(findings, domain.AuditFinding{
			CompanyID:       companyID,
			BatchID:         summary.BatchID,
			ReferenceNumber: summary.ReferenceNumber,
			CheckType:       domain.CheckReceivableConsistency,
			Severity:        domain.SeverityMedium,
			Detail:          fmt.Sprintf("expected receivable %s, posted %s", expected.StringFixed(2), summary.ReceivableGross.StringFixed(2)),
			TotalDebit:      summary.ReceivableGross,
			TotalCredit:     expected,
			Delta:           summary.ReceivableGross.Sub(expected),
			DetectedAt:      detectedAt,
		})
	}

	gaps, err := s.ledgerRepo.ListTaxConfigurationGaps(ctx, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax configuration gaps: %w", err)
	}
	for _, reference := range gaps {
		findings = append(findings, domain.AuditFinding{
			CompanyID:       companyID,
			ReferenceNumber: reference,
			CheckType:       domain.CheckTaxConfiguration,
			Severity:        domain.SeverityMedium,
			Detail:          "invoice carries tax but its batch has no tax entry",
			DetectedAt:      detectedAt,
		})
	}

	logger.Info("Ledger audit scan completed", "companyID", companyID, "since", since, "findings", len(findings))
	return findings, nil
}
