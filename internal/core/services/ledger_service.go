package services

import (
	"context"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
)

// ledgerService is the read side of the posted ledger.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewLedgerService creates a new ledger read service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		companySvc:  companySvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetBatchByID retrieves a posting batch header.
func (s *ledgerService) GetBatchByID(ctx context.Context, companyID string, batchID string, userID string) (*domain.PostingBatch, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	batch, err := s.ledgerRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return batch, nil
}

// GetBatchEntries retrieves the entries of one batch.
func (s *ledgerService) GetBatchEntries(ctx context.Context, companyID string, batchID string, userID string) ([]domain.LedgerEntry, error) {
	batch, err := s.GetBatchByID(ctx, companyID, batchID, userID)
	if err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindEntriesByBatchID(ctx, batch.BatchID)
}

// ListEntriesByAccount retrieves a paginated account statement.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, companyID string, accountID string, limit int, nextToken *string, userID string) ([]domain.LedgerEntry, *string, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if account.CompanyID != companyID {
		return nil, nil, apperrors.ErrNotFound
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.ledgerRepo.ListEntriesByAccount(ctx, companyID, accountID, limit, nextToken)
}
