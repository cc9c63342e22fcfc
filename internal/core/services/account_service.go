package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/middleware"
)

var (
	ErrAccountCodeTaken = errors.New("account code already in use")
	ErrAccountCycle     = errors.New("account parent chain forms a cycle")
)

// maxAccountDepth bounds the parent chain walk so a corrupted tree cannot
// loop forever.
const maxAccountDepth = 32

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		companySvc:  companySvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, account domain.Account, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	if account.Code == "" || account.Name == "" {
		return nil, apperrors.NewValidationError("account code and name are required")
	}
	switch account.Category {
	case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid account category %q", account.Category))
	}
	if account.Nature != domain.NatureDebit && account.Nature != domain.NatureCredit {
		account.Nature = domain.NormalNature(account.Category)
	}

	// Codes are unique within the company, never globally.
	existing, err := s.accountRepo.FindAccountByCode(ctx, companyID, account.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewAppError(409, ErrAccountCodeTaken.Error(), apperrors.ErrDuplicate)
	}

	now := time.Now()
	account.AccountID = uuid.NewString()
	account.CompanyID = companyID
	account.IsActive = true
	account.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.validateParentChain(ctx, companyID, account.AccountID, account.ParentAccountID); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", "accountID", account.AccountID, "code", account.Code)
	return &account, nil
}

// validateParentChain walks up from parentID and rejects missing parents,
// cross-company parents and cycles.
func (s *accountService) validateParentChain(ctx context.Context, companyID string, accountID string, parentID string) error {
	visited := map[string]struct{}{accountID: {}}
	current := parentID
	for depth := 0; current != ""; depth++ {
		if depth >= maxAccountDepth {
			return apperrors.NewValidationError(ErrAccountCycle.Error())
		}
		if _, seen := visited[current]; seen {
			return apperrors.NewValidationError(ErrAccountCycle.Error())
		}
		visited[current] = struct{}{}

		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError(fmt.Sprintf("parent account %s not found", current))
			}
			return fmt.Errorf("failed to load parent account: %w", err)
		}
		if parent.CompanyID != companyID {
			return apperrors.NewValidationError("parent account belongs to another company")
		}
		current = parent.ParentAccountID
	}
	return nil
}

// GetAccountByID retrieves an account, enforcing company scope.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its company-scoped code.
func (s *accountService) GetAccountByCode(ctx context.Context, companyID string, code string, userID string) (*domain.Account, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByCode(ctx, companyID, code)
}

// ListAccounts retrieves accounts for a company.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int, userID string) ([]domain.Account, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
}

// UpdateAccount updates mutable account details.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, account domain.Account, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByID(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}
	if existing.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	// Category and nature are frozen; changing them would re-sign historic
	// balance deltas.
	if account.Name != "" {
		existing.Name = account.Name
	}
	existing.Description = account.Description
	if account.ParentAccountID != existing.ParentAccountID {
		if err := s.validateParentChain(ctx, companyID, existing.AccountID, account.ParentAccountID); err != nil {
			return nil, err
		}
		existing.ParentAccountID = account.ParentAccountID
	}
	existing.LastUpdatedAt = time.Now()
	existing.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", "accountID", existing.AccountID)
	return existing, nil
}

// DeactivateAccount soft-deletes an account.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return err
	}

	existing, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if existing.CompanyID != companyID {
		return apperrors.ErrNotFound
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", "accountID", accountID)
	return nil
}
