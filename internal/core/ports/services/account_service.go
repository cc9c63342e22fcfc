package services

import (
	"context"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// AccountSvcFacade defines operations for chart-of-accounts management.
type AccountSvcFacade interface {
	// CreateAccount validates and persists a new account. The code must be
	// unique within the company and the parent chain must stay acyclic.
	CreateAccount(ctx context.Context, companyID string, account domain.Account, userID string) (*domain.Account, error)

	// GetAccountByID retrieves an account, enforcing company scope.
	GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its company-scoped code.
	GetAccountByCode(ctx context.Context, companyID string, code string, userID string) (*domain.Account, error)

	// ListAccounts retrieves accounts for a company.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int, userID string) ([]domain.Account, error)

	// UpdateAccount updates mutable account details. Category and nature are
	// frozen once the account has ledger entries.
	UpdateAccount(ctx context.Context, companyID string, account domain.Account, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error
}
