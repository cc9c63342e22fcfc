package services

import (
	"context"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// CompanySvcFacade defines operations for tenant management and authorization.
type CompanySvcFacade interface {
	// CreateCompany creates a company and makes the creator its owner.
	CreateCompany(ctx context.Context, company domain.Company, creatorUserID string) (*domain.Company, error)

	// GetCompanyByID retrieves a company the user belongs to.
	GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error)

	// ListUserCompanies retrieves all companies the user belongs to.
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)

	// AddUserToCompany grants a user a role in a company. Caller must be owner.
	AddUserToCompany(ctx context.Context, companyID string, callerUserID string, targetUserID string, role domain.CompanyRole) error

	// AuthorizeUserAction verifies the user holds at least requiredRole in the
	// company, returning ErrForbidden otherwise.
	AuthorizeUserAction(ctx context.Context, companyID string, userID string, requiredRole domain.CompanyRole) error
}
