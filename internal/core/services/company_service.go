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

// companyService manages tenants and membership-based authorization.
type companyService struct {
	companyRepo  portsrepo.CompanyRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a company and makes the creator its owner.
func (s *companyService) CreateCompany(ctx context.Context, company domain.Company, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if company.Name == "" {
		return nil, apperrors.NewValidationError("company name is required")
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, company.BaseCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown base currency %q", company.BaseCurrencyCode))
		}
		return nil, fmt.Errorf("failed to check base currency: %w", err)
	}

	now := time.Now()
	company.CompanyID = uuid.NewString()
	company.IsActive = true
	company.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	membership := domain.CompanyMembership{
		CompanyID:   company.CompanyID,
		UserID:      creatorUserID,
		Role:        domain.RoleOwner,
		AuditFields: company.AuditFields,
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to add creator to company: %w", err)
	}

	logger.Info("Company created", "companyID", company.CompanyID)
	return &company, nil
}

// GetCompanyByID retrieves a company the user belongs to.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// ListUserCompanies retrieves all companies the user belongs to.
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	return s.companyRepo.ListCompaniesByUserID(ctx, userID)
}

// AddUserToCompany grants a user a role in a company. Caller must be owner.
func (s *companyService) AddUserToCompany(ctx context.Context, companyID string, callerUserID string, targetUserID string, role domain.CompanyRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, companyID, callerUserID, domain.RoleOwner); err != nil {
		return err
	}
	switch role {
	case domain.RoleOwner, domain.RoleMember, domain.RoleReadOnly:
	default:
		return apperrors.NewValidationError(fmt.Sprintf("invalid company role %q", role))
	}

	now := time.Now()
	membership := domain.CompanyMembership{
		CompanyID: companyID,
		UserID:    targetUserID,
		Role:      role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     callerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: callerUserID,
		},
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		return fmt.Errorf("failed to add user to company: %w", err)
	}

	logger.Info("User added to company", "companyID", companyID, "targetUserID", targetUserID, "role", role)
	return nil
}

// AuthorizeUserAction verifies the user holds at least requiredRole in the
// company.
func (s *companyService) AuthorizeUserAction(ctx context.Context, companyID string, userID string, requiredRole domain.CompanyRole) error {
	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to check company membership: %w", err)
	}
	if !membership.Role.CanPerform(requiredRole) {
		return apperrors.ErrForbidden
	}
	return nil
}
