package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	"github.com/poslite/poslite_backend/internal/models"
	"github.com/poslite/poslite_backend/internal/utils/mapping"
)

const companyColumns = `company_id, name, base_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for companies and
// memberships.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// SaveCompany persists a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.BaseCurrencyCode, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert company", err)
	}
	return nil
}

// FindCompanyByID retrieves a specific company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	var m models.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID, &m.Name, &m.BaseCurrencyCode, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company", err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// ListCompaniesByUserID retrieves all companies a user belongs to.
func (r *PgxCompanyRepository) ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `
		SELECT c.company_id, c.name, c.base_currency_code, c.is_active,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM companies c
		JOIN company_users cu ON cu.company_id = c.company_id
		WHERE cu.user_id = $1
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list companies", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var m models.Company
		if err := rows.Scan(
			&m.CompanyID, &m.Name, &m.BaseCurrencyCode, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company", err)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate companies", err)
	}
	return companies, nil
}

// AddUserToCompany adds a user to a company with a specific role.
func (r *PgxCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.CompanyMembership) error {
	query := `
		INSERT INTO company_users (company_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.Pool.Exec(ctx, query,
		membership.CompanyID, membership.UserID, string(membership.Role),
		membership.CreatedAt, membership.CreatedBy, membership.LastUpdatedAt, membership.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "user already belongs to company", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to add user to company", err)
	}
	return nil
}

// FindUserCompanyRole retrieves the role of a user in a company.
func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.CompanyMembership, error) {
	query := `
		SELECT company_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by
		FROM company_users
		WHERE user_id = $1 AND company_id = $2;`
	var m models.CompanyMembership
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(
		&m.CompanyID, &m.UserID, &m.Role,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company membership", err)
	}
	membership := mapping.ToDomainMembership(m)
	return &membership, nil
}
