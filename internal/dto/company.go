package dto

import (
	"time"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a company.
type CreateCompanyRequest struct {
	Name             string `json:"name" binding:"required"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"required,len=3"`
}

// AddUserToCompanyRequest grants a user a role in a company.
type AddUserToCompanyRequest struct {
	UserID string             `json:"userID" binding:"required"`
	Role   domain.CompanyRole `json:"role" binding:"required,oneof=OWNER MEMBER READ_ONLY"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID        string    `json:"companyID"`
	Name             string    `json:"name"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO
func ToCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:        company.CompanyID,
		Name:             company.Name,
		BaseCurrencyCode: company.BaseCurrencyCode,
		IsActive:         company.IsActive,
		CreatedAt:        company.CreatedAt,
	}
}

// ToCompanyResponseSlice converts a slice of domain companies.
func ToCompanyResponseSlice(companies []domain.Company) []CompanyResponse {
	responses := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, ToCompanyResponse(&companies[i]))
	}
	return responses
}
