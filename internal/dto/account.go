package dto

import (
	"time"

	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string                 `json:"code" binding:"required"`
	Name            string                 `json:"name" binding:"required"`
	Category        domain.AccountCategory `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode    string                 `json:"currencyCode" binding:"required"`
	ParentAccountID string                 `json:"parentAccountID"` // Optional
	Description     string                 `json:"description"`     // Optional
}

// ToDomain converts the request to a domain account.
func (r CreateAccountRequest) ToDomain() domain.Account {
	return domain.Account{
		Code:            r.Code,
		Name:            r.Name,
		Category:        r.Category,
		CurrencyCode:    r.CurrencyCode,
		ParentAccountID: r.ParentAccountID,
		Description:     r.Description,
	}
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ParentAccountID *string `json:"parentAccountID"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string                 `json:"accountID"`
	CompanyID       string                 `json:"companyID"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	Category        domain.AccountCategory `json:"category"`
	Nature          domain.EntryNature     `json:"nature"`
	CurrencyCode    string                 `json:"currencyCode"`
	ParentAccountID string                 `json:"parentAccountID"` // Empty string if null in DB
	Description     string                 `json:"description"`
	IsActive        bool                   `json:"isActive"`
	Balance         decimal.Decimal        `json:"balance"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       account.AccountID,
		CompanyID:       account.CompanyID,
		Code:            account.Code,
		Name:            account.Name,
		Category:        account.Category,
		Nature:          account.Nature,
		CurrencyCode:    account.CurrencyCode,
		ParentAccountID: account.ParentAccountID,
		Description:     account.Description,
		IsActive:        account.IsActive,
		Balance:         account.Balance,
		CreatedAt:       account.CreatedAt,
		LastUpdatedAt:   account.LastUpdatedAt,
	}
}

// ToAccountResponseSlice converts a slice of domain accounts.
func ToAccountResponseSlice(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToAccountResponse(&accounts[i]))
	}
	return responses
}
