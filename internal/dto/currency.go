package dto

import "github.com/poslite/poslite_backend/internal/core/domain"

// CreateCurrencyRequest defines the payload for registering a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Symbol       string `json:"symbol" binding:"required,max=5"`
	Name         string `json:"name" binding:"required,max=100"`
}

// ToDomain converts the request to a domain currency.
func (r CreateCurrencyRequest) ToDomain() domain.Currency {
	return domain.Currency{
		CurrencyCode: r.CurrencyCode,
		Symbol:       r.Symbol,
		Name:         r.Name,
	}
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

// ToCurrencyResponse converts a domain currency to its response DTO.
func ToCurrencyResponse(currency *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: currency.CurrencyCode,
		Symbol:       currency.Symbol,
		Name:         currency.Name,
	}
}

// ToCurrencyResponseSlice converts a slice of domain currencies.
func ToCurrencyResponseSlice(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, 0, len(currencies))
	for i := range currencies {
		responses = append(responses, ToCurrencyResponse(&currencies[i]))
	}
	return responses
}
