package services

import (
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
)

// NewServiceProvider wires all services with their repository dependencies.
func NewServiceProvider(repos portsrepo.RepositoryProvider) *portssvc.ServiceProvider {
	provider := &portssvc.ServiceProvider{}

	// Company service first since most services authorize through it.
	provider.CompanySvc = NewCompanyService(repos.CompanyRepo, repos.CurrencyRepo)

	provider.CurrencySvc = NewCurrencyService(repos.CurrencyRepo)
	provider.ExchangeRateSvc = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo)
	provider.UserSvc = NewUserService(repos.UserRepo)
	provider.AccountSvc = NewAccountService(repos.AccountRepo, provider.CompanySvc)
	provider.DocumentSvc = NewDocumentService(repos.DocumentRepo, provider.CompanySvc)
	provider.PostingSvc = NewPostingService(repos.LedgerRepo, repos.AccountRepo, repos.DocumentRepo, provider.ExchangeRateSvc, provider.CompanySvc)
	provider.AuditSvc = NewAuditService(repos.LedgerRepo, provider.CompanySvc)
	provider.LedgerSvc = NewLedgerService(repos.LedgerRepo, repos.AccountRepo, provider.CompanySvc)

	return provider
}
