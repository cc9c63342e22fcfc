package repositories

// RepositoryProvider bundles all repository facades so wiring code can pass
// a single dependency into the service layer.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	DocumentRepo     DocumentRepositoryFacade
	CompanyRepo      CompanyRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	UserRepo         UserRepositoryFacade
}
