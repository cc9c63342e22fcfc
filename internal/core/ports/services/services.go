package services

// ServiceProvider bundles all service facades for handler wiring.
type ServiceProvider struct {
	PostingSvc      PostingSvcFacade
	AuditSvc        AuditSvcFacade
	AccountSvc      AccountSvcFacade
	CompanySvc      CompanySvcFacade
	CurrencySvc     CurrencySvcFacade
	ExchangeRateSvc ExchangeRateSvcFacade
	DocumentSvc     DocumentSvcFacade
	LedgerSvc       LedgerSvcFacade
	UserSvc         UserSvcFacade
}
