package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		LedgerRepo:       newPgxLedgerRepository(pool, accountRepo),
		DocumentRepo:     newPgxDocumentRepository(pool),
		CompanyRepo:      newPgxCompanyRepository(pool),
		CurrencyRepo:     newPgxCurrencyRepository(pool),
		ExchangeRateRepo: newPgxExchangeRateRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
	}
}
