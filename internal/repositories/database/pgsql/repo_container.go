package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every pgx-backed repository over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DonationRepo:      newPgxDonationRepository(pool),
		ExpenseRepo:       newPgxExpenseRepository(pool),
		BudgetRequestRepo: newPgxBudgetRequestRepository(pool),
		BudgetRepo:        newPgxBudgetRepository(pool),
		TimelineRepo:      newPgxTimelineRepository(pool),
	}
}
