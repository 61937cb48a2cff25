package repositories

import (
	"context"
	"time"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// BudgetRequestListFilter narrows ListBudgetRequests results.
type BudgetRequestListFilter struct {
	Status      *domain.BudgetRequestStatus
	CommunityID *string
}

// BudgetRequestReader defines read operations for budget request data
type BudgetRequestReader interface {
	// FindBudgetRequestByID retrieves a specific budget request.
	FindBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error)

	// ListBudgetRequests retrieves budget requests matching the filter, newest first.
	ListBudgetRequests(ctx context.Context, filter BudgetRequestListFilter) ([]domain.BudgetRequest, error)
}

// BudgetRequestWriter defines write operations for budget request data
type BudgetRequestWriter interface {
	// SaveBudgetRequest persists a new budget request.
	SaveBudgetRequest(ctx context.Context, request domain.BudgetRequest) error

	// UpdateBudgetRequest persists edits to a still-pending budget request.
	// Returns apperrors.ErrInvalidTransition when the row has been decided.
	UpdateBudgetRequest(ctx context.Context, request domain.BudgetRequest) error
}

// BudgetRequestLifecycleWriter applies the approve/reject decision. The status
// update and the timeline insert happen in one database transaction, guarded
// on the row still being pending.
type BudgetRequestLifecycleWriter interface {
	// ApplyBudgetRequestDecision writes the decided request (status,
	// approved_amount, decided_at, rejection_reason, approval_notes) and
	// appends the timeline event. Returns apperrors.ErrInvalidTransition when
	// the row is no longer pending.
	ApplyBudgetRequestDecision(ctx context.Context, request domain.BudgetRequest, event domain.TimelineEvent) error
}

// BudgetRequestRepositoryFacade combines all budget-request repository interfaces
type BudgetRequestRepositoryFacade interface {
	BudgetRequestReader
	BudgetRequestWriter
	BudgetRequestLifecycleWriter
}

// BudgetListFilter narrows ListBudgets results. When both From and To are set,
// only budgets whose period overlaps the window are returned.
type BudgetListFilter struct {
	Category *string
	From     *time.Time
	To       *time.Time
}

// BudgetReader defines read operations for budget targets
type BudgetReader interface {
	// ListBudgets retrieves all budget targets whose period overlaps [from, to].
	ListBudgets(ctx context.Context, filter BudgetListFilter) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget targets
type BudgetWriter interface {
	// SaveBudget persists a new budget target.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget persists edits to a budget target.
	UpdateBudget(ctx context.Context, budget domain.Budget) error
}

// BudgetRepositoryFacade combines budget-target repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
