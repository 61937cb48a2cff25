package repositories

import (
	"context"
	"time"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// ExpenseListFilter narrows ListExpenses results. Nil fields are ignored;
// set fields combine with AND.
type ExpenseListFilter struct {
	Status   *domain.ExpenseStatus
	Category *domain.ExpenseCategory
	From     *time.Time // inclusive, on expense_date
	To       *time.Time // inclusive, on expense_date
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the filter, newest first.
	ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense persists edits to an expense's own fields. Status and
	// approval columns are owned by ApplyExpenseTransition.
	UpdateExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseLifecycleWriter applies approval-lifecycle transitions. The status
// update and the timeline insert happen in one database transaction, guarded
// on the row still holding fromStatus.
type ExpenseLifecycleWriter interface {
	// ApplyExpenseTransition writes the transitioned expense (status,
	// rejection_reason, approval_date) and appends the timeline event.
	// Returns apperrors.ErrInvalidTransition when the row left fromStatus
	// since it was read.
	ApplyExpenseTransition(ctx context.Context, expense domain.Expense, fromStatus domain.ExpenseStatus, event domain.TimelineEvent) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseLifecycleWriter
}
