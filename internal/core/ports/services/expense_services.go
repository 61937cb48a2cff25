package services

import (
	"context"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	"github.com/temple-trust/temple_finance_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves a specific expense by its ID.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the query parameters.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense persists a new expense in the pending state.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// UpdateExpense edits an expense's own fields; status is owned by the
	// lifecycle service.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, updaterUserID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
