package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/dto"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

// expenseService owns expense record CRUD. Status and approval columns are
// owned by the lifecycle service.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	publisher   events.Publisher
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, publisher events.Publisher) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		publisher:   publisher,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense validates and persists a new expense in the pending state.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Description: req.Description,
		Vendor:      req.Vendor,
		Amount:      req.Amount,
		Category:    domain.ExpenseCategory(req.Category),
		Status:      domain.ExpensePending,
		ExpenseDate: req.ExpenseDate,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableExpenses, Op: events.OpCreate})
	s.LogInfo(ctx, "Expense created", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

// GetExpenseByID retrieves an expense by its ID.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

// ListExpenses retrieves expenses matching the query parameters.
func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	filter := portsrepo.ExpenseListFilter{From: params.From, To: params.To}
	if params.Status != "" {
		status := domain.ExpenseStatus(params.Status)
		filter.Status = &status
	}
	if params.Category != "" {
		category := domain.ExpenseCategory(params.Category)
		filter.Category = &category
	}
	return s.expenseRepo.ListExpenses(ctx, filter)
}

// UpdateExpense edits an expense's own fields. Decided expenses keep their
// amounts frozen so approvals stay meaningful.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, updaterUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil && expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: amount can only change while the expense is pending", apperrors.ErrValidation)
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = domain.ExpenseCategory(*req.Category)
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}

	if expense.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	expense.LastUpdatedAt = time.Now().UTC()
	expense.LastUpdatedBy = updaterUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.publisher.Publish(events.ChangeEvent{Table: events.TableExpenses, Op: events.OpUpdate})
	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}
