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
)

// budgetService manages budget collection targets.
type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget validates and persists a new budget target.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetTargetRequest, creatorUserID string) (*domain.Budget, error) {
	if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end must be after period start", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:        uuid.NewString(),
		Category:        req.Category,
		TargetAmount:    req.TargetAmount,
		CollectedAmount: decimal.Zero,
		PeriodStart:     req.PeriodStart,
		PeriodEnd:       req.PeriodEnd,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget")
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID), slog.String("category", budget.Category))
	return &budget, nil
}

// ListBudgets retrieves budget targets matching the query parameters.
func (s *budgetService) ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	filter := portsrepo.BudgetListFilter{From: params.From, To: params.To}
	if params.Category != "" {
		filter.Category = &params.Category
	}
	return s.budgetRepo.ListBudgets(ctx, filter)
}
