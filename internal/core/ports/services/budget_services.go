package services

import (
	"context"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	"github.com/temple-trust/temple_finance_app/internal/dto"
)

// BudgetRequestReaderSvc defines read operations for budget requests
type BudgetRequestReaderSvc interface {
	// GetBudgetRequestByID retrieves a specific budget request.
	GetBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error)

	// ListBudgetRequests retrieves budget requests matching the query parameters.
	ListBudgetRequests(ctx context.Context, params dto.ListBudgetRequestsParams) ([]domain.BudgetRequest, error)
}

// BudgetRequestWriterSvc defines write operations for budget requests
type BudgetRequestWriterSvc interface {
	// CreateBudgetRequest persists a new budget request in the pending state.
	CreateBudgetRequest(ctx context.Context, req dto.CreateBudgetRequestRequest, creatorUserID string) (*domain.BudgetRequest, error)

	// UpdateBudgetRequest edits a pending budget request's own fields. Decided
	// requests are immutable.
	UpdateBudgetRequest(ctx context.Context, requestID string, req dto.UpdateBudgetRequestRequest, updaterUserID string) (*domain.BudgetRequest, error)
}

// BudgetRequestSvcFacade combines all budget-request service interfaces
type BudgetRequestSvcFacade interface {
	BudgetRequestReaderSvc
	BudgetRequestWriterSvc
}

// BudgetSvcFacade manages budget collection targets.
type BudgetSvcFacade interface {
	// CreateBudget persists a new budget target.
	CreateBudget(ctx context.Context, req dto.CreateBudgetTargetRequest, creatorUserID string) (*domain.Budget, error)

	// ListBudgets retrieves budget targets, optionally scoped to a window.
	ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.Budget, error)
}
