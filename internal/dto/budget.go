package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// CreateBudgetTargetRequest defines the data needed to create a budget target.
type CreateBudgetTargetRequest struct {
	Category     string          `json:"category" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	PeriodStart  time.Time       `json:"periodStart" binding:"required"`
	PeriodEnd    time.Time       `json:"periodEnd" binding:"required"`
}

// ListBudgetsParams defines the query filters for listing budget targets.
type ListBudgetsParams struct {
	Category string     `form:"category"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// BudgetResponse defines the data returned for a budget target.
type BudgetResponse struct {
	BudgetID        string          `json:"budgetID"`
	Category        string          `json:"category"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"`
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
}

// ToBudgetResponse converts a domain.Budget to a BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:        b.BudgetID,
		Category:        b.Category,
		TargetAmount:    b.TargetAmount,
		CollectedAmount: b.CollectedAmount,
		PeriodStart:     b.PeriodStart,
		PeriodEnd:       b.PeriodEnd,
	}
}

// ListBudgetsResponse wraps a list of budget targets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}
