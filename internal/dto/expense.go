package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to record a new expense.
// Expenses always start pending; status is not accepted from the client.
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Vendor      string          `json:"vendor"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required,oneof=maintenance utilities salaries materials events other"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
	Notes       string          `json:"notes"`
}

// UpdateExpenseRequest defines the editable fields of an expense.
type UpdateExpenseRequest struct {
	Description *string          `json:"description"`
	Vendor      *string          `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category" binding:"omitempty,oneof=maintenance utilities salaries materials events other"`
	ExpenseDate *time.Time       `json:"expenseDate"`
	Notes       *string          `json:"notes"`
}

// ListExpensesParams defines the query filters for listing expenses.
type ListExpensesParams struct {
	Status   string     `form:"status" binding:"omitempty,oneof=pending approved rejected paid"`
	Category string     `form:"category" binding:"omitempty,oneof=maintenance utilities salaries materials events other"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// RejectExpenseRequest carries the mandatory rejection reason.
type RejectExpenseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID       string          `json:"expenseID"`
	Description     string          `json:"description"`
	Vendor          string          `json:"vendor"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	ApprovalDate    *time.Time      `json:"approvalDate,omitempty"`
	ExpenseDate     time.Time       `json:"expenseDate"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts a domain.Expense to an ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		Description:     e.Description,
		Vendor:          e.Vendor,
		Amount:          e.Amount,
		Category:        string(e.Category),
		Status:          string(e.Status),
		RejectionReason: e.RejectionReason,
		ApprovalDate:    e.ApprovalDate,
		ExpenseDate:     e.ExpenseDate,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		LastUpdatedAt:   e.LastUpdatedAt,
	}
}

// ListExpensesResponse wraps a list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}
