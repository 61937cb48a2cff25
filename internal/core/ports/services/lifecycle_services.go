package services

import (
	"context"

	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	"github.com/temple-trust/temple_finance_app/internal/dto"
)

// ExpenseLifecycleSvc applies guarded status transitions to expenses.
// It is the only code allowed to change an expense's status, and every
// successful call appends exactly one timeline event.
type ExpenseLifecycleSvc interface {
	// ApproveExpense transitions pending -> approved, stamping the approval date.
	ApproveExpense(ctx context.Context, expenseID string, approverUserID string) (*domain.Expense, error)

	// RejectExpense transitions pending -> rejected. The reason is mandatory.
	RejectExpense(ctx context.Context, expenseID string, reason string, approverUserID string) (*domain.Expense, error)

	// MarkExpensePaid transitions approved -> paid (terminal).
	MarkExpensePaid(ctx context.Context, expenseID string, updaterUserID string) (*domain.Expense, error)
}

// BudgetRequestLifecycleSvc decides budget requests exactly once.
type BudgetRequestLifecycleSvc interface {
	// ApproveBudgetRequest transitions pending -> approved. The approved amount
	// defaults to the requested amount when omitted.
	ApproveBudgetRequest(ctx context.Context, requestID string, req dto.ApproveBudgetRequestRequest, approverUserID string) (*domain.BudgetRequest, error)

	// RejectBudgetRequest transitions pending -> rejected. The reason is mandatory.
	RejectBudgetRequest(ctx context.Context, requestID string, reason string, approverUserID string) (*domain.BudgetRequest, error)
}

// DonationLifecycleSvc applies reconciliation transitions to donations.
type DonationLifecycleSvc interface {
	// MatchDonation transitions unmatched -> matched.
	MatchDonation(ctx context.Context, donationID string, matchedWith string, reviewerUserID string) (*domain.Donation, error)

	// RecordDonationException transitions unmatched -> exception with an
	// already-validated exception. Callers go through the exception classifier;
	// this method trusts its input.
	RecordDonationException(ctx context.Context, donationID string, exc domain.Exception, reviewerUserID string) (*domain.Donation, error)
}

// LifecycleSvcFacade combines every lifecycle state machine.
type LifecycleSvcFacade interface {
	ExpenseLifecycleSvc
	BudgetRequestLifecycleSvc
	DonationLifecycleSvc
}
