package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetRequestStatus is the decision lifecycle state of a budget request.
type BudgetRequestStatus string

const (
	BudgetRequestPending  BudgetRequestStatus = "pending"
	BudgetRequestApproved BudgetRequestStatus = "approved"
	BudgetRequestRejected BudgetRequestStatus = "rejected"
)

// IsTerminal reports whether the request has been decided.
func (s BudgetRequestStatus) IsTerminal() bool {
	return s != BudgetRequestPending
}

// BudgetRequest is a community's ask for funds, decided exactly once.
type BudgetRequest struct {
	RequestID       string              `json:"requestID"`
	Title           string              `json:"title"`
	Purpose         string              `json:"purpose"`
	CommunityID     string              `json:"communityID"`
	RequestedAmount decimal.Decimal     `json:"requestedAmount"`
	ApprovedAmount  *decimal.Decimal    `json:"approvedAmount,omitempty"`
	Status          BudgetRequestStatus `json:"status"`
	DecidedAt       *time.Time          `json:"decidedAt,omitempty"` // set once, on leaving pending
	RejectionReason string              `json:"rejectionReason,omitempty"`
	ApprovalNotes   string              `json:"approvalNotes,omitempty"`
	AuditFields
}

// Budget is a collection target for a category of temple work; donations raised
// against it feed the budget-progress rollup.
type Budget struct {
	BudgetID        string          `json:"budgetID"`
	Category        string          `json:"category"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"`
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
	AuditFields
}
